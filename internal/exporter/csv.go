package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"ventascli/pkg/contracts/domain"
)

// utf8BOM helps spreadsheet tools auto-detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvHeader names every retained column of the final table, in the
// order the report presents them.
var csvHeader = []string{
	"FECHA_DOCUMENTO",
	"CODIGO_PRODUCTO",
	"NOMBRE_PRODUCTO",
	"CLASE_CLIENTE",
	"CANTIDAD",
	"PRECIO_TOTAL_ORIG",
	"ESTADO_DOCUMENTO",
}

const csvDateFormat = "2006-01-02"

// EncodeCSV serializes the final aggregate table to comma-delimited
// text with a UTF-8 BOM prefix. It performs no I/O: the returned buffer
// is ready for a download response or a disk write.
func EncodeCSV(rows []domain.AggregateRow) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		record := []string{
			row.DocumentDate.Format(csvDateFormat),
			row.ProductCode,
			row.ProductName,
			row.CustomerClass,
			formatQuantity(row.Quantity),
			formatFloat(row.TotalPriceOrig),
			row.DocumentStatus,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
