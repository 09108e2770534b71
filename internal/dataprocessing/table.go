package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"ventascli/internal/errors"
)

// RawRecord is one row of the loaded table before normalization. The
// document date stays a string here: day-first parsing is the
// normalizer's job.
type RawRecord struct {
	ProductCode    string
	ProductName    string
	CustomerClass  string
	DocumentDate   string
	Quantity       float64
	TotalPriceOrig float64
	DocumentStatus string
}

// Column headers as produced by the sales extract query.
const (
	colProductCode    = "CODIGO_PRODUCTO"
	colProductName    = "NOMBRE_PRODUCTO"
	colCustomerClass  = "CLASE_CLIENTE"
	colDocumentDate   = "FECHA_DOCUMENTO"
	colQuantity       = "CANTIDAD"
	colTotalPriceOrig = "PRECIO_TOTAL_ORIG"
	colDocumentStatus = "ESTADO_DOCUMENTO"
)

var requiredColumns = []string{
	colProductCode,
	colProductName,
	colCustomerClass,
	colDocumentDate,
	colQuantity,
	colTotalPriceOrig,
	colDocumentStatus,
}

// parseDelimitedTable parses decoded text as a delimited table. The
// delimiter is sniffed from the header line because source exports use
// semicolons as often as commas.
func parseDelimitedTable(text string) ([]RawRecord, error) {
	text = strings.TrimPrefix(text, "\uFEFF")

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParsingError("failed to parse delimited table", err)
	}

	return recordsFromRows(rows)
}

// sniffDelimiter picks the candidate delimiter occurring most often in
// the header line. Comma wins ties.
func sniffDelimiter(text string) rune {
	header := text
	if idx := strings.IndexAny(text, "\r\n"); idx >= 0 {
		header = text[:idx]
	}

	best := ','
	bestCount := strings.Count(header, ",")
	for _, candidate := range []rune{';', '\t', '|'} {
		if count := strings.Count(header, string(candidate)); count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best
}

// recordsFromRows maps a header row plus data rows onto RawRecords.
// Column positions are resolved by header name so the extract may carry
// extra columns or reorder them.
func recordsFromRows(rows [][]string) ([]RawRecord, error) {
	if len(rows) == 0 {
		return nil, errors.NewParsingError("table has no header row", nil)
	}

	columnMap := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		columnMap[normalizeHeader(header)] = i
	}

	for _, col := range requiredColumns {
		if _, ok := columnMap[col]; !ok {
			return nil, errors.NewParsingError(
				fmt.Sprintf("missing required column %s", col), nil).
				WithContext("columns", rows[0])
		}
	}

	records := make([]RawRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		cell := func(col string) string {
			idx := columnMap[col]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		if isBlankRow(row) {
			continue
		}

		quantity, err := parseNumber(cell(colQuantity))
		if err != nil {
			return nil, errors.NewParsingError(
				fmt.Sprintf("row %d: invalid quantity %q", i+2, cell(colQuantity)), err)
		}
		total, err := parseNumber(cell(colTotalPriceOrig))
		if err != nil {
			return nil, errors.NewParsingError(
				fmt.Sprintf("row %d: invalid total price %q", i+2, cell(colTotalPriceOrig)), err)
		}

		records = append(records, RawRecord{
			ProductCode:    cell(colProductCode),
			ProductName:    cell(colProductName),
			CustomerClass:  cell(colCustomerClass),
			DocumentDate:   cell(colDocumentDate),
			Quantity:       quantity,
			TotalPriceOrig: total,
			DocumentStatus: cell(colDocumentStatus),
		})
	}

	return records, nil
}

func normalizeHeader(header string) string {
	return strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(header, "\uFEFF")))
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseNumber parses a decimal cell, accepting Spanish-style separators:
// "1.234,56" and "12,5" both parse, as does plain "1234.56". Empty cells
// are zero.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			// "." is a thousands separator when both are present
			s = strings.ReplaceAll(s, ".", "")
		}
		s = strings.ReplaceAll(s, ",", ".")
	}

	return strconv.ParseFloat(s, 64)
}
