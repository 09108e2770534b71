package dataprocessing

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"ventascli/internal/errors"
)

// xlsxMagic is the ZIP local-file-header signature; XLSX workbooks are
// ZIP containers.
var xlsxMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// isWorkbook reports whether the payload is an XLSX workbook rather than
// delimited text. Share links to spreadsheet exports frequently resolve
// to the workbook itself.
func isWorkbook(data []byte) bool {
	return bytes.HasPrefix(data, xlsxMagic)
}

// parseWorkbook reads the first sheet of an XLSX payload into the same
// header-mapped table the CSV path produces.
func parseWorkbook(data []byte) ([]RawRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewParsingError("workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewParsingError("failed to read workbook rows", err)
	}

	return recordsFromRows(rows)
}
