package exporter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ventascli/pkg/contracts/domain"
)

func exportRow(code, name string, qty, total float64) domain.AggregateRow {
	return domain.AggregateRow{
		DocumentDate:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		ProductCode:    code,
		ProductName:    name,
		CustomerClass:  "Minorista",
		Year:           2024,
		MonthNum:       3,
		MonthName:      "Marzo",
		Quantity:       qty,
		TotalPriceOrig: total,
		DocumentStatus: "Emitido",
	}
}

func TestEncodeCSV_BOMPrefix(t *testing.T) {
	data, err := EncodeCSV(nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestEncodeCSV_HeaderAndRows(t *testing.T) {
	rows := []domain.AggregateRow{
		exportRow("P1", "Tornillo 3mm", 5, 150),
		exportRow("P2", "Clavos, caja", 2, 13.4),
	}

	data, err := EncodeCSV(rows)
	require.NoError(t, err)

	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"FECHA_DOCUMENTO", "CODIGO_PRODUCTO", "NOMBRE_PRODUCTO", "CLASE_CLIENTE",
		"CANTIDAD", "PRECIO_TOTAL_ORIG", "ESTADO_DOCUMENTO",
	}, records[0])

	assert.Equal(t, []string{
		"2024-03-05", "P1", "Tornillo 3mm", "Minorista", "5", "150.00", "Emitido",
	}, records[1])

	// Prices keep two decimals, quantities do not grow trailing zeros.
	assert.Equal(t, "13.40", records[2][5])
	assert.Equal(t, "2", records[2][4])
}

func TestEncodeCSV_QuotesOnlyWhereNeeded(t *testing.T) {
	rows := []domain.AggregateRow{exportRow("P2", "Clavos, caja", 2, 13.4)}

	data, err := EncodeCSV(rows)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `"Clavos, caja"`)
	assert.NotContains(t, text, `"P2"`)
}

func TestEncodeCSV_NoIOSideEffects(t *testing.T) {
	// Encoding twice yields identical buffers.
	rows := []domain.AggregateRow{exportRow("P1", "Tornillo", 5, 150)}

	first, err := EncodeCSV(rows)
	require.NoError(t, err)
	second, err := EncodeCSV(rows)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSuggestFilename(t *testing.T) {
	tests := []struct {
		name   string
		years  []int
		months []string
		want   string
	}{
		{
			name:   "single year and month",
			years:  []int{2024},
			months: []string{"Marzo"},
			want:   "ventas_2024_mar.csv",
		},
		{
			name:   "multiple sorted values",
			years:  []int{2025, 2023},
			months: []string{"Marzo", "Abril"},
			want:   "ventas_2023_2025_abr_mar.csv",
		},
		{
			name:   "accented month abbreviates by runes",
			years:  []int{2024},
			months: []string{"Año Nuevo"}, // degenerate but must not split a rune
			want:   "ventas_2024_año.csv",
		},
		{
			name:   "too many years",
			years:  []int{2021, 2022, 2023, 2024},
			months: []string{"Marzo"},
			want:   "ventas_varios_años_mar.csv",
		},
		{
			name:   "too many months",
			years:  []int{2024},
			months: []string{"Enero", "Febrero", "Marzo", "Abril"},
			want:   "ventas_2024_varios_meses.csv",
		},
		{
			name:   "empty selections",
			years:  nil,
			months: nil,
			want:   "ventas__.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestFilename(tt.years, tt.months)
			assert.Equal(t, tt.want, got)
			assert.True(t, strings.HasSuffix(got, ".csv"))
		})
	}
}
