package dataprocessing

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "ventascli/internal/errors"
)

func testNormalizer(t *testing.T, lang string) *Normalizer {
	t.Helper()
	return NewNormalizer(NewMonthNamer(lang, slog.Default()), slog.Default())
}

func TestNormalizer_Normalize(t *testing.T) {
	normalizer := testNormalizer(t, "es")

	rows := []RawRecord{
		{ProductCode: "P1", ProductName: "Tornillo", CustomerClass: "Minorista",
			DocumentDate: "05/03/2024", Quantity: 2, TotalPriceOrig: 100, DocumentStatus: "Emitido"},
		{ProductCode: "P2", ProductName: "Clavo", CustomerClass: "Mayorista",
			DocumentDate: "20/11/2023", Quantity: -1, TotalPriceOrig: -30, DocumentStatus: "Emitido"},
		{ProductCode: "P3", ProductName: "Rebate", CustomerClass: "Minorista",
			DocumentDate: "05/03/2024", Quantity: 0, TotalPriceOrig: 99, DocumentStatus: "Emitido"},
	}

	records, err := normalizer.Normalize(rows)
	require.NoError(t, err)

	// Zero-quantity row dropped, nothing else.
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.NotZero(t, rec.Quantity)
	}

	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), records[0].DocumentDate)
	assert.Equal(t, 2024, records[0].Year)
	assert.Equal(t, 3, records[0].MonthNum)
	assert.Equal(t, "Marzo", records[0].MonthName)

	assert.Equal(t, 2023, records[1].Year)
	assert.Equal(t, 11, records[1].MonthNum)
	assert.Equal(t, "Noviembre", records[1].MonthName)
}

func TestNormalizer_DayFirstPrecedence(t *testing.T) {
	normalizer := testNormalizer(t, "en")

	// 03/04/2025 is 3 April, never March 4.
	records, err := normalizer.Normalize([]RawRecord{
		{ProductCode: "P1", DocumentDate: "03/04/2025", Quantity: 1, TotalPriceOrig: 10},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 4, records[0].MonthNum)
	assert.Equal(t, "April", records[0].MonthName)
}

func TestNormalizer_DateLayouts(t *testing.T) {
	normalizer := testNormalizer(t, "en")

	tests := []struct {
		input string
		want  time.Time
	}{
		{"5/3/2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"05/03/2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-03-05 13:45:00", time.Date(2024, 3, 5, 13, 45, 0, 0, time.UTC)},
		{"2024-03-05T13:45:00", time.Date(2024, 3, 5, 13, 45, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			records, err := normalizer.Normalize([]RawRecord{
				{ProductCode: "P1", DocumentDate: tt.input, Quantity: 1, TotalPriceOrig: 1},
			})
			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0].DocumentDate)
		})
	}
}

func TestNormalizer_InvalidDate(t *testing.T) {
	normalizer := testNormalizer(t, "es")

	_, err := normalizer.Normalize([]RawRecord{
		{ProductCode: "P1", DocumentDate: "not-a-date", Quantity: 1, TotalPriceOrig: 1},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestNormalizer_EmptyInput(t *testing.T) {
	normalizer := testNormalizer(t, "es")

	records, err := normalizer.Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}
