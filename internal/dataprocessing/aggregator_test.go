package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ventascli/pkg/contracts/domain"
)

func TestAggregate_GroupsAndSums(t *testing.T) {
	rows := []domain.SaleRecord{
		saleRow("P1", "Minorista", 2024, 3, "Marzo", 2, 100),
		saleRow("P1", "Minorista", 2024, 3, "Marzo", 3, 50),
		saleRow("P2", "Mayorista", 2024, 3, "Marzo", 1, 70),
		saleRow("P1", "Minorista", 2024, 4, "Abril", 5, 20),
	}

	result := Aggregate(rows)
	require.Len(t, result, 3)

	assert.Equal(t, "P1", result[0].ProductCode)
	assert.Equal(t, 3, result[0].MonthNum)
	assert.Equal(t, 5.0, result[0].Quantity)
	assert.Equal(t, 150.0, result[0].TotalPriceOrig)

	assert.Equal(t, "P2", result[1].ProductCode)
	assert.Equal(t, "P1", result[2].ProductCode)
	assert.Equal(t, 4, result[2].MonthNum)
}

func TestAggregate_FirstRowValuesFollowInputOrder(t *testing.T) {
	// First and later rows of the same group deliberately disagree on
	// every first-seen column.
	first := saleRow("P1", "Minorista", 2024, 3, "Marzo", 2, 100)
	first.DocumentDate = time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	first.ProductName = "Nombre Original"
	first.DocumentStatus = "Emitido"

	later := saleRow("P1", "Mayorista", 2024, 3, "Marzo", 3, 50)
	later.DocumentDate = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	later.ProductName = "Nombre Cambiado"
	later.DocumentStatus = "Anulado"

	result := Aggregate([]domain.SaleRecord{first, later})
	require.Len(t, result, 1)

	// Even though the later row has an earlier date, first-seen wins.
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), result[0].DocumentDate)
	assert.Equal(t, "Nombre Original", result[0].ProductName)
	assert.Equal(t, "Minorista", result[0].CustomerClass)
	assert.Equal(t, "Emitido", result[0].DocumentStatus)
	assert.Equal(t, 5.0, result[0].Quantity)
	assert.Equal(t, 150.0, result[0].TotalPriceOrig)
}

func TestAggregate_DropsZeroGroups(t *testing.T) {
	rows := []domain.SaleRecord{
		// Quantities cancel out: group dropped on quantity == 0.
		saleRow("P1", "Minorista", 2024, 3, "Marzo", 2, 100),
		saleRow("P1", "Minorista", 2024, 3, "Marzo", -2, 50),
		// Totals cancel out: group dropped on total == 0.
		saleRow("P2", "Minorista", 2024, 3, "Marzo", 1, 80),
		saleRow("P2", "Minorista", 2024, 3, "Marzo", 1, -80),
		// Survives: both sums nonzero.
		saleRow("P3", "Minorista", 2024, 3, "Marzo", 1, 10),
	}

	result := Aggregate(rows)
	require.Len(t, result, 1)
	assert.Equal(t, "P3", result[0].ProductCode)
}

func TestAggregate_SortOrder(t *testing.T) {
	rows := []domain.SaleRecord{
		saleRow("B", "Minorista", 2024, 4, "Abril", 1, 10),
		saleRow("A", "Minorista", 2024, 4, "Abril", 1, 10),
		saleRow("Z", "Minorista", 2023, 12, "Diciembre", 1, 10),
		saleRow("A", "Minorista", 2024, 3, "Marzo", 1, 10),
	}

	result := Aggregate(rows)
	require.Len(t, result, 4)

	type key struct {
		year  int
		month int
		code  string
	}
	got := make([]key, 0, len(result))
	for _, row := range result {
		got = append(got, key{row.Year, row.MonthNum, row.ProductCode})
	}
	want := []key{
		{2023, 12, "Z"},
		{2024, 3, "A"},
		{2024, 4, "A"},
		{2024, 4, "B"},
	}
	assert.Equal(t, want, got)
}

func TestAggregate_GroupUniqueness(t *testing.T) {
	rows := []domain.SaleRecord{
		saleRow("P1", "Minorista", 2024, 3, "Marzo", 2, 100),
		saleRow("P1", "Minorista", 2024, 3, "Marzo", 3, 50),
		saleRow("P1", "Mayorista", 2024, 3, "Marzo", 1, 25),
		saleRow("P2", "Minorista", 2024, 3, "Marzo", 1, 10),
		saleRow("P1", "Minorista", 2025, 3, "Marzo", 1, 10),
	}

	result := Aggregate(rows)

	seen := make(map[groupKey]bool)
	for _, row := range result {
		key := groupKey{row.ProductCode, row.Year, row.MonthNum}
		assert.False(t, seen[key], "duplicate group %+v", key)
		seen[key] = true
	}
}

func TestAggregate_SumConservation(t *testing.T) {
	rows := []domain.SaleRecord{
		saleRow("P1", "Minorista", 2024, 3, "Marzo", 2, 100),
		saleRow("P1", "Minorista", 2024, 3, "Marzo", 3, 50),
		saleRow("P2", "Mayorista", 2024, 4, "Abril", 1, 70),
		saleRow("P3", "Minorista", 2024, 5, "Mayo", 2, -30),
	}

	result := Aggregate(rows)

	var inputTotal, outputTotal float64
	for _, row := range rows {
		inputTotal += row.TotalPriceOrig
	}
	for _, row := range result {
		outputTotal += row.TotalPriceOrig
	}

	// No group cancels to zero here, so aggregation must conserve the sum.
	assert.InDelta(t, inputTotal, outputTotal, 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}
