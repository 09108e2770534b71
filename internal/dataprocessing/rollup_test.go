package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ventascli/pkg/contracts/domain"
)

func TestRollupByProduct(t *testing.T) {
	rows := []domain.AggregateRow{
		aggRow("P1", 3, 5, 150),
		aggRow("P1", 4, 2, 60),
		aggRow("P2", 3, 1, 70),
	}

	result := RollupByProduct(rows)
	require.Len(t, result, 2)

	// Ascending by summed quantity: P2 (1) before P1 (7).
	assert.Equal(t, "P2", result[0].ProductCode)
	assert.Equal(t, 1.0, result[0].Quantity)
	assert.Equal(t, 70.0, result[0].TotalPriceOrig)

	assert.Equal(t, "P1", result[1].ProductCode)
	assert.Equal(t, 7.0, result[1].Quantity)
	assert.Equal(t, 210.0, result[1].TotalPriceOrig)
}

func TestRollupByProduct_FirstSeenColumns(t *testing.T) {
	first := aggRow("P1", 3, 5, 150)
	first.ProductName = "Nombre Marzo"
	first.CustomerClass = "Minorista"

	later := aggRow("P1", 4, 2, 60)
	later.ProductName = "Nombre Abril"
	later.CustomerClass = "Mayorista"

	result := RollupByProduct([]domain.AggregateRow{first, later})
	require.Len(t, result, 1)
	assert.Equal(t, "Nombre Marzo", result[0].ProductName)
	assert.Equal(t, "Minorista", result[0].CustomerClass)
}

func TestRollupByProduct_DropsNonPositiveQuantity(t *testing.T) {
	rows := []domain.AggregateRow{
		aggRow("P1", 3, 5, 150),
		aggRow("P1", 4, -5, 60), // sums to zero, dropped
		aggRow("P2", 3, -2, 70), // negative, dropped
		aggRow("P3", 3, 1, 10),
	}

	result := RollupByProduct(rows)
	require.Len(t, result, 1)
	assert.Equal(t, "P3", result[0].ProductCode)
}

func TestRollupByProduct_Empty(t *testing.T) {
	assert.Empty(t, RollupByProduct(nil))
}
