package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelection(t *testing.T) {
	sel, err := parseSelection("2024, 2025", "Marzo,Abril", "", "Minorista")
	require.NoError(t, err)

	assert.Equal(t, []int{2024, 2025}, sel.Years)
	assert.Equal(t, []string{"Marzo", "Abril"}, sel.Months)
	assert.Empty(t, sel.ProductCodes)
	assert.Equal(t, []string{"Minorista"}, sel.CustomerClasses)
}

func TestParseSelection_InvalidYear(t *testing.T) {
	_, err := parseSelection("twenty24", "Marzo", "", "Minorista")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid year")
}

func TestParseSelection_MissingAxes(t *testing.T) {
	_, err := parseSelection("2024", "", "", "Minorista")
	require.Error(t, err)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList("   "))
	assert.Equal(t, []string{"a", "b"}, splitList("a, b,"))
}
