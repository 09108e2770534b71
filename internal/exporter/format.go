package exporter

import (
	"fmt"
	"strconv"
)

// formatFloat formats a monetary value for CSV output with exactly 2
// decimal places so values like 13.4 appear as 13.40.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatQuantity formats a quantity without trailing zeros; fractional
// quantities (e.g. weights) keep their precision.
func formatQuantity(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
