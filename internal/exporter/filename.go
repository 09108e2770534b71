package exporter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Fallback tokens when more than maxNamedValues distinct values are
// selected on an axis.
const (
	manyYearsToken  = "varios_años"
	manyMonthsToken = "varios_meses"
	maxNamedValues  = 3
)

// SuggestFilename derives a download filename from the active year and
// month selections: ventas_<years>_<months>.csv. Years are joined with
// underscores; months contribute their first three letters lowercased.
// Axes with more than three distinct values collapse to a fallback
// token. Pure string formatting, independent of the table contents.
func SuggestFilename(years []int, months []string) string {
	return fmt.Sprintf("ventas_%s_%s.csv", yearsToken(years), monthsToken(months))
}

func yearsToken(years []int) string {
	if len(years) > maxNamedValues {
		return manyYearsToken
	}
	sorted := append([]int(nil), years...)
	sort.Ints(sorted)

	parts := make([]string, 0, len(sorted))
	for _, y := range sorted {
		parts = append(parts, strconv.Itoa(y))
	}
	return strings.Join(parts, "_")
}

func monthsToken(months []string) string {
	if len(months) > maxNamedValues {
		return manyMonthsToken
	}
	sorted := append([]string(nil), months...)
	sort.Strings(sorted)

	parts := make([]string, 0, len(sorted))
	for _, m := range sorted {
		parts = append(parts, monthAbbrev(m))
	}
	return strings.Join(parts, "_")
}

// monthAbbrev lowercases the first three letters of a month name,
// counting runes so accented names abbreviate correctly.
func monthAbbrev(month string) string {
	runes := []rune(strings.ToLower(month))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}
