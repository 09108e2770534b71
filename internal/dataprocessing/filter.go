package dataprocessing

import (
	"ventascli/pkg/contracts/domain"
)

// ApplyFilters returns the subset of rows matching the conjunction of
// the four selection axes. Years, months and customer classes select
// nothing when empty; an empty product-code selection means "no
// restriction". The input is never mutated and running the same
// selection twice yields identical output.
func ApplyFilters(rows []domain.SaleRecord, sel domain.FilterSelection) []domain.SaleRecord {
	years := make(map[int]struct{}, len(sel.Years))
	for _, y := range sel.Years {
		years[y] = struct{}{}
	}
	months := make(map[string]struct{}, len(sel.Months))
	for _, m := range sel.Months {
		months[m] = struct{}{}
	}
	codes := make(map[string]struct{}, len(sel.ProductCodes))
	for _, c := range sel.ProductCodes {
		codes[c] = struct{}{}
	}
	classes := make(map[string]struct{}, len(sel.CustomerClasses))
	for _, c := range sel.CustomerClasses {
		classes[c] = struct{}{}
	}

	filtered := make([]domain.SaleRecord, 0, len(rows))
	for _, row := range rows {
		if _, ok := years[row.Year]; !ok {
			continue
		}
		if _, ok := months[row.MonthName]; !ok {
			continue
		}
		if len(codes) > 0 {
			if _, ok := codes[row.ProductCode]; !ok {
				continue
			}
		}
		if _, ok := classes[row.CustomerClass]; !ok {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

// FilterOptionsFrom lists the distinct values present on each filter
// axis of the normalized table, sorted for stable UI population.
func FilterOptionsFrom(rows []domain.SaleRecord) domain.FilterOptions {
	yearSet := make(map[int]struct{})
	monthSet := make(map[string]struct{})
	codeSet := make(map[string]struct{})
	classSet := make(map[string]struct{})

	for _, row := range rows {
		yearSet[row.Year] = struct{}{}
		monthSet[row.MonthName] = struct{}{}
		codeSet[row.ProductCode] = struct{}{}
		classSet[row.CustomerClass] = struct{}{}
	}

	return domain.FilterOptions{
		Years:           sortedInts(yearSet),
		Months:          sortedStrings(monthSet),
		ProductCodes:    sortedStrings(codeSet),
		CustomerClasses: sortedStrings(classSet),
	}
}
