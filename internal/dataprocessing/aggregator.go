package dataprocessing

import (
	"sort"

	"ventascli/pkg/contracts/domain"
)

// groupKey identifies one aggregation group. Month name is implied by
// month number, so the tuple (code, year, month) is the unique key.
type groupKey struct {
	productCode string
	year        int
	monthNum    int
}

// Aggregate groups filtered rows by (product code, year, month) and
// reduces each group to one row: quantities and totals are summed, every
// other column takes its value from the first row of the group in input
// order. Groups whose summed quantity or summed total is zero are
// dropped, and the result is sorted ascending by (year, month, code).
func Aggregate(rows []domain.SaleRecord) []domain.AggregateRow {
	groups := make(map[groupKey]*domain.AggregateRow, len(rows))
	order := make([]groupKey, 0, len(rows))

	for _, row := range rows {
		key := groupKey{productCode: row.ProductCode, year: row.Year, monthNum: row.MonthNum}
		agg, ok := groups[key]
		if !ok {
			// First row of the group fixes the first-seen columns.
			agg = &domain.AggregateRow{
				DocumentDate:   row.DocumentDate,
				ProductCode:    row.ProductCode,
				ProductName:    row.ProductName,
				CustomerClass:  row.CustomerClass,
				Year:           row.Year,
				MonthNum:       row.MonthNum,
				MonthName:      row.MonthName,
				DocumentStatus: row.DocumentStatus,
			}
			groups[key] = agg
			order = append(order, key)
		}
		agg.Quantity += row.Quantity
		agg.TotalPriceOrig += row.TotalPriceOrig
	}

	result := make([]domain.AggregateRow, 0, len(order))
	for _, key := range order {
		agg := groups[key]
		// Either zero sum alone excludes the group.
		if agg.Quantity == 0 || agg.TotalPriceOrig == 0 {
			continue
		}
		result = append(result, *agg)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year < result[j].Year
		}
		if result[i].MonthNum != result[j].MonthNum {
			return result[i].MonthNum < result[j].MonthNum
		}
		return result[i].ProductCode < result[j].ProductCode
	})

	return result
}
