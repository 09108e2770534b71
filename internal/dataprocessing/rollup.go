package dataprocessing

import (
	"sort"

	"ventascli/pkg/contracts/domain"
)

// RollupByProduct re-aggregates the final table by product code alone
// for the per-article view: first-seen name and class, summed quantity
// and total. Only groups with positive summed quantity are retained and
// the result is sorted ascending by summed quantity.
func RollupByProduct(rows []domain.AggregateRow) []domain.ProductRollupRow {
	groups := make(map[string]*domain.ProductRollupRow, len(rows))
	order := make([]string, 0, len(rows))

	for _, row := range rows {
		agg, ok := groups[row.ProductCode]
		if !ok {
			agg = &domain.ProductRollupRow{
				ProductCode:   row.ProductCode,
				ProductName:   row.ProductName,
				CustomerClass: row.CustomerClass,
			}
			groups[row.ProductCode] = agg
			order = append(order, row.ProductCode)
		}
		agg.Quantity += row.Quantity
		agg.TotalPriceOrig += row.TotalPriceOrig
	}

	result := make([]domain.ProductRollupRow, 0, len(order))
	for _, code := range order {
		agg := groups[code]
		if agg.Quantity <= 0 {
			continue
		}
		result = append(result, *agg)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Quantity < result[j].Quantity
	})

	return result
}
