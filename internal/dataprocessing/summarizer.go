package dataprocessing

import (
	"ventascli/internal/errors"
	"ventascli/pkg/contracts/domain"
)

// Summarize computes the totals and extrema over the final aggregate
// table. Ties on the extrema resolve to the first such row in table
// order. A zero-row table is a contract violation: callers gate on the
// empty-result check before invoking the summary.
func Summarize(rows []domain.AggregateRow) (domain.ReportSummary, error) {
	if len(rows) == 0 {
		return domain.ReportSummary{}, errors.NewEmptyTableError("summary requested over zero rows")
	}

	summary := domain.ReportSummary{
		ItemCount: len(rows),
		MaxRow:    rows[0],
		MinRow:    rows[0],
	}

	for _, row := range rows {
		summary.TotalSales += row.TotalPriceOrig
		if row.TotalPriceOrig > summary.MaxRow.TotalPriceOrig {
			summary.MaxRow = row
		}
		if row.TotalPriceOrig < summary.MinRow.TotalPriceOrig {
			summary.MinRow = row
		}
	}

	return summary, nil
}
