package dataprocessing

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"ventascli/internal/errors"
	"ventascli/pkg/contracts/domain"
)

// dateLayouts are tried in order when parsing document dates. Slash and
// dash forms are day-first: a 03/04/2025 extract means 3 April, not
// March 4.
var dateLayouts = []string{
	"2/1/2006",
	"02/01/2006",
	"2/1/2006 15:04",
	"02/01/2006 15:04:05",
	"2-1-2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Normalizer turns raw loaded rows into the canonical working table:
// zero-quantity rows are dropped, document dates are parsed day-first,
// and the calendar columns are derived.
type Normalizer struct {
	months *MonthNamer
	logger *slog.Logger
}

// NewNormalizer creates a normalizer deriving month names via the given
// namer.
func NewNormalizer(months *MonthNamer, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		months: months,
		logger: logger.With(slog.String("component", "normalizer")),
	}
}

// Normalize produces the canonical table used by all downstream stages.
// Only columns are derived and one filter applied; no rows are added.
func (n *Normalizer) Normalize(rows []RawRecord) ([]domain.SaleRecord, error) {
	records := make([]domain.SaleRecord, 0, len(rows))
	for i, row := range rows {
		if row.Quantity == 0 {
			continue
		}

		date, err := parseDayFirst(row.DocumentDate)
		if err != nil {
			return nil, errors.NewParsingError(
				fmt.Sprintf("row %d: invalid document date %q", i+1, row.DocumentDate), err)
		}

		records = append(records, domain.SaleRecord{
			ProductCode:    row.ProductCode,
			ProductName:    row.ProductName,
			CustomerClass:  row.CustomerClass,
			DocumentDate:   date,
			Quantity:       row.Quantity,
			TotalPriceOrig: row.TotalPriceOrig,
			DocumentStatus: row.DocumentStatus,
			Year:           date.Year(),
			MonthNum:       int(date.Month()),
			MonthName:      n.months.Name(date.Month()),
		})
	}

	n.logger.Debug("normalized table",
		slog.Int("input_rows", len(rows)),
		slog.Int("output_rows", len(records)),
		slog.String("month_language", n.months.Language()))

	return records, nil
}

// parseDayFirst parses a document date with day-first precedence for
// ambiguous forms.
func parseDayFirst(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	var lastErr error
	for _, layout := range dateLayouts {
		date, err := time.Parse(layout, s)
		if err == nil {
			return date, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
