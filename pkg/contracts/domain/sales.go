package domain

import (
	"time"
)

// SaleRecord is one normalized sales transaction line. Quantity and
// TotalPriceOrig are signed: credit notes (DV) arrive negated upstream.
type SaleRecord struct {
	ProductCode    string    `json:"product_code" csv:"CODIGO_PRODUCTO"`
	ProductName    string    `json:"product_name" csv:"NOMBRE_PRODUCTO"`
	CustomerClass  string    `json:"customer_class" csv:"CLASE_CLIENTE"`
	DocumentDate   time.Time `json:"document_date" csv:"FECHA_DOCUMENTO"`
	Quantity       float64   `json:"quantity" csv:"CANTIDAD"`
	TotalPriceOrig float64   `json:"total_price_orig" csv:"PRECIO_TOTAL_ORIG"`
	DocumentStatus string    `json:"document_status" csv:"ESTADO_DOCUMENTO"`

	// Derived during normalization, always consistent with DocumentDate.
	Year      int    `json:"year"`
	MonthNum  int    `json:"month_num"`
	MonthName string `json:"month_name"`
}

// AggregateRow is one post-grouping summary record keyed by
// (product code, year, month). First-seen fields reflect the original
// row order of the group, not a re-sort.
type AggregateRow struct {
	DocumentDate   time.Time `json:"document_date"`
	ProductCode    string    `json:"product_code"`
	ProductName    string    `json:"product_name"`
	CustomerClass  string    `json:"customer_class"`
	Year           int       `json:"year"`
	MonthNum       int       `json:"month_num"`
	MonthName      string    `json:"month_name"`
	Quantity       float64   `json:"quantity"`
	TotalPriceOrig float64   `json:"total_price_orig"`
	DocumentStatus string    `json:"document_status"`
}

// ProductRollupRow re-aggregates the final table by product code alone,
// for the per-article view.
type ProductRollupRow struct {
	ProductCode    string  `json:"product_code"`
	ProductName    string  `json:"product_name"`
	CustomerClass  string  `json:"customer_class"`
	Quantity       float64 `json:"quantity"`
	TotalPriceOrig float64 `json:"total_price_orig"`
}

// FilterSelection carries the four independent multi-select filter axes.
// An empty ProductCodes slice means "no restriction"; the other three
// axes select nothing when empty.
type FilterSelection struct {
	Years          []int    `json:"years"`
	Months         []string `json:"months"`
	ProductCodes   []string `json:"product_codes"`
	CustomerClasses []string `json:"customer_classes"`
}

// FilterOptions lists the distinct values available on each filter axis,
// derived from the normalized table.
type FilterOptions struct {
	Years           []int    `json:"years"`
	Months          []string `json:"months"`
	ProductCodes    []string `json:"product_codes"`
	CustomerClasses []string `json:"customer_classes"`
}

// ReportSummary holds the totals and extrema computed over the final
// aggregate table.
type ReportSummary struct {
	TotalSales float64      `json:"total_sales"`
	ItemCount  int          `json:"item_count"`
	MaxRow     AggregateRow `json:"max_row"`
	MinRow     AggregateRow `json:"min_row"`
}

// Report is the full result of one pipeline run for a filter selection.
type Report struct {
	Rows      []AggregateRow     `json:"rows"`
	Rollup    []ProductRollupRow `json:"rollup"`
	Summary   ReportSummary      `json:"summary"`
	Elapsed   time.Duration      `json:"elapsed_ns"`
	Encoding  string             `json:"source_encoding"`
	FromCache bool               `json:"from_cache"`
}
