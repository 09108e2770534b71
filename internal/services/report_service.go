package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ventascli/internal/dataprocessing"
	"ventascli/internal/errors"
	"ventascli/internal/exporter"
	"ventascli/pkg/contracts/domain"
)

// RunObserver receives pipeline run outcomes for metrics.
type RunObserver interface {
	RecordReportRun(ctx context.Context, elapsed time.Duration, empty bool)
}

// ReportService runs the full sales report pipeline for a filter
// selection: load, normalize, filter, aggregate, summarize, roll up.
// The pipeline is a pure function of (source table, selection); the
// only shared state across runs is the loader's bounded-time cache.
type ReportService struct {
	loader     *dataprocessing.Loader
	normalizer *dataprocessing.Normalizer
	sourceURL  string
	logger     *slog.Logger
	observe    RunObserver
}

// NewReportService creates a report service reading from sourceURL.
func NewReportService(loader *dataprocessing.Loader, normalizer *dataprocessing.Normalizer, sourceURL string, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		loader:     loader,
		normalizer: normalizer,
		sourceURL:  sourceURL,
		logger:     logger.With(slog.String("component", "report_service")),
	}
}

// WithRunObserver attaches a metrics observer and returns the service.
func (s *ReportService) WithRunObserver(obs RunObserver) *ReportService {
	s.observe = obs
	return s
}

// Options returns the distinct values available on each filter axis so
// the presentation layer can populate its multi-selects.
func (s *ReportService) Options(ctx context.Context) (domain.FilterOptions, error) {
	table, _, err := s.loadNormalized(ctx)
	if err != nil {
		return domain.FilterOptions{}, err
	}
	return dataprocessing.FilterOptionsFrom(table), nil
}

// Run executes one full pipeline pass for the given selection. An empty
// result after filtering or aggregation returns an EMPTY_RESULT error;
// callers surface it as a neutral no-data state, never an error dialog.
func (s *ReportService) Run(ctx context.Context, sel domain.FilterSelection) (*domain.Report, error) {
	start := time.Now()

	table, loaded, err := s.loadNormalized(ctx)
	if err != nil {
		return nil, err
	}

	filtered := dataprocessing.ApplyFilters(table, sel)
	if len(filtered) == 0 {
		s.finishRun(ctx, start, true)
		return nil, errors.NewEmptyResultError("filter engine")
	}

	aggregated := dataprocessing.Aggregate(filtered)
	if len(aggregated) == 0 {
		s.finishRun(ctx, start, true)
		return nil, errors.NewEmptyResultError("aggregator")
	}

	summary, err := dataprocessing.Summarize(aggregated)
	if err != nil {
		// Unreachable behind the empty-result gate above.
		return nil, fmt.Errorf("summary calculator: %w", err)
	}

	rollup := dataprocessing.RollupByProduct(aggregated)

	elapsed := time.Since(start)
	s.finishRun(ctx, start, false)

	s.logger.InfoContext(ctx, "report run complete",
		slog.Int("filtered_rows", len(filtered)),
		slog.Int("aggregate_rows", len(aggregated)),
		slog.Int("rollup_rows", len(rollup)),
		slog.Float64("total_sales", summary.TotalSales),
		slog.Duration("elapsed", elapsed))

	return &domain.Report{
		Rows:      aggregated,
		Rollup:    rollup,
		Summary:   summary,
		Elapsed:   elapsed,
		Encoding:  loaded.Encoding,
		FromCache: loaded.FromCache,
	}, nil
}

// Export runs the pipeline and serializes the final table to CSV with a
// UTF-8 BOM, returning the buffer together with the suggested filename.
func (s *ReportService) Export(ctx context.Context, sel domain.FilterSelection) ([]byte, string, error) {
	report, err := s.Run(ctx, sel)
	if err != nil {
		return nil, "", err
	}

	data, err := exporter.EncodeCSV(report.Rows)
	if err != nil {
		return nil, "", fmt.Errorf("export encoder: %w", err)
	}

	return data, exporter.SuggestFilename(sel.Years, sel.Months), nil
}

func (s *ReportService) loadNormalized(ctx context.Context) ([]domain.SaleRecord, *dataprocessing.LoadResult, error) {
	if s.sourceURL == "" {
		return nil, nil, errors.NewConfigError("source url is not configured", nil)
	}

	loaded, err := s.loader.Load(ctx, s.sourceURL)
	if err != nil {
		return nil, nil, fmt.Errorf("loader: %w", err)
	}

	table, err := s.normalizer.Normalize(loaded.Rows)
	if err != nil {
		return nil, nil, fmt.Errorf("normalizer: %w", err)
	}
	return table, loaded, nil
}

func (s *ReportService) finishRun(ctx context.Context, start time.Time, empty bool) {
	if s.observe != nil {
		s.observe.RecordReportRun(ctx, time.Since(start), empty)
	}
}
