package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"ventascli/internal/config"
	"ventascli/internal/dataprocessing"
	"ventascli/internal/errors"
	"ventascli/internal/infrastructure"
	"ventascli/internal/services"
	"ventascli/pkg/contracts/domain"
)

// ventas-export runs one report pipeline pass from the command line and
// writes the CSV to disk, without starting the HTTP server.
func main() {
	sourceURL := flag.String("url", "", "source url (defaults to VENTAS_SOURCE_URL / config.yaml)")
	years := flag.String("years", "", "comma-separated years, e.g. 2024,2025")
	months := flag.String("months", "", "comma-separated month names, e.g. Marzo,Abril")
	codes := flag.String("codes", "", "comma-separated product codes (empty means all)")
	classes := flag.String("classes", "", "comma-separated customer classes")
	out := flag.String("out", "", "output file path (defaults to the suggested filename)")
	listOptions := flag.Bool("list-options", false, "print the available filter values and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if *sourceURL == "" {
		*sourceURL = cfg.Source.URL
	}

	loader := dataprocessing.NewLoader(cfg.Source.FetchTimeout, cfg.Source.CacheTTL, logger)
	namer := dataprocessing.NewMonthNamer(cfg.Locale.MonthLanguage, logger)
	normalizer := dataprocessing.NewNormalizer(namer, logger)
	service := services.NewReportService(loader, normalizer, *sourceURL, logger)

	ctx := context.Background()

	if *listOptions {
		if err := printOptions(ctx, service); err != nil {
			logger.Error("Failed to list filter options", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	sel, err := parseSelection(*years, *months, *codes, *classes)
	if err != nil {
		logger.Error("Invalid selection", slog.String("error", err.Error()))
		flag.Usage()
		os.Exit(2)
	}

	data, filename, err := service.Export(ctx, sel)
	if err != nil {
		if errors.IsEmptyResult(err) {
			fmt.Println("No hay datos para los filtros seleccionados.")
			return
		}
		logger.Error("Export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	path := *out
	if path == "" {
		path = filename
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Error("Cannot write output file",
			slog.String("path", path),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Export complete",
		slog.String("path", path),
		slog.Int("bytes", len(data)))
	fmt.Println(path)
}

func parseSelection(years, months, codes, classes string) (domain.FilterSelection, error) {
	var sel domain.FilterSelection

	for _, part := range splitList(years) {
		y, err := strconv.Atoi(part)
		if err != nil {
			return sel, fmt.Errorf("invalid year %q: %w", part, err)
		}
		sel.Years = append(sel.Years, y)
	}
	sel.Months = splitList(months)
	sel.ProductCodes = splitList(codes)
	sel.CustomerClasses = splitList(classes)

	if len(sel.Years) == 0 || len(sel.Months) == 0 || len(sel.CustomerClasses) == 0 {
		return sel, fmt.Errorf("years, months and classes are all required")
	}
	return sel, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func printOptions(ctx context.Context, service *services.ReportService) error {
	options, err := service.Options(ctx)
	if err != nil {
		return err
	}

	yearStrs := make([]string, 0, len(options.Years))
	for _, y := range options.Years {
		yearStrs = append(yearStrs, strconv.Itoa(y))
	}

	fmt.Printf("years:   %s\n", strings.Join(yearStrs, ", "))
	fmt.Printf("months:  %s\n", strings.Join(options.Months, ", "))
	fmt.Printf("codes:   %s\n", strings.Join(options.ProductCodes, ", "))
	fmt.Printf("classes: %s\n", strings.Join(options.CustomerClasses, ", "))
	return nil
}
