package http

import (
	"context"

	"ventascli/pkg/contracts/domain"
)

// ReportServiceInterface is the pipeline surface the handlers consume.
type ReportServiceInterface interface {
	Options(ctx context.Context) (domain.FilterOptions, error)
	Run(ctx context.Context, sel domain.FilterSelection) (*domain.Report, error)
	Export(ctx context.Context, sel domain.FilterSelection) ([]byte, string, error)
}
