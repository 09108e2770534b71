package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ventascli/internal/config"
	"ventascli/internal/dataprocessing"
	"ventascli/internal/errors"
	"ventascli/internal/infrastructure"
	customMiddleware "ventascli/internal/middleware"
	"ventascli/internal/services"
	handlers "ventascli/internal/transport/http"
	"ventascli/pkg/contracts"
)

// AppName identifies the service in startup logs.
const AppName = "Ventas Report Service"

// Application wires the report pipeline behind the HTTP API.
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	Metrics       *infrastructure.Metrics
	ReportService *services.ReportService
}

// NewApplication loads configuration and assembles all components.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", contracts.Version))

	metrics, err := infrastructure.InitializeMetrics(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	app := &Application{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices builds the pipeline components in dependency order.
func (a *Application) initializeServices() {
	loader := dataprocessing.NewLoader(
		a.Config.Source.FetchTimeout,
		a.Config.Source.CacheTTL,
		a.Logger,
		dataprocessing.WithLoadObserver(a.Metrics),
	)

	months := dataprocessing.NewMonthNamer(a.Config.Locale.MonthLanguage, a.Logger)
	normalizer := dataprocessing.NewNormalizer(months, a.Logger)

	a.ReportService = services.NewReportService(loader, normalizer, a.Config.Source.URL, a.Logger).
		WithRunObserver(a.Metrics)
}

// setupRouter configures the HTTP router with all routes.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.Compress(5))

	if a.Config.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.RateLimit.RPS,
			a.Config.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	errorHandler := errors.NewErrorHandler(a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		healthHandler := handlers.NewHealthHandler(a.Logger, contracts.Version)
		r.Get("/healthz", healthHandler.HealthCheck)

		// Report runs fetch from the remote source on a cold cache, so
		// they get the write timeout rather than the read timeout.
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Server.WriteTimeout, a.Logger))

			reportHandler := handlers.NewReportHandler(a.ReportService, a.Logger, errorHandler)
			r.Mount("/report", reportHandler.Routes())
		})
	})

	// Prometheus scrape endpoint stays outside the rate-limited API tree.
	r.Handle("/metrics", a.Metrics.Handler())

	a.Router = r
}

// createServer creates the HTTP server.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start begins serving. Server errors cancel the supplied context.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.Logger.InfoContext(ctx, "Starting server",
		slog.Int("port", a.Config.Server.Port),
		slog.String("source_url", a.Config.Source.URL),
		slog.String("month_language", a.Config.Locale.MonthLanguage))

	if a.Config.Source.URL == "" {
		a.Logger.WarnContext(ctx, "No source URL configured, report endpoints will answer with CONFIG errors")
	}

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	a.Logger.InfoContext(ctx, "Application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
	return nil
}

// Stop gracefully stops the application.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := a.Metrics.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "Error shutting down metrics", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run runs the application until interrupted.
func (a *Application) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := a.Start(ctx, cancel); err != nil {
		return err
	}

	select {
	case <-sigChan:
		a.Logger.InfoContext(ctx, "Received interrupt signal")
	case <-ctx.Done():
	}

	return a.Stop(context.Background())
}
