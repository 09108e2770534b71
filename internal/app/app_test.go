package app

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ventascli/internal/config"
	"ventascli/internal/infrastructure"
)

func testApplication(t *testing.T) *Application {
	t.Helper()

	metrics, err := infrastructure.InitializeMetrics(slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { metrics.Shutdown(context.Background()) })

	app := &Application{
		Config: &config.Config{
			Server: config.ServerConfig{
				Port:         8080,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 120 * time.Second,
				IdleTimeout:  60 * time.Second,
			},
			Source: config.SourceConfig{
				URL:          "http://localhost:1/export.csv",
				FetchTimeout: time.Second,
				CacheTTL:     10 * time.Minute,
			},
			Locale:    config.LocaleConfig{MonthLanguage: "es"},
			RateLimit: config.RateLimitConfig{Enabled: true, RPS: 100, Burst: 50},
		},
		Logger:  slog.Default(),
		Metrics: metrics,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()
	return app
}

func TestApplication_RoutesHealthz(t *testing.T) {
	app := testApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestApplication_RoutesMetrics(t *testing.T) {
	app := testApplication(t)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApplication_ReportRejectsInvalidBody(t *testing.T) {
	app := testApplication(t)

	req := httptest.NewRequest(http.MethodPost, "/api/report", nil)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplication_ServerAddress(t *testing.T) {
	app := testApplication(t)
	assert.Equal(t, ":8080", app.Server.Addr)
}
