package dataprocessing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"ventascli/internal/errors"
)

// maxResponseBytes caps how much of a source response is read. Month-scale
// sales extracts are a few megabytes at most.
const maxResponseBytes = 64 << 20

// LoadResult is the outcome of one successful load: the raw table plus
// the encoding that was accepted for it.
type LoadResult struct {
	Rows      []RawRecord
	Encoding  string
	FromCache bool
}

// Loader fetches a remote tabular export and parses it with an ordered
// encoding fallback. Results are cached by URL for a bounded window so
// repeated filter interactions do not refetch.
type Loader struct {
	client  *http.Client
	cache   *loadCache
	group   singleflight.Group
	logger  *slog.Logger
	observe LoadObserver
}

// LoadObserver receives load outcomes for metrics. Implementations must
// not block.
type LoadObserver interface {
	RecordSourceLoad(ctx context.Context, outcome, encoding string)
	RecordCacheHit(ctx context.Context)
}

// LoaderOption customizes a Loader.
type LoaderOption func(*Loader)

// WithHTTPClient replaces the HTTP client (used by tests).
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) { l.client = client }
}

// WithLoadObserver attaches a metrics observer.
func WithLoadObserver(obs LoadObserver) LoaderOption {
	return func(l *Loader) { l.observe = obs }
}

// NewLoader creates a loader with the given fetch timeout and cache TTL.
func NewLoader(fetchTimeout, cacheTTL time.Duration, logger *slog.Logger, opts ...LoaderOption) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loader{
		client: &http.Client{Timeout: fetchTimeout},
		cache:  newLoadCache(cacheTTL),
		logger: logger.With(slog.String("component", "loader")),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the parsed table for url, from cache when fresh. A failed
// fetch or a payload every encoding rejects is fatal for the run: the
// returned error wraps no partial table and the fetch is not retried.
func (l *Loader) Load(ctx context.Context, url string) (*LoadResult, error) {
	if cached, ok := l.cache.get(url); ok {
		l.logger.DebugContext(ctx, "load served from cache", slog.String("url", url))
		if l.observe != nil {
			l.observe.RecordCacheHit(ctx)
		}
		hit := *cached
		hit.FromCache = true
		return &hit, nil
	}

	// Concurrent requests for the same URL share one fetch.
	result, err, _ := l.group.Do(url, func() (interface{}, error) {
		if cached, ok := l.cache.get(url); ok {
			return cached, nil
		}
		loaded, err := l.fetchAndParse(ctx, url)
		if err != nil {
			return nil, err
		}
		l.cache.put(url, loaded)
		return loaded, nil
	})
	if err != nil {
		if l.observe != nil {
			l.observe.RecordSourceLoad(ctx, "error", "")
		}
		return nil, err
	}

	loaded := result.(*LoadResult)
	if l.observe != nil {
		l.observe.RecordSourceLoad(ctx, "ok", loaded.Encoding)
	}
	return loaded, nil
}

func (l *Loader) fetchAndParse(ctx context.Context, url string) (*LoadResult, error) {
	start := time.Now()

	data, err := l.fetch(ctx, ensureDownloadParam(url))
	if err != nil {
		return nil, err
	}

	result, err := parsePayload(data)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "source loaded",
		slog.String("url", url),
		slog.String("encoding", result.Encoding),
		slog.Int("rows", len(result.Rows)),
		slog.Duration("elapsed", time.Since(start)))

	return result, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewLoadError("invalid source url", err).WithContext("url", url)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.NewNetworkError("source fetch failed", err).WithContext("url", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewNetworkError(
			fmt.Sprintf("source returned status %d", resp.StatusCode), nil).
			WithContext("url", url).
			WithContext("status", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.NewNetworkError("failed to read source response", err).WithContext("url", url)
	}
	return data, nil
}

// parsePayload parses the fetched bytes: XLSX workbooks go through
// excelize, anything else through the encoding fallback chain plus the
// delimited-table parser.
func parsePayload(data []byte) (*LoadResult, error) {
	if isWorkbook(data) {
		rows, err := parseWorkbook(data)
		if err != nil {
			return nil, err
		}
		return &LoadResult{Rows: rows, Encoding: "xlsx"}, nil
	}

	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	text, encoding, err := decodeWithFallback(data)
	if err != nil {
		return nil, errors.NewLoadError("all encodings rejected", err)
	}

	rows, err := parseDelimitedTable(text)
	if err != nil {
		return nil, err
	}
	return &LoadResult{Rows: rows, Encoding: encoding}, nil
}

// ensureDownloadParam appends download=1 so share links deliver raw
// content instead of a viewer page.
func ensureDownloadParam(url string) string {
	if strings.Contains(url, "download=1") {
		return url
	}
	joiner := "?"
	if strings.Contains(url, "?") {
		joiner = "&"
	}
	return url + joiner + "download=1"
}
