package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weatherman/internal/store"
	"github.com/i474232898/weatherman/internal/weather"
)

// HTTPLoader downloads monthly files one after another and builds a store
// from them.
type HTTPLoader struct {
	urls    []string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewHTTPLoader creates an HTTPLoader for the given file URLs.
func NewHTTPLoader(client *http.Client, urls []string, logger *slog.Logger) *HTTPLoader {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "ingest", "source", "http")
	return &HTTPLoader{
		urls: urls,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: newBreaker("remote-files", logger),
		logger:  logger,
	}
}

func (l *HTTPLoader) Name() string {
	return fmt.Sprintf("http:%d files", len(l.urls))
}

// Load fetches every URL in order. Any download or decode failure aborts the
// load so a partial store is never served.
func (l *HTTPLoader) Load(ctx context.Context) (weather.Store, error) {
	b := store.NewBuilder()

	for _, raw := range l.urls {
		readings, err := l.fetch(ctx, raw)
		if err != nil {
			if errors.Is(err, ErrNoHeader) {
				l.logger.Warn("skipping file without header", "url", raw)
				continue
			}
			return nil, fmt.Errorf("fetch %s: %w", raw, err)
		}

		key, ok := addFile(b, readings)
		if !ok {
			l.logger.Warn("skipping file without dated rows", "url", raw)
			continue
		}
		l.logger.Debug("file fetched", "url", raw, "month", key.String(), "readings", len(readings))
	}

	st := b.Build()
	l.logger.Info("remote files loaded", "files", len(l.urls), "months", st.Len())
	return st, nil
}

func (l *HTTPLoader) fetch(ctx context.Context, raw string) ([]weather.Reading, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	comma, err := Separator(path.Base(u.Path))
	if err != nil {
		return nil, err
	}

	resp, err := download(ctx, l.httpCfg, l.circuit, u.String())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return Decode(resp.Body, comma)
}
