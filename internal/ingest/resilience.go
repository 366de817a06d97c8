package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// BackoffConfig controls how failed downloads are retried.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// HTTPClientConfig bundles the client used for file downloads and its retry
// settings.
type HTTPClientConfig struct {
	Client  *http.Client
	Backoff BackoffConfig
}

// acceptReadings lists the media types monthly files are served as.
const acceptReadings = "text/csv, text/tab-separated-values, text/plain;q=0.9, */*;q=0.1"

var (
	errRateLimited   = errors.New("file server is rate limiting downloads")
	errServerError   = errors.New("file server failed")
	errFileRejected  = errors.New("file download rejected")
	errCircuitOpen   = errors.New("file server circuit open")
	errNoHTTPClient  = errors.New("http client not configured")
	errInvalidConfig = errors.New("invalid backoff configuration")
)

// newBreaker returns the circuit breaker guarding downloads from one file
// server. It opens after three consecutive failed downloads.
func newBreaker(name string, logger *slog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
		// Rejected files say nothing about the server's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errFileRejected)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if logger != nil {
				logger.Warn("file server breaker changed state", "breaker", name, "from", from.String(), "to", to.String())
			}
		},
	})
}

// download GETs one monthly file, retrying rate limits, server failures and
// transport errors with exponential backoff. A non-2xx status outside those
// is returned at once as errFileRejected, naming the URL and status.
func download(ctx context.Context, cfg HTTPClientConfig, cb *gobreaker.CircuitBreaker, fileURL string) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}
	if cfg.Backoff.MaxRetries < 0 || cfg.Backoff.InitialInterval <= 0 {
		return nil, errInvalidConfig
	}

	var attempt int

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", acceptReadings)

		result, err := cb.Execute(func() (interface{}, error) {
			resp, execErr := cfg.Client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			switch {
			case resp.StatusCode == http.StatusTooManyRequests:
				resp.Body.Close()
				return nil, fmt.Errorf("%w: GET %s returned %d", errRateLimited, fileURL, resp.StatusCode)
			case resp.StatusCode >= 500:
				resp.Body.Close()
				return nil, fmt.Errorf("%w: GET %s returned %d", errServerError, fileURL, resp.StatusCode)
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				resp.Body.Close()
				return nil, fmt.Errorf("%w: GET %s returned %d", errFileRejected, fileURL, resp.StatusCode)
			}

			return resp, nil
		})

		if err == nil {
			resp, ok := result.(*http.Response)
			if !ok {
				return nil, fmt.Errorf("unexpected result type from circuit breaker")
			}
			return resp, nil
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: GET %s: %v", errCircuitOpen, fileURL, err)
		}

		// A rejected file will be rejected again.
		if errors.Is(err, errFileRejected) || attempt >= cfg.Backoff.MaxRetries {
			return nil, err
		}

		delay := cfg.Backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if delay > cfg.Backoff.MaxInterval && cfg.Backoff.MaxInterval > 0 {
			delay = cfg.Backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}
