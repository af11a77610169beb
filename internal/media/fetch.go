// fetch.go downloads remote media into a Store.
//
// Design: Fetches go through a circuit breaker. A remote host that keeps
// failing trips the breaker after MaxFailures consecutive errors, and further
// fetches fail fast with ErrCircuitOpen until Cooldown passes.

package media

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// FetcherConfig configures a Fetcher. Zero values take the defaults noted.
type FetcherConfig struct {
	Timeout     time.Duration // per request, default 30s
	MaxFailures uint32        // consecutive failures before tripping, default 3
	Cooldown    time.Duration // time the breaker stays open, default 30s
	Client      *http.Client  // default uses Timeout
}

// Fetcher downloads remote URLs into a Store.
type Fetcher struct {
	store   *Store
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewFetcher returns a Fetcher writing into st.
func NewFetcher(st *Store, cfg FetcherConfig) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 3
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	maxFailures := cfg.MaxFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "media-fetch",
		MaxRequests: 1,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// Bad input is the caller's fault and must not trip the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrTooLarge) || errors.Is(err, context.Canceled)
		},
	})

	return &Fetcher{store: st, client: client, breaker: breaker}
}

// Fetch downloads rawURL and returns the stored media URL. The extension is
// derived from the response Content-Type.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not an http(s) URL", ErrFetchFailed, rawURL)
	}

	result, err := f.breaker.Execute(func() (interface{}, error) {
		return f.fetch(ctx, u.String())
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", ErrCircuitOpen
	}
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s returned %s", ErrFetchFailed, rawURL, resp.Status)
	}
	return f.store.write(ExtForContentType(resp.Header.Get("Content-Type")), resp.Body)
}
