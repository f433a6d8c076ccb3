// Package dictionary fetches kanji details and word search results from the
// public kanjiapi.dev and jisho.org endpoints.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/verte-zerg/nihongo/internal/logger"
)

var (
	// ErrNotFound is returned when the source has no entry for the key.
	ErrNotFound = errors.New("not found")
	// ErrNoResults is returned by Lookup when nothing matched anywhere.
	ErrNoResults = errors.New("no results")
)

const (
	defaultTimeout   = 10 * time.Second
	defaultCacheSize = 256
	userAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Options configures a client. Zero values select the defaults.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
	CacheSize  int
}

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return &http.Client{Timeout: defaultTimeout}
}

func (o Options) logger() *zap.Logger {
	return logger.OrNop(o.Logger)
}

func get(ctx context.Context, client *http.Client, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}
