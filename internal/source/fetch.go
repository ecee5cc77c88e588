package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"ados/internal/config"
)

// Fetcher retrieves published tabular text over plain HTTP. Transient
// failures are retried with backoff; the final error always embeds the
// underlying reason so it can be shown to the user verbatim.
type Fetcher struct {
	httpClient *http.Client
	retries    int
}

func NewFetcher(cfg config.Config) *Fetcher {
	retries := cfg.FetchRetries
	if retries < 1 {
		retries = 1
	}
	return &Fetcher{
		httpClient: &http.Client{Timeout: time.Duration(cfg.FetchTimeoutMs) * time.Millisecond},
		retries:    retries,
	}
}

func (f *Fetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported url scheme: %q", u.Scheme)
	}

	var lastErr error
	for attempt := 1; attempt <= f.retries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("Accept", "text/csv, text/html, text/plain")

		resp, err := f.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < f.retries {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				time.Sleep(backoff)
				lastErr = fmt.Errorf("status %d", resp.StatusCode)
				continue
			}
			return "", fmt.Errorf("fetch failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}

		return string(body), nil
	}

	if lastErr == nil {
		lastErr = errors.New("request failed")
	}
	return "", fmt.Errorf("fetch failed: %w", lastErr)
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}
