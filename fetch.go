package spravodaj

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultFetchTimeout bounds a single source fetch. There are no retries:
// one attempt per source per run.
const DefaultFetchTimeout = 25 * time.Second

const (
	userAgent    = "osobny-spravodaj/0.2 (+https://github.com/rewizard001/osobny-spravodaj)"
	acceptHeader = "application/rss+xml, application/xml;q=0.9, text/xml;q=0.9, text/html;q=0.8, */*;q=0.7"

	// maxFetchBytes caps how much of a response body is read. Listing pages
	// and feeds are small; anything larger is junk.
	maxFetchBytes = 8 << 20
)

// Fetcher retrieves raw text over HTTP with a finite per-request timeout.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a fetcher with the given per-request timeout. A zero
// timeout falls back to DefaultFetchTimeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Fetch performs a single GET and returns the response body as text. Any
// transport failure or non-200 status is returned as an error for the
// caller to degrade into a warning.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}
