// Package fetcher downloads the published content-plan table.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBody caps the sheet export size; larger exports are rejected.
const maxBody = 5 * 1024 * 1024

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// FetchError reports an unreachable table source or a non-success response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch table: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("fetch table: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher downloads the CSV export of a sheet.
type Fetcher struct {
	client  HTTPClient
	timeout time.Duration
}

// New creates a Fetcher with the given HTTP client.
func New(client HTTPClient) *Fetcher {
	return &Fetcher{
		client:  client,
		timeout: 30 * time.Second,
	}
}

// Fetch downloads the table text at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", "ContentPlanBot/1.0")
	req.Header.Set("Accept", "text/csv")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("http get: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(body) > maxBody {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("response exceeds %d bytes", maxBody)}
	}
	return body, nil
}
