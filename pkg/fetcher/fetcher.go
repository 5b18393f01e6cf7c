package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"
)

// StatusError is returned when the upstream answered with anything but 200.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch HTML, status code: %d", e.StatusCode)
}

type Fetcher struct {
	client  *http.Client
	timeout atomic.Int64
}

// NewFetcher returns a Fetcher that gives up on a request after timeout.
// Redirects are not followed: a 3xx is handed back to the caller as-is.
func NewFetcher(timeout time.Duration) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
	f.SetTimeout(timeout)
	return f
}

// SetTimeout changes the per-request timeout for subsequent fetches.
func (f *Fetcher) SetTimeout(timeout time.Duration) {
	f.timeout.Store(int64(timeout))
}

func (f *Fetcher) Timeout() time.Duration {
	return time.Duration(f.timeout.Load())
}

// GetHtmlBytes issues a single GET and returns the body of a 200 response.
// Transport failures are wrapped as-is; non-200 responses yield *StatusError.
func (f *Fetcher) GetHtmlBytes(ctx context.Context, url string) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, f.Timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	return bodyBytes, resp.StatusCode, nil
}
