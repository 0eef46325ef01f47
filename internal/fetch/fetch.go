// ABOUTME: HTTP fetcher for the published feed document
// ABOUTME: One cancellable GET per call with status checking and a response size limit

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const MaxResponseSize = 10 * 1024 * 1024 // 10MB

// UserAgent identifies curio to the feed host.
const UserAgent = "curio/1.0 (feed client)"

// HTTPError is returned for any response status other than 200.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

// Client retrieves feed documents over HTTP.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client whose requests give up after timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch performs a single GET of urlStr and returns the body.
// Returns *HTTPError for non-200 responses and a wrapped transport error
// when the request could not be completed. ctx cancels the request.
func (c *Client) Fetch(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}

	// Read response body with DoS protection (10MB limit)
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response too large (exceeds %d bytes)", MaxResponseSize)
	}

	return body, nil
}
