// Package corpusgate provides a Go client library for interacting with a
// corpusgate server. Backend services can resolve signed download URLs
// for stored blobs without writing raw HTTP calls.
package corpusgate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is the main entry point for interacting with a corpusgate server.
// Create one with NewClient and use it to resolve download URLs.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new Client for the given corpusgate server URL and API key.
// baseURL should be the root URL of the server, e.g., "https://corpusgate.example.com".
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// The server answers with a redirect to the signed URL; the
			// client surfaces that URL instead of following it.
			CheckRedirect: func(_ *http.Request, _ []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// doRequest performs an HTTP request with retry logic.
// Retries up to 3 times with exponential backoff on 5xx responses or network errors.
func (c *Client) doRequest(ctx context.Context, method, path string) (*http.Response, error) {
	requestURL := c.baseURL + path
	delays := []time.Duration{500 * time.Millisecond, time.Second, 2 * time.Second}

	var lastErr error
	for attempt := 0; attempt <= 3; attempt++ {
		// If not the first attempt, wait with backoff
		if attempt > 0 {
			if attempt-1 < len(delays) {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(delays[attempt-1]):
				}
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("corpusgate: failed to create request: %w", err)
		}
		req.Header.Set("X-API-Key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Check for network/timeout errors — these are retryable
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				lastErr = err
				continue
			}
			// Other network errors are also retryable
			var opErr *net.OpError
			if errors.As(err, &opErr) {
				lastErr = err
				continue
			}
			return nil, err
		}

		// 5xx responses are retryable (except on last attempt)
		if resp.StatusCode >= 500 && attempt < 3 {
			resp.Body.Close()
			lastErr = fmt.Errorf("corpusgate: server error %d", resp.StatusCode)
			continue
		}

		// Redirects are the expected success shape; other non-2xx/3xx → APIError
		if resp.StatusCode < 200 || resp.StatusCode >= 400 {
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, newAPIError(resp.StatusCode, bodyBytes)
		}

		return resp, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("corpusgate: request failed after retries: %w", lastErr)
	}
	return nil, fmt.Errorf("corpusgate: request failed after retries")
}

// ResolveDownloadURL asks the server for a signed download URL for the blob
// named filename within container, and returns the URL without following it.
// The returned URL is time-limited; callers should use it promptly.
func (c *Client) ResolveDownloadURL(ctx context.Context, container, filename string) (string, error) {
	query := url.Values{}
	query.Set("container", container)
	query.Set("filename", filename)

	resp, err := c.doRequest(ctx, http.MethodGet, "/api/v1/download?"+query.Encode())
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	location := resp.Header.Get("Location")
	if location == "" {
		return "", fmt.Errorf("corpusgate: server response %d carried no Location header", resp.StatusCode)
	}
	return location, nil
}
