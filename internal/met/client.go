package met

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
	"time"
)

const defaultAPIBase = "https://collectionapi.metmuseum.org/public/collection/v1"

// Client talks to the Met Museum open-access collection API.
// The API is unauthenticated; the client only carries the base URL, the
// HTTP client, and the fan-out bound for detail fetches.
type Client struct {
	apiBase     string
	http        *http.Client
	parallelism int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (tests use this).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithParallelism sets the worker bound for detail fan-out. Values below 1
// fall back to the default.
func WithParallelism(n int) Option {
	return func(c *Client) {
		if n >= 1 {
			c.parallelism = n
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// New creates a Client for the given API base URL. If apiBase is empty the
// public Met endpoint is used.
func New(apiBase string, opts ...Option) *Client {
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	apiBase = strings.TrimRight(apiBase, "/")

	c := &Client{
		apiBase: apiBase,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		parallelism: defaultParallelism(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// defaultParallelism bounds the detail fan-out to a small multiple of the
// available cores rather than a fixed constant.
func defaultParallelism() int {
	n := runtime.GOMAXPROCS(0) * 4
	if n < 1 {
		n = 1
	}
	return n
}

// getJSON issues a GET and decodes the JSON response into out.
// Failures come back as *TransportError.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &TransportError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &TransportError{
			URL:    url,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s", strings.TrimSpace(string(body))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{URL: url, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// FetchImage downloads an image resource and returns its bytes.
func (c *Client) FetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{URL: url, Status: resp.StatusCode, Err: fmt.Errorf("image fetch failed")}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	return data, nil
}

// url builds an API URL from path segments.
func (c *Client) url(parts ...string) string {
	return c.apiBase + "/" + strings.Join(parts, "/")
}
