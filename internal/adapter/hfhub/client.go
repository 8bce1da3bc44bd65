package hfhub

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nickc01/rvc-model-fetcher/internal/domain"
	"github.com/nickc01/rvc-model-fetcher/internal/port"
)

// Client downloads artifacts from a Hugging Face "resolve" URL tree, or any
// host that serves raw file bytes under a common base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Ensure Client implements port.RemoteSource
var _ port.RemoteSource = (*Client)(nil)

// New creates a client for the given base URL. No overall request timeout is
// set: model files are large and transfer time is unbounded, so only the
// response-header wait is capped.
func New(baseURL string) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,

		// HTTP/2 support
		ForceAttemptHTTP2: true,

		// Disable compression for binary weight files (saves CPU)
		DisableCompression: true,

		// Response header timeout (not total download timeout)
		ResponseHeaderTimeout: 30 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: transport,
		},
	}
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch issues a streamed GET for the artifact at remotePath. Any non-200
// status is a transport error; redirects are followed by the underlying
// client first. The returned length is -1 when the server does not declare
// content-length.
func (c *Client) Fetch(ctx context.Context, remotePath string) (io.ReadCloser, int64, error) {
	url := c.baseURL + "/" + remotePath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, &domain.TransportError{Err: fmt.Errorf("failed to build request for %s: %w", url, err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, &domain.TransportError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, &domain.TransportError{Err: fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)}
	}

	return resp.Body, resp.ContentLength, nil
}
