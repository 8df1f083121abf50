package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/politylink/polisearch/internal/domain"
	"github.com/politylink/polisearch/internal/metrics"
)

const defaultTimeout = 10 * time.Second

// Config holds search-index connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client executes search requests against one index endpoint. It holds no
// per-request state and is safe for concurrent use.
type Client struct {
	baseURL string
	timeout time.Duration
	httpc   *http.Client
}

// NewClient creates a search-index client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{}
	}
	return &Client{baseURL: cfg.BaseURL, timeout: timeout, httpc: httpc}
}

// Search posts body to {index}/_search and decodes the response. Transport
// failures, timeouts and non-2xx statuses all surface as transient backend
// errors; retrying is the caller's concern.
func (c *Client) Search(ctx context.Context, index string, body *Body) (*Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s/_search", c.baseURL, index)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.ObserveBackend(metrics.BackendSearchIndex, index, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: search %s: %w", domain.ErrBackendUnavailable, index, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: search %s: status %d: %s",
			domain.ErrBackendUnavailable, index, resp.StatusCode, snippet)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %w", domain.ErrBackendUnavailable, err)
	}
	return &out, nil
}
