// Package graphql is a typed client for the structured-data service. Each
// lookup declares its requested field set up front and decodes into an
// explicit response schema, so required vs. optional fields are visible at
// compile time rather than at read time.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/politylink/polisearch/internal/domain"
	"github.com/politylink/polisearch/internal/metrics"
)

const defaultTimeout = 10 * time.Second

// Config holds data-service connection settings.
type Config struct {
	URL     string
	Timeout time.Duration
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client executes GraphQL lookups. It holds no per-request state and is safe
// for concurrent use.
type Client struct {
	url     string
	timeout time.Duration
	httpc   *http.Client
}

// NewClient creates a data-service client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{}
	}
	return &Client{url: cfg.URL, timeout: timeout, httpc: httpc}
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// do posts a query and decodes the data payload into out. Any transport
// failure or GraphQL-level error is a transient backend error.
func (c *Client) do(ctx context.Context, operation, query string, vars map[string]any, out any) error {
	payload, err := json.Marshal(request{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("marshal graphql request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	metrics.ObserveBackend(metrics.BackendDataService, operation, time.Since(start))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrBackendUnavailable, operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s: status %d: %s",
			domain.ErrBackendUnavailable, operation, resp.StatusCode, snippet)
	}

	var envelope response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%w: decode %s response: %w", domain.ErrBackendUnavailable, operation, err)
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}
		return fmt.Errorf("%w: %s: %s", domain.ErrBackendUnavailable, operation, strings.Join(msgs, "; "))
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: decode %s data: %w", domain.ErrBackendUnavailable, operation, err)
	}
	return nil
}

// Date is a formatted date value ("2021-01-02", optionally with a time part).
type Date struct {
	Formatted string `json:"formatted"`
}

// DateString returns the calendar-date prefix of the formatted value.
func (d *Date) DateString() string {
	if d == nil {
		return ""
	}
	if len(d.Formatted) > 10 {
		return d.Formatted[:10]
	}
	return d.Formatted
}
