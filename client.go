// Package polisearch is a typed Go client for the polisearch HTTP API.
package polisearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	billuc "github.com/politylink/polisearch/internal/usecase/bill"
	memberuc "github.com/politylink/polisearch/internal/usecase/member"
	speechuc "github.com/politylink/polisearch/internal/usecase/speech"
	wordclouduc "github.com/politylink/polisearch/internal/usecase/wordcloud"
)

// Response aliases so SDK users need no internal imports.
type (
	// BillEnvelope is the /bills response.
	BillEnvelope = billuc.Envelope
	// MemberEnvelope is the /members response.
	MemberEnvelope = memberuc.Envelope
	// SpeechEnvelope is the /search response.
	SpeechEnvelope = speechuc.Envelope
	// TFIDFWindow is one window of the /tf_idf response.
	TFIDFWindow = wordclouduc.Window
)

// Client is the polisearch SDK entry point.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BillQuery holds the /bills query parameters. Zero values are omitted.
type BillQuery struct {
	Query           string
	Categories      []string
	Statuses        []string
	BelongedToDiets []string
	SubmittedDiets  []string
	SubmittedGroups []string
	SupportedGroups []string
	OpposedGroups   []string
	FullText        bool
	Page            int
	Items           int
	FragmentSize    int
}

// Bills searches bills.
func (c *Client) Bills(ctx context.Context, q BillQuery) (*BillEnvelope, error) {
	params := url.Values{}
	setString(params, "q", q.Query)
	params["category"] = q.Categories
	params["status"] = q.Statuses
	params["belonged"] = q.BelongedToDiets
	params["submitted_diet"] = q.SubmittedDiets
	params["submitted_group"] = q.SubmittedGroups
	params["supported_group"] = q.SupportedGroups
	params["opposed_group"] = q.OpposedGroups
	if q.FullText {
		params.Set("full", "true")
	}
	setInt(params, "page", q.Page)
	setInt(params, "items", q.Items)
	setInt(params, "fragment", q.FragmentSize)

	var out BillEnvelope
	if err := c.get(ctx, "/bills", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MemberQuery holds the /members query parameters.
type MemberQuery struct {
	Query        string
	Groups       []string
	Houses       []string
	Page         int
	Items        int
	FragmentSize int
}

// Members searches members.
func (c *Client) Members(ctx context.Context, q MemberQuery) (*MemberEnvelope, error) {
	params := url.Values{}
	setString(params, "q", q.Query)
	params["group"] = q.Groups
	params["house"] = q.Houses
	setInt(params, "page", q.Page)
	setInt(params, "items", q.Items)
	setInt(params, "fragment", q.FragmentSize)

	var out MemberEnvelope
	if err := c.get(ctx, "/members", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SpeechQuery holds the /search request body.
type SpeechQuery struct {
	Term         string `json:"term"`
	Start        string `json:"start"`
	End          string `json:"end"`
	Committee    string `json:"committee,omitempty"`
	Items        int    `json:"items,omitempty"`
	FragmentSize int    `json:"fragment,omitempty"`
}

// SearchSpeech searches committee speeches within a date range.
func (c *Client) SearchSpeech(ctx context.Context, q SpeechQuery) (*SpeechEnvelope, error) {
	var out SpeechEnvelope
	if err := c.post(ctx, "/search", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TFIDFQuery holds the /tf_idf request body.
type TFIDFQuery struct {
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	Committee string `json:"committee,omitempty"`
	Diet      int    `json:"diet,omitempty"`
	Interval  int    `json:"interval,omitempty"`
	Items     int    `json:"items,omitempty"`
}

// TFIDF computes windowed term rankings for word-cloud display.
func (c *Client) TFIDF(ctx context.Context, q TFIDFQuery) ([]TFIDFWindow, error) {
	var out []TFIDFWindow
	if err := c.post(ctx, "/tf_idf", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReloadTermStats reloads the server's term-statistics table, from file if
// non-empty, otherwise from the server's configured path.
func (c *Client) ReloadTermStats(ctx context.Context, file string) error {
	return c.post(ctx, "/load", map[string]string{"file": file}, &struct {
		Success bool `json:"success"`
	}{})
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("polisearch: build request: %w", err)
	}
	return c.send(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("polisearch: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("polisearch: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("polisearch: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if err := json.Unmarshal(snippet, &apiErr); err == nil && apiErr.Code != "" {
			return fmt.Errorf("polisearch: %s %s: %s (%s)",
				req.Method, req.URL.Path, apiErr.Message, apiErr.Code)
		}
		return fmt.Errorf("polisearch: %s %s: status %d",
			req.Method, req.URL.Path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("polisearch: decode response: %w", err)
	}
	return nil
}

func setString(params url.Values, name, value string) {
	if value != "" {
		params.Set(name, value)
	}
}

func setInt(params url.Values, name string, value int) {
	if value > 0 {
		params.Set(name, strconv.Itoa(value))
	}
}
