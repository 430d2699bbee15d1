// Package summary fetches a short description of a place from a public page
// summary API. Fetches are best effort: every failure degrades to Placeholder.
package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the Wikipedia REST API root.
	DefaultBaseURL = "https://en.wikipedia.org/api/rest_v1"

	// Placeholder is returned whenever no summary is available.
	Placeholder = "No specific insights available for this location."

	// Loading is shown while a summary request is in flight.
	Loading = "Loading info..."

	standardType     = "standard"
	defaultUserAgent = "atmos/0.1"
	defaultTimeout   = 5 * time.Second
)

// Summary is the outcome of a fetch. Link is only set when OK is true.
type Summary struct {
	Text string
	Link string
	OK   bool
}

// Client talks to the page summary endpoint.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       *zap.Logger
}

// NewClient builds a Client. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	base, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse summary base url %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
		log:       logger,
	}, nil
}

type pagePayload struct {
	Type        string `json:"type"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Fetch returns the summary for name. It never fails; problems are logged and
// reported as the placeholder.
func (c *Client) Fetch(ctx context.Context, name string) Summary {
	payload, err := c.fetch(ctx, name)
	if err != nil {
		c.log.Debug("summary unavailable", zap.String("name", name), zap.Error(err))
		return Summary{Text: Placeholder}
	}
	if payload.Type != standardType || strings.TrimSpace(payload.Extract) == "" {
		return Summary{Text: Placeholder}
	}
	return Summary{
		Text: strings.TrimSpace(payload.Extract),
		Link: payload.ContentURLs.Desktop.Page,
		OK:   true,
	}
}

func (c *Client) fetch(ctx context.Context, name string) (pagePayload, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return pagePayload{}, fmt.Errorf("name is empty")
	}
	reqURL := c.baseURL.JoinPath("page", "summary", name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return pagePayload{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return pagePayload{}, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return pagePayload{}, fmt.Errorf("api %s returned status %d", reqURL.Path, resp.StatusCode)
	}
	var payload pagePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return pagePayload{}, fmt.Errorf("decode response: %w", err)
	}
	return payload, nil
}
