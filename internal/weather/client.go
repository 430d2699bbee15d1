package weather

import (
	"context"
	"strings"
)

// Source produces a snapshot for a query.
type Source interface {
	Fetch(ctx context.Context, q Query) (Snapshot, error)
}

// Ensure both data sources satisfy Source at compile time.
var (
	_ Source = (*Mock)(nil)
	_ Source = keyedRemote{}
)

// Client picks between the remote and mock sources per request.
type Client struct {
	remote *Remote
	mock   *Mock
}

// NewClient pairs a remote source with the demo-mode mock.
func NewClient(remote *Remote, mock *Mock) *Client {
	if mock == nil {
		mock = NewMock(MockOptions{})
	}
	return &Client{remote: remote, mock: mock}
}

// Source returns the mock when apiKey is empty and the remote otherwise.
func (c *Client) Source(apiKey string) Source {
	if strings.TrimSpace(apiKey) == "" || c.remote == nil {
		return c.mock
	}
	return c.remote.WithKey(apiKey)
}

// FetchCurrentAndForecast resolves q into a snapshot using the source chosen
// for apiKey.
func (c *Client) FetchCurrentAndForecast(ctx context.Context, q Query, apiKey string) (Snapshot, error) {
	return c.Source(apiKey).Fetch(ctx, q)
}

// DemoMode reports whether apiKey selects the mock source.
func DemoMode(apiKey string) bool {
	return strings.TrimSpace(apiKey) == ""
}
