// Package locate answers "where am I" with a one-shot IP geolocation lookup.
// It stands in for device geolocation: disabling it in config is the
// equivalent of the user denying the permission prompt.
package locate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultEndpoint is the ip-api.com JSON endpoint.
	DefaultEndpoint  = "http://ip-api.com/json/"
	defaultUserAgent = "atmos/0.1"
	defaultTimeout   = 5 * time.Second
)

var (
	// ErrPermissionDenied reports that location access is disabled.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrUnavailable reports that the position could not be determined.
	ErrUnavailable = errors.New("location unavailable")
)

// Position is a resolved location.
type Position struct {
	Lat  float64
	Lon  float64
	City string
}

// Locator resolves the current position.
type Locator struct {
	enabled   bool
	endpoint  *url.URL
	http      *http.Client
	userAgent string
}

// Options configure a Locator.
type Options struct {
	Enabled  bool
	Endpoint string
	Timeout  time.Duration
}

// New builds a Locator.
func New(opts Options) (*Locator, error) {
	raw := strings.TrimSpace(opts.Endpoint)
	if raw == "" {
		raw = DefaultEndpoint
	}
	endpoint, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse location endpoint %q: %w", opts.Endpoint, err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Locator{
		enabled:   opts.Enabled,
		endpoint:  endpoint,
		http:      &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}, nil
}

type payload struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
}

// Locate performs the lookup.
func (l *Locator) Locate(ctx context.Context) (Position, error) {
	if l == nil || !l.enabled {
		return Position{}, ErrPermissionDenied
	}

	reqURL := *l.endpoint
	values := reqURL.Query()
	values.Set("fields", "status,message,lat,lon,city")
	reqURL.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return Position{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.http.Do(req)
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return Position{}, ErrPermissionDenied
	case resp.StatusCode >= 400:
		return Position{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body payload
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Position{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if !strings.EqualFold(body.Status, "success") {
		return Position{}, fmt.Errorf("%w: %s", ErrUnavailable, body.Message)
	}
	return Position{Lat: body.Lat, Lon: body.Lon, City: body.City}, nil
}
