package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the OpenWeatherMap 2.5 API root.
	DefaultBaseURL   = "https://api.openweathermap.org/data/2.5"
	defaultUserAgent = "atmos/0.1"
	defaultTimeout   = 10 * time.Second

	// ForecastPoints is how many 3-hour forecast entries a snapshot keeps.
	ForecastPoints = 9
)

// Remote talks to the OpenWeatherMap HTTP API. One Remote is shared by all
// requests; the API key is bound per request through WithKey.
type Remote struct {
	baseURL   *url.URL
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	log       *zap.Logger
}

// RemoteOptions configure a Remote.
type RemoteOptions struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64 // zero disables rate limiting
	Burst             int
	Logger            *zap.Logger
}

// NewRemote builds a Remote.
func NewRemote(opts RemoteOptions) (*Remote, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Remote{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		limiter:   limiter,
		userAgent: defaultUserAgent,
		log:       logger,
	}, nil
}

// WithKey binds an API key, yielding a Source.
func (r *Remote) WithKey(apiKey string) Source {
	return keyedRemote{remote: r, apiKey: strings.TrimSpace(apiKey)}
}

type keyedRemote struct {
	remote *Remote
	apiKey string
}

// Fetch issues the current-conditions request, then the forecast request at
// the resolved coordinates, and merges the first ForecastPoints entries.
func (k keyedRemote) Fetch(ctx context.Context, q Query) (Snapshot, error) {
	if err := q.validate(); err != nil {
		return Snapshot{}, err
	}

	var current Snapshot
	if err := k.remote.get(ctx, k.apiKey, "weather", q.values(), &current); err != nil {
		return Snapshot{}, classify(err, !q.IsCoords())
	}

	coord := current.Coord
	if q.IsCoords() {
		coord = q.Coord
	}
	if coord == nil {
		return Snapshot{}, fmt.Errorf("%w: current conditions for %q carried no coordinates", ErrNetwork, q.String())
	}

	var forecast struct {
		List []ForecastPoint `json:"list"`
	}
	if err := k.remote.get(ctx, k.apiKey, "forecast", coordValues(*coord), &forecast); err != nil {
		return Snapshot{}, classify(err, false)
	}

	points := forecast.List
	if len(points) > ForecastPoints {
		points = points[:ForecastPoints]
	}
	current.Forecast = append([]ForecastPoint(nil), points...)
	current.Mock = false
	return current, nil
}

// statusError records a non-2xx response before it is classified.
type statusError struct {
	endpoint string
	code     int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.endpoint, e.code)
}

// classify converts a statusError into the package sentinel errors. notFound
// enables the 404 mapping, which only applies to name lookups.
func classify(err error, notFound bool) error {
	var se *statusError
	if !errors.As(err, &se) {
		return err
	}
	switch {
	case se.code == http.StatusUnauthorized:
		return fmt.Errorf("%w: %v", ErrUnauthorized, se)
	case se.code == http.StatusNotFound && notFound:
		return fmt.Errorf("%w: %v", ErrNotFound, se)
	default:
		return fmt.Errorf("%w: %v", ErrNetwork, se)
	}
}

func (r *Remote) get(ctx context.Context, apiKey, endpoint string, params url.Values, dest any) error {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limit wait: %v", ErrNetwork, err)
		}
	}

	params.Set("units", "metric")
	params.Set("appid", apiKey)
	reqURL := r.baseURL.JoinPath(endpoint)
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", r.userAgent)

	started := time.Now()
	resp, err := r.http.Do(req)
	if err != nil {
		r.log.Warn("weather request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return fmt.Errorf("%w: execute request: %v", ErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	r.log.Debug("weather request",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{endpoint: endpoint, code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrNetwork, endpoint, err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse weather base url %q: %w", raw, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
