package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

type upstream struct {
	currentStatus  int
	forecastStatus int
	currentBody    string
	coord          Coord
	forecastLen    int

	currentQuery  url.Values
	forecastQuery url.Values
	userAgent     string
	calls         []string
}

func (u *upstream) handler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/data/2.5/weather":
			u.calls = append(u.calls, "weather")
			u.currentQuery = r.URL.Query()
			if u.currentStatus != 0 && u.currentStatus != http.StatusOK {
				http.Error(w, `{"cod":"err"}`, u.currentStatus)
				return
			}
			if u.currentBody != "" {
				_, _ = w.Write([]byte(u.currentBody))
				return
			}
			name := r.URL.Query().Get("q")
			if name == "" {
				name = "Somewhere"
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"name":    name,
				"coord":   map[string]float64{"lat": u.coord.Lat, "lon": u.coord.Lon},
				"main":    map[string]any{"temp": 17.6, "humidity": 64, "pressure": 1012},
				"weather": []map[string]string{{"main": "Clouds", "description": "broken clouds", "icon": "04d"}},
				"wind":    map[string]float64{"speed": 4.1, "deg": 220},
				"dt":      1700000000,
				"sys":     map[string]string{"country": "FR"},
			})
		case "/data/2.5/forecast":
			u.calls = append(u.calls, "forecast")
			u.forecastQuery = r.URL.Query()
			if u.forecastStatus != 0 && u.forecastStatus != http.StatusOK {
				http.Error(w, "nope", u.forecastStatus)
				return
			}
			list := make([]map[string]any, 0, u.forecastLen)
			for i := range u.forecastLen {
				list = append(list, map[string]any{
					"dt":     1700000000 + i*10800,
					"main":   map[string]any{"temp": 10 + float64(i), "humidity": 50},
					"dt_txt": "ignored",
				})
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"list": list})
		default:
			http.NotFound(w, r)
		}
	})
}

func newTestRemote(t *testing.T, u *upstream) *Remote {
	t.Helper()
	server := httptest.NewServer(u.handler(t))
	t.Cleanup(server.Close)

	remote, err := NewRemote(RemoteOptions{BaseURL: server.URL + "/data/2.5", Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewRemote returned error: %v", err)
	}
	return remote
}

func TestRemote_NameQueryUsesResponseCoordinatesForForecast(t *testing.T) {
	u := &upstream{coord: Coord{Lat: 48.85, Lon: 2.35}, forecastLen: 12}
	remote := newTestRemote(t, u)

	snap, err := remote.WithKey("secret").Fetch(context.Background(), ByName("Paris"))
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if got := strings.Join(u.calls, ","); got != "weather,forecast" {
		t.Fatalf("calls = %q, want weather then forecast", got)
	}
	if u.currentQuery.Get("q") != "Paris" ||
		u.currentQuery.Get("units") != "metric" ||
		u.currentQuery.Get("appid") != "secret" {
		t.Fatalf("current query = %v, want q/units/appid", u.currentQuery)
	}
	if u.forecastQuery.Get("lat") != "48.85" || u.forecastQuery.Get("lon") != "2.35" {
		t.Fatalf("forecast query = %v, want coordinates from current response", u.forecastQuery)
	}
	if u.forecastQuery.Get("units") != "metric" || u.forecastQuery.Get("appid") != "secret" {
		t.Fatalf("forecast query = %v, want units and appid", u.forecastQuery)
	}
	if !strings.HasPrefix(u.userAgent, "atmos/") {
		t.Fatalf("User-Agent = %q, want atmos/*", u.userAgent)
	}

	if snap.Name != "Paris" || snap.Sys.Country != "FR" || snap.Main.Humidity != 64 {
		t.Fatalf("snapshot = %#v, want Paris/FR/64%%", snap)
	}
	if snap.Condition() != "Clouds" || snap.Description() != "broken clouds" {
		t.Fatalf("condition = %q/%q, want Clouds/broken clouds", snap.Condition(), snap.Description())
	}
	if snap.Mock {
		t.Fatalf("remote snapshot flagged as mock")
	}
	if len(snap.Forecast) != ForecastPoints {
		t.Fatalf("forecast len = %d, want %d", len(snap.Forecast), ForecastPoints)
	}
	if snap.Forecast[0].Main.Temp != 10 || snap.Forecast[8].Main.Temp != 18 {
		t.Fatalf("forecast temps = %v..%v, want first nine entries", snap.Forecast[0].Main.Temp, snap.Forecast[8].Main.Temp)
	}
}

func TestRemote_CoordQueryUsesRequestCoordinates(t *testing.T) {
	u := &upstream{coord: Coord{Lat: 1, Lon: 1}, forecastLen: 3}
	remote := newTestRemote(t, u)

	snap, err := remote.WithKey("k").Fetch(context.Background(), ByCoords(51.5, -0.12))
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if u.currentQuery.Get("lat") != "51.5" || u.currentQuery.Get("lon") != "-0.12" || u.currentQuery.Has("q") {
		t.Fatalf("current query = %v, want lat/lon only", u.currentQuery)
	}
	if u.forecastQuery.Get("lat") != "51.5" || u.forecastQuery.Get("lon") != "-0.12" {
		t.Fatalf("forecast query = %v, want request coordinates", u.forecastQuery)
	}
	if len(snap.Forecast) != 3 {
		t.Fatalf("forecast len = %d, want all 3 entries", len(snap.Forecast))
	}
}

func TestRemote_ErrorClassification(t *testing.T) {
	cases := []struct {
		name  string
		u     upstream
		query Query
		want  error
		calls int
	}{
		{"unauthorized", upstream{currentStatus: http.StatusUnauthorized}, ByName("Paris"), ErrUnauthorized, 1},
		{"name not found", upstream{currentStatus: http.StatusNotFound}, ByName("Nowhere"), ErrNotFound, 1},
		{"coords 404 is network", upstream{currentStatus: http.StatusNotFound}, ByCoords(1, 2), ErrNetwork, 1},
		{"server error", upstream{currentStatus: http.StatusInternalServerError}, ByName("Paris"), ErrNetwork, 1},
		{"bad json", upstream{currentBody: "{not-json"}, ByName("Paris"), ErrNetwork, 1},
		{"missing coord", upstream{currentBody: `{"name":"Paris"}`}, ByName("Paris"), ErrNetwork, 1},
		{"forecast failure", upstream{forecastStatus: http.StatusBadGateway}, ByName("Paris"), ErrNetwork, 2},
		{"forecast unauthorized", upstream{forecastStatus: http.StatusUnauthorized}, ByName("Paris"), ErrUnauthorized, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := tc.u
			remote := newTestRemote(t, &u)
			_, err := remote.WithKey("k").Fetch(context.Background(), tc.query)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Fetch error = %v, want %v", err, tc.want)
			}
			if len(u.calls) != tc.calls {
				t.Fatalf("calls = %v, want %d", u.calls, tc.calls)
			}
		})
	}
}

func TestRemote_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	remote, err := NewRemote(RemoteOptions{BaseURL: base, Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewRemote returned error: %v", err)
	}
	_, err = remote.WithKey("k").Fetch(context.Background(), ByName("Paris"))
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("Fetch error = %v, want ErrNetwork", err)
	}
}

func TestRemote_RateLimiterHonoursContext(t *testing.T) {
	u := &upstream{coord: Coord{Lat: 1, Lon: 2}, forecastLen: 1}
	server := httptest.NewServer(u.handler(t))
	t.Cleanup(server.Close)

	remote, err := NewRemote(RemoteOptions{BaseURL: server.URL + "/data/2.5", RequestsPerSecond: 0.001, Burst: 1})
	if err != nil {
		t.Fatalf("NewRemote returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// The single burst token covers the current-conditions call; the forecast
	// call cannot get a token before the deadline.
	_, err = remote.WithKey("k").Fetch(ctx, ByName("Paris"))
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("Fetch error = %v, want ErrNetwork from limiter", err)
	}
	if len(u.calls) != 1 {
		t.Fatalf("calls = %v, want only the current-conditions request", u.calls)
	}
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("parseBaseURL(\"\") = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com/api?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.RawQuery != "" || u.Fragment != "" || u.Path != "/api" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_SourceSelection(t *testing.T) {
	remote, err := NewRemote(RemoteOptions{})
	if err != nil {
		t.Fatalf("NewRemote returned error: %v", err)
	}
	mock := NewMock(MockOptions{Delay: -1})
	client := NewClient(remote, mock)

	for _, key := range []string{"", "   "} {
		if src := client.Source(key); src != Source(mock) {
			t.Fatalf("Source(%q) = %T, want the mock", key, src)
		}
	}
	if _, ok := client.Source("abc").(keyedRemote); !ok {
		t.Fatalf("Source(abc) = %T, want remote", client.Source("abc"))
	}
	if !DemoMode(" ") || DemoMode("abc") {
		t.Fatalf("DemoMode mismatch")
	}
}

func TestIconCode(t *testing.T) {
	cases := map[string]string{
		"Clear":        "01d",
		"Clouds":       "03d",
		"Rain":         "10d",
		"Snow":         "13d",
		"Thunderstorm": "11d",
		"Drizzle":      "09d",
		"Mist":         UnknownIcon,
		"":             UnknownIcon,
	}
	for condition, want := range cases {
		if got := IconCode(condition); got != want {
			t.Fatalf("IconCode(%q) = %q, want %q", condition, got, want)
		}
	}
}

func TestSnapshotHelpers(t *testing.T) {
	var empty Snapshot
	if empty.Condition() != "" || empty.Description() != "" {
		t.Fatalf("empty snapshot helpers should return blanks")
	}
	for temp, want := range map[float64]int{12.5: 13, 12.49: 12, -0.5: -1, 0: 0} {
		s := Snapshot{Main: Main{Temp: temp}}
		if got := s.RoundedTemp(); got != want {
			t.Fatalf("RoundedTemp(%v) = %d, want %d", temp, got, want)
		}
	}
	if !SameCity("paris", "PARIS") || SameCity("Paris", "Parise") {
		t.Fatalf("SameCity mismatch")
	}
	if got := fmt.Sprint(ByCoords(1.5, 2)); got != "1.5000,2.0000" {
		t.Fatalf("query String = %q", got)
	}
}
