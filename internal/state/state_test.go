package state

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/five82/atmos/internal/weather"
)

func snap(name string) weather.Snapshot {
	return weather.Snapshot{
		Name:    name,
		Main:    weather.Main{Temp: 12.4, Humidity: 50},
		Weather: []weather.Condition{{Main: "Clouds", Description: "broken clouds"}},
	}
}

func names(cities []weather.Snapshot) []string {
	out := make([]string, len(cities))
	for i, c := range cities {
		out[i] = c.Name
	}
	return out
}

func TestDefault(t *testing.T) {
	st := Default()
	if st.View != ViewGrid || st.Theme != ThemeLight {
		t.Fatalf("Default view/theme = %q/%q, want grid/light", st.View, st.Theme)
	}
	if st.Settings.Name != "User" || st.Settings.APIKey != "" {
		t.Fatalf("Default settings = %#v", st.Settings)
	}
	if st.Cities == nil || len(st.Cities) != 0 {
		t.Fatalf("Default cities = %#v, want empty non-nil", st.Cities)
	}
	if !st.DemoMode() {
		t.Fatalf("Default should be demo mode")
	}
}

func TestAddCity_PrependsAndDedupes(t *testing.T) {
	st := Default()
	st.AddCity(snap("Paris"))
	st.AddCity(snap("London"))
	st.AddCity(snap("paris"))

	got := names(st.Cities)
	want := []string{"paris", "London"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("cities mismatch (-want +got):\n%s", diff)
	}
}

func TestAddCity_CapsAtMax(t *testing.T) {
	st := Default()
	for i := 0; i < 10; i++ {
		st.AddCity(snap(fmt.Sprintf("City%d", i)))
	}
	if len(st.Cities) != MaxCities {
		t.Fatalf("len = %d, want %d", len(st.Cities), MaxCities)
	}
	if st.Cities[0].Name != "City9" {
		t.Fatalf("head = %q, want City9", st.Cities[0].Name)
	}
	if st.Cities[MaxCities-1].Name != "City2" {
		t.Fatalf("tail = %q, want City2", st.Cities[MaxCities-1].Name)
	}
}

func TestAddCity_ReAddAtCapacityKeepsOthers(t *testing.T) {
	st := Default()
	for i := 0; i < MaxCities; i++ {
		st.AddCity(snap(fmt.Sprintf("City%d", i)))
	}
	st.AddCity(snap("CITY0"))
	if len(st.Cities) != MaxCities {
		t.Fatalf("len = %d, want %d", len(st.Cities), MaxCities)
	}
	if st.Cities[0].Name != "CITY0" || st.Cities[MaxCities-1].Name != "City1" {
		t.Fatalf("cities = %v", names(st.Cities))
	}
}

func TestAddCity_NamesStayUnique(t *testing.T) {
	st := Default()
	seq := []string{"Oslo", "Rome", "oslo", "ROME", "Lima", "Oslo", "Kyiv", "lima"}
	for _, n := range seq {
		st.AddCity(snap(n))
		seen := map[string]bool{}
		for _, c := range st.Cities {
			key := strings.ToLower(c.Name)
			if seen[key] {
				t.Fatalf("duplicate %q after adding %q: %v", c.Name, n, names(st.Cities))
			}
			seen[key] = true
		}
		if st.Cities[0].Name != n {
			t.Fatalf("head = %q, want %q", st.Cities[0].Name, n)
		}
	}
}

func TestClearHistory(t *testing.T) {
	st := Default()
	st.AddCity(snap("Paris"))
	st.ClearHistory()
	if st.Cities == nil || len(st.Cities) != 0 {
		t.Fatalf("cities = %#v, want empty", st.Cities)
	}
}

func TestToggleThemeAndView(t *testing.T) {
	st := Default()
	st.ToggleTheme()
	if st.Theme != ThemeDark {
		t.Fatalf("theme = %q, want dark", st.Theme)
	}
	st.ToggleTheme()
	if st.Theme != ThemeLight {
		t.Fatalf("theme = %q, want light", st.Theme)
	}

	st.ToggleView()
	if st.View != ViewList {
		t.Fatalf("view = %q, want list", st.View)
	}
	st.SetView("tiles")
	if st.View != ViewGrid {
		t.Fatalf("view = %q, want grid fallback", st.View)
	}
}

func TestAPIKey(t *testing.T) {
	st := Default()
	if st.SetAPIKey("   ") {
		t.Fatalf("blank key accepted")
	}
	if !st.DemoMode() {
		t.Fatalf("blank key should leave demo mode on")
	}
	if !st.SetAPIKey("  abc123 ") {
		t.Fatalf("key rejected")
	}
	if st.Settings.APIKey != "abc123" || st.DemoMode() {
		t.Fatalf("settings = %#v", st.Settings)
	}
	st.ClearAPIKey()
	if !st.DemoMode() {
		t.Fatalf("ClearAPIKey should restore demo mode")
	}
}

func TestApplySettings(t *testing.T) {
	st := Default()
	st.ApplySettings("Ada", " https://example.com/a.png ", " k ")
	want := Settings{Name: "Ada", Avatar: "https://example.com/a.png", APIKey: "k"}
	if diff := cmp.Diff(want, st.Settings); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestClone_Independent(t *testing.T) {
	st := Default()
	s := snap("Paris")
	s.Coord = &weather.Coord{Lat: 48.85, Lon: 2.35}
	s.Forecast = []weather.ForecastPoint{{Dt: 1}}
	st.AddCity(s)

	dup := st.Clone()
	dup.Cities[0].Name = "Changed"
	dup.Cities[0].Coord.Lat = 0
	dup.Cities[0].Forecast[0].Dt = 99
	dup.Cities[0].Weather[0].Main = "Rain"

	orig := st.Cities[0]
	if orig.Name != "Paris" || orig.Coord.Lat != 48.85 || orig.Forecast[0].Dt != 1 || orig.Weather[0].Main != "Clouds" {
		t.Fatalf("Clone shares memory with original: %#v", orig)
	}
}

func TestCity(t *testing.T) {
	st := Default()
	st.AddCity(snap("Paris"))
	if c, ok := st.City(0); !ok || c.Name != "Paris" {
		t.Fatalf("City(0) = %#v, %v", c, ok)
	}
	if _, ok := st.City(1); ok {
		t.Fatalf("City(1) should be out of range")
	}
	if _, ok := st.City(-1); ok {
		t.Fatalf("City(-1) should be out of range")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	st := Default()
	s := snap("Paris")
	s.Coord = &weather.Coord{Lat: 48.85, Lon: 2.35}
	s.Dt = 1700000000
	s.Sys.Country = "FR"
	s.Forecast = []weather.ForecastPoint{{Dt: 1700000000, Main: weather.PointMain{Temp: 11}}}
	st.AddCity(s)
	st.AddCity(weather.Snapshot{Name: "Mockton", Mock: true})
	st.ToggleTheme()
	st.ToggleView()
	st.ApplySettings("Ada", "", "secret")

	if err := Save(ctx, kv, st); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got, err := Load(ctx, kv)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff(st, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Missing(t *testing.T) {
	got, err := Load(context.Background(), NewMemoryKV())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Fatalf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_CorruptFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	_ = kv.Put(ctx, Key, []byte(`{"cities": [`))

	got, err := Load(ctx, kv)
	if err == nil {
		t.Fatalf("Load should report the decode error")
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Fatalf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_PartialDocumentKeepsDefaults(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	_ = kv.Put(ctx, Key, []byte(`{"theme":"dark","view":"bogus"}`))

	got, err := Load(ctx, kv)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got.Theme != ThemeDark || got.View != ViewGrid {
		t.Fatalf("theme/view = %q/%q, want dark/grid", got.Theme, got.View)
	}
	if got.Settings.Name != "User" || got.Cities == nil {
		t.Fatalf("defaults lost: %#v", got)
	}
}

type failingKV struct{ err error }

func (f failingKV) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingKV) Put(context.Context, string, []byte) error         { return f.err }

func TestLoadSave_StorageErrors(t *testing.T) {
	boom := errors.New("disk gone")
	kv := failingKV{err: boom}

	got, err := Load(context.Background(), kv)
	if !errors.Is(err, boom) {
		t.Fatalf("Load error = %v, want %v", err, boom)
	}
	if got.View != ViewGrid {
		t.Fatalf("Load should still return defaults, got %#v", got)
	}
	if err := Save(context.Background(), kv, Default()); !errors.Is(err, boom) {
		t.Fatalf("Save error = %v, want %v", err, boom)
	}
}
