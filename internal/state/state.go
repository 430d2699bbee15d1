package state

import (
	"strings"

	"github.com/five82/atmos/internal/weather"
)

// MaxCities bounds the saved city list.
const MaxCities = 8

// View selects the card layout.
type View string

const (
	ViewGrid View = "grid"
	ViewList View = "list"
)

// Theme selects the colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultName is the display name used until the user sets one.
const DefaultName = "User"

// Settings holds the user's profile and API credential. An empty APIKey means
// demo mode.
type Settings struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	APIKey string `json:"apiKey"`
}

// State is the whole persisted application state.
type State struct {
	Cities   []weather.Snapshot `json:"cities"`
	View     View               `json:"view"`
	Theme    Theme              `json:"theme"`
	Settings Settings           `json:"settings"`
}

// Default returns the state used when nothing has been stored yet.
func Default() State {
	return State{
		Cities:   []weather.Snapshot{},
		View:     ViewGrid,
		Theme:    ThemeLight,
		Settings: Settings{Name: DefaultName},
	}
}

// AddCity removes any city with the same name (case-insensitive), prepends
// snap, and drops the oldest entries beyond MaxCities.
func (s *State) AddCity(snap weather.Snapshot) {
	kept := make([]weather.Snapshot, 0, len(s.Cities)+1)
	kept = append(kept, snap)
	for _, c := range s.Cities {
		if weather.SameCity(c.Name, snap.Name) {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) > MaxCities {
		kept = kept[:MaxCities]
	}
	s.Cities = kept
}

// ClearHistory empties the city list.
func (s *State) ClearHistory() {
	s.Cities = []weather.Snapshot{}
}

// ToggleTheme flips between light and dark.
func (s *State) ToggleTheme() {
	if s.Theme == ThemeDark {
		s.Theme = ThemeLight
		return
	}
	s.Theme = ThemeDark
}

// SetView selects a layout; unknown values fall back to grid.
func (s *State) SetView(v View) {
	if v != ViewList {
		v = ViewGrid
	}
	s.View = v
}

// ToggleView flips between grid and list.
func (s *State) ToggleView() {
	if s.View == ViewList {
		s.SetView(ViewGrid)
		return
	}
	s.SetView(ViewList)
}

// DemoMode reports whether no API key is configured.
func (s State) DemoMode() bool {
	return weather.DemoMode(s.Settings.APIKey)
}

// SetAPIKey stores a trimmed key. It reports false, leaving state untouched,
// when key is blank.
func (s *State) SetAPIKey(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	s.Settings.APIKey = key
	return true
}

// ClearAPIKey switches to demo mode.
func (s *State) ClearAPIKey() {
	s.Settings.APIKey = ""
}

// ApplySettings replaces all three settings as entered.
func (s *State) ApplySettings(name, avatar, apiKey string) {
	s.Settings = Settings{
		Name:   name,
		Avatar: strings.TrimSpace(avatar),
		APIKey: strings.TrimSpace(apiKey),
	}
}

// City returns the saved city at index i.
func (s State) City(i int) (weather.Snapshot, bool) {
	if i < 0 || i >= len(s.Cities) {
		return weather.Snapshot{}, false
	}
	return s.Cities[i], true
}

// Clone returns a copy that shares no slices with s.
func (s State) Clone() State {
	dup := s
	dup.Cities = make([]weather.Snapshot, len(s.Cities))
	for i, c := range s.Cities {
		dup.Cities[i] = cloneSnapshot(c)
	}
	return dup
}

func cloneSnapshot(s weather.Snapshot) weather.Snapshot {
	dup := s
	if s.Coord != nil {
		coord := *s.Coord
		dup.Coord = &coord
	}
	if s.Weather != nil {
		dup.Weather = append([]weather.Condition(nil), s.Weather...)
	}
	if s.Forecast != nil {
		dup.Forecast = append([]weather.ForecastPoint(nil), s.Forecast...)
	}
	return dup
}

// normalize repairs values a hand-edited or older document may carry.
func (s *State) normalize() {
	if s.Cities == nil {
		s.Cities = []weather.Snapshot{}
	}
	if len(s.Cities) > MaxCities {
		s.Cities = s.Cities[:MaxCities]
	}
	if s.View != ViewList {
		s.View = ViewGrid
	}
	if s.Theme != ThemeDark {
		s.Theme = ThemeLight
	}
}
