package weather

import (
	"math"
	"strings"
	"time"
)

// Snapshot is one city's current conditions plus a short forecast. The JSON
// shape mirrors the upstream current-conditions payload so remote and mock
// snapshots persist identically.
type Snapshot struct {
	Name     string          `json:"name"`
	Coord    *Coord          `json:"coord,omitempty"`
	Main     Main            `json:"main"`
	Weather  []Condition     `json:"weather"`
	Wind     Wind            `json:"wind"`
	Dt       int64           `json:"dt"`
	Sys      Sys             `json:"sys"`
	Mock     bool            `json:"mock,omitempty"`
	Forecast []ForecastPoint `json:"forecast,omitempty"`
}

// Coord is a latitude/longitude pair.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Main holds the headline measurements.
type Main struct {
	Temp     float64 `json:"temp"`
	Humidity int     `json:"humidity"`
}

// Condition describes the weather group and its human description.
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// Wind holds wind measurements.
type Wind struct {
	Speed float64 `json:"speed"`
}

// Sys carries location metadata.
type Sys struct {
	Country string `json:"country"`
}

// ForecastPoint is a single timestamped temperature sample.
type ForecastPoint struct {
	Dt   int64     `json:"dt"`
	Main PointMain `json:"main"`
}

// PointMain is the subset of forecast measurements kept per point.
type PointMain struct {
	Temp float64 `json:"temp"`
}

// Time returns the point timestamp.
func (p ForecastPoint) Time() time.Time {
	return time.Unix(p.Dt, 0)
}

// Condition returns the primary condition group, or "" when absent.
func (s Snapshot) Condition() string {
	if len(s.Weather) == 0 {
		return ""
	}
	return s.Weather[0].Main
}

// Description returns the primary condition description, or "" when absent.
func (s Snapshot) Description() string {
	if len(s.Weather) == 0 {
		return ""
	}
	return s.Weather[0].Description
}

// RoundedTemp returns the current temperature rounded half away from zero.
func (s Snapshot) RoundedTemp() int {
	return int(math.Round(s.Main.Temp))
}

// ObservedAt returns the observation time.
func (s Snapshot) ObservedAt() time.Time {
	return time.Unix(s.Dt, 0)
}

// SameCity reports whether two names refer to the same saved city.
func SameCity(a, b string) bool {
	return strings.EqualFold(a, b)
}

var iconCodes = map[string]string{
	"Clear":        "01d",
	"Clouds":       "03d",
	"Rain":         "10d",
	"Snow":         "13d",
	"Thunderstorm": "11d",
	"Drizzle":      "09d",
}

// UnknownIcon is the icon code used for unmapped conditions.
const UnknownIcon = "50d"

// IconCode maps a condition group to its icon code.
func IconCode(condition string) string {
	if code, ok := iconCodes[condition]; ok {
		return code
	}
	return UnknownIcon
}
