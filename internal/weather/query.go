package weather

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query selects a location either by name or by coordinates.
type Query struct {
	Name  string
	Coord *Coord
}

// ByName builds a name query.
func ByName(name string) Query {
	return Query{Name: strings.TrimSpace(name)}
}

// ByCoords builds a coordinate query.
func ByCoords(lat, lon float64) Query {
	return Query{Coord: &Coord{Lat: lat, Lon: lon}}
}

// IsCoords reports whether the query is coordinate based.
func (q Query) IsCoords() bool {
	return q.Coord != nil
}

// String renders the query for logs.
func (q Query) String() string {
	if q.IsCoords() {
		return fmt.Sprintf("%.4f,%.4f", q.Coord.Lat, q.Coord.Lon)
	}
	return q.Name
}

func (q Query) validate() error {
	if !q.IsCoords() && q.Name == "" {
		return fmt.Errorf("query requires a name or coordinates")
	}
	return nil
}

func (q Query) values() url.Values {
	values := url.Values{}
	if q.IsCoords() {
		values.Set("lat", formatCoord(q.Coord.Lat))
		values.Set("lon", formatCoord(q.Coord.Lon))
		return values
	}
	values.Set("q", q.Name)
	return values
}

func coordValues(c Coord) url.Values {
	values := url.Values{}
	values.Set("lat", formatCoord(c.Lat))
	values.Set("lon", formatCoord(c.Lon))
	return values
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
