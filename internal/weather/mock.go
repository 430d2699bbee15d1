package weather

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MockDelay is the simulated latency of a demo-mode lookup.
const MockDelay = 600 * time.Millisecond

// MockLocationName names snapshots synthesized for coordinate queries.
const MockLocationName = "My Location"

const (
	mockCountry     = "DM"
	mockDescription = "simulated weather"
	forecastStep    = 3 * time.Hour
)

var mockConditions = [...]string{"Clear", "Rain", "Clouds"}

// Mock synthesizes snapshots locally. It is the demo-mode Source.
type Mock struct {
	delay time.Duration
	now   func() time.Time

	mu    sync.Mutex
	rng   *rand.Rand
	caser cases.Caser
}

// MockOptions configure a Mock. Zero values pick MockDelay, a time-seeded
// generator, and time.Now.
type MockOptions struct {
	Delay time.Duration
	Rand  *rand.Rand
	Now   func() time.Time
}

// NewMock builds a Mock. A negative delay disables the simulated wait.
func NewMock(opts MockOptions) *Mock {
	delay := opts.Delay
	if delay == 0 {
		delay = MockDelay
	}
	if delay < 0 {
		delay = 0
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Mock{
		delay: delay,
		now:   now,
		rng:   rng,
		caser: cases.Title(language.Und, cases.NoLower),
	}
}

// Fetch waits the simulated delay, then returns a synthetic snapshot.
func (m *Mock) Fetch(ctx context.Context, q Query) (Snapshot, error) {
	if err := q.validate(); err != nil {
		return Snapshot{}, err
	}
	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		case <-timer.C:
		}
	}
	name := q.Name
	if q.IsCoords() {
		name = MockLocationName
	}
	return m.Generate(name), nil
}

// Generate builds a synthetic snapshot for name without waiting.
func (m *Mock) Generate(name string) Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	base := float64(m.rng.IntN(30))

	forecast := make([]ForecastPoint, 0, ForecastPoints)
	for i := range ForecastPoints {
		noise := m.rng.Float64()*2 - 1
		forecast = append(forecast, ForecastPoint{
			Dt:   now.Add(time.Duration(i) * forecastStep).Unix(),
			Main: PointMain{Temp: base + math.Sin(float64(i))*3 + noise},
		})
	}

	return Snapshot{
		Name: m.caser.String(name),
		Main: Main{
			Temp:     base,
			Humidity: m.rng.IntN(80) + 10,
		},
		Weather: []Condition{{
			Main:        mockConditions[m.rng.IntN(len(mockConditions))],
			Description: mockDescription,
		}},
		Wind:     Wind{Speed: float64(m.rng.IntN(15))},
		Dt:       now.Unix(),
		Sys:      Sys{Country: mockCountry},
		Mock:     true,
		Forecast: forecast,
	}
}

// FallbackCurve builds the hourly 6-point curve charted for snapshots that
// were stored without a forecast.
func FallbackCurve(base float64, now time.Time) []ForecastPoint {
	points := make([]ForecastPoint, 0, 6)
	for i := range 6 {
		points = append(points, ForecastPoint{
			Dt:   now.Add(time.Duration(i) * time.Hour).Unix(),
			Main: PointMain{Temp: base + math.Sin(float64(i))},
		})
	}
	return points
}
