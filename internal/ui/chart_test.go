package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/atmos/internal/weather"
)

func chartFixture(n int) []weather.ForecastPoint {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	points := make([]weather.ForecastPoint, n)
	for i := range points {
		points[i] = weather.ForecastPoint{
			Dt:   start.Add(time.Duration(i) * 3 * time.Hour).Unix(),
			Main: weather.PointMain{Temp: float64(10 + i)},
		}
	}
	return points
}

var testChartOpts = chartOptions{Width: 60, Height: 10, Accent: lipgloss.Color("#0061a4"), Axis: lipgloss.Color("#73777f")}

func TestLineChartLabels(t *testing.T) {
	c := newLineChart(chartFixture(3), testChartOpts)
	assert.Equal(t, []string{"9:00", "12:00", "15:00"}, c.Labels())
}

func TestLineChartRendersAxisAndPoints(t *testing.T) {
	c := newLineChart(chartFixture(8), testChartOpts)
	view := c.View()

	require.NotEmpty(t, view)
	assert.Contains(t, view, glyphPoint)
	assert.Contains(t, view, "└")
	assert.Contains(t, view, "17°")
	assert.Contains(t, view, "10°")
	assert.Len(t, strings.Split(view, "\n"), testChartOpts.Height)
}

func TestLineChartEmpty(t *testing.T) {
	c := newLineChart(nil, testChartOpts)
	assert.Equal(t, "No forecast data", c.View())
}

func TestLineChartDispose(t *testing.T) {
	c := newLineChart(chartFixture(4), testChartOpts)
	c.Dispose()
	assert.True(t, c.Disposed())
	assert.Empty(t, c.View())

	var nilChart *lineChart
	assert.NotPanics(t, nilChart.Dispose)
	assert.Empty(t, nilChart.View())
}

func TestChartSlotReplaceDisposesPrevious(t *testing.T) {
	var slot chartSlot
	first := newLineChart(chartFixture(4), testChartOpts)
	second := newLineChart(chartFixture(5), testChartOpts)

	slot.Replace(first)
	assert.Equal(t, 0, slot.released)

	slot.Replace(second)
	assert.True(t, first.Disposed())
	assert.False(t, second.Disposed())
	assert.Same(t, second, slot.Current())
	assert.Equal(t, 1, slot.released)

	slot.Replace(nil)
	assert.True(t, second.Disposed())
	assert.Nil(t, slot.Current())
	assert.Empty(t, slot.View())
	assert.Equal(t, 2, slot.released)
}

func TestPlaceLabelsSkipsCollisions(t *testing.T) {
	got := placeLabels([]string{"9:00", "10:00", "11:00"}, []int{0, 2, 4}, 20)
	assert.Equal(t, "9:00", strings.TrimSpace(got))
}
