package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/atmos/internal/weather"
)

const (
	chartAxisWidth = 5 // "-12°" right aligned plus one space
	chartMinPlotH  = 3

	glyphPoint = "●"
	glyphLine  = "─"
	glyphFill  = "░"
)

// chartOptions sizes and colors a chart.
type chartOptions struct {
	Width  int
	Height int
	Accent lipgloss.Color
	Axis   lipgloss.Color
}

// lineChart is a rendered temperature-over-time chart with a filled area
// under a single series. A disposed chart renders nothing.
type lineChart struct {
	labels   []string
	temps    []float64
	lines    []string
	disposed bool
}

// hourLabel formats a point's local hour as "H:00".
func hourLabel(p weather.ForecastPoint) string {
	return fmt.Sprintf("%d:00", p.Time().Local().Hour())
}

// newLineChart renders points into a chart of the given size.
func newLineChart(points []weather.ForecastPoint, opts chartOptions) *lineChart {
	c := &lineChart{
		labels: make([]string, len(points)),
		temps:  make([]float64, len(points)),
	}
	for i, p := range points {
		c.labels[i] = hourLabel(p)
		c.temps[i] = p.Main.Temp
	}
	c.lines = c.render(opts)
	return c
}

// Labels returns the x-axis labels, one per point.
func (c *lineChart) Labels() []string {
	return c.labels
}

// View returns the rendered chart.
func (c *lineChart) View() string {
	if c == nil || c.disposed {
		return ""
	}
	return strings.Join(c.lines, "\n")
}

// Dispose releases the rendered buffer.
func (c *lineChart) Dispose() {
	if c == nil {
		return
	}
	c.lines = nil
	c.disposed = true
}

// Disposed reports whether Dispose has run.
func (c *lineChart) Disposed() bool {
	return c != nil && c.disposed
}

func (c *lineChart) render(opts chartOptions) []string {
	n := len(c.temps)
	if n == 0 {
		return []string{"No forecast data"}
	}

	plotW := opts.Width - chartAxisWidth - 1
	if plotW < n {
		plotW = n
	}
	plotH := opts.Height - 2
	if plotH < chartMinPlotH {
		plotH = chartMinPlotH
	}

	lo, hi := c.temps[0], c.temps[0]
	for _, t := range c.temps[1:] {
		lo = math.Min(lo, t)
		hi = math.Max(hi, t)
	}
	lo, hi = math.Floor(lo), math.Ceil(hi)
	if hi-lo < 1 {
		hi = lo + 1
	}

	// Column of each point, then the interpolated temperature per column.
	pointCol := make([]int, n)
	for i := range pointCol {
		if n > 1 {
			pointCol[i] = int(math.Round(float64(i) * float64(plotW-1) / float64(n-1)))
		}
	}
	isPoint := make(map[int]bool, n)
	for _, col := range pointCol {
		isPoint[col] = true
	}
	levels := make([]int, plotW)
	for col := range levels {
		levels[col] = int(math.Round((interpolate(c.temps, pointCol, col) - lo) / (hi - lo) * float64(plotH-1)))
	}

	accent := lipgloss.NewStyle().Foreground(opts.Accent)
	axis := lipgloss.NewStyle().Foreground(opts.Axis)

	lines := make([]string, 0, plotH+2)
	for r := 0; r < plotH; r++ {
		fromBottom := plotH - 1 - r
		var row strings.Builder
		for col := 0; col < plotW; col++ {
			switch {
			case levels[col] == fromBottom && isPoint[col]:
				row.WriteString(glyphPoint)
			case levels[col] == fromBottom:
				row.WriteString(glyphLine)
			case levels[col] > fromBottom:
				row.WriteString(glyphFill)
			default:
				row.WriteString(" ")
			}
		}
		lines = append(lines, axis.Render(axisLabel(r, plotH, lo, hi)+"│")+accent.Render(row.String()))
	}
	lines = append(lines, axis.Render(strings.Repeat(" ", chartAxisWidth)+"└"+strings.Repeat("─", plotW)))
	lines = append(lines, axis.Render(strings.Repeat(" ", chartAxisWidth+1)+placeLabels(c.labels, pointCol, plotW)))
	return lines
}

// interpolate returns the linear temperature at col between surrounding points.
func interpolate(temps []float64, pointCol []int, col int) float64 {
	if len(temps) == 1 {
		return temps[0]
	}
	for i := 1; i < len(pointCol); i++ {
		if col <= pointCol[i] {
			x0, x1 := pointCol[i-1], pointCol[i]
			if x1 == x0 {
				return temps[i]
			}
			frac := float64(col-x0) / float64(x1-x0)
			return temps[i-1] + frac*(temps[i]-temps[i-1])
		}
	}
	return temps[len(temps)-1]
}

// axisLabel labels the top, middle and bottom rows of the y axis.
func axisLabel(row, plotH int, lo, hi float64) string {
	var v float64
	switch {
	case row == 0:
		v = hi
	case row == plotH-1:
		v = lo
	case plotH >= 5 && row == (plotH-1)/2:
		v = (hi + lo) / 2
	default:
		return strings.Repeat(" ", chartAxisWidth)
	}
	return fmt.Sprintf("%*s ", chartAxisWidth-1, fmt.Sprintf("%.0f°", v))
}

// placeLabels centers each label under its column, skipping labels that would
// collide with the previous one.
func placeLabels(labels []string, pointCol []int, width int) string {
	buf := []rune(strings.Repeat(" ", width))
	next := 0
	for i, label := range labels {
		runes := []rune(label)
		start := pointCol[i] - len(runes)/2
		if start < 0 {
			start = 0
		}
		if start+len(runes) > width {
			start = width - len(runes)
		}
		if start < next || start < 0 {
			continue
		}
		copy(buf[start:], runes)
		next = start + len(runes) + 1
	}
	return strings.TrimRight(string(buf), " ")
}

// chartSlot owns the chart currently on screen. Replace always disposes the
// previous chart before taking ownership of the next one.
type chartSlot struct {
	current  *lineChart
	released int
}

// Replace disposes the current chart and installs next, which may be nil.
func (s *chartSlot) Replace(next *lineChart) {
	if s.current != nil {
		s.current.Dispose()
		s.released++
	}
	s.current = next
}

// Current returns the chart on screen, or nil.
func (s *chartSlot) Current() *lineChart {
	return s.current
}

// View renders the current chart.
func (s *chartSlot) View() string {
	return s.current.View()
}
