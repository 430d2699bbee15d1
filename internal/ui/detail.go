package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/atmos/internal/summary"
	"github.com/five82/atmos/internal/weather"
)

const (
	detailChartHeight = 10
	detailMaxWidth    = 100
)

// openDetail shows the city at index i and requests its summary.
func (m *Model) openDetail(i int) tea.Cmd {
	city, ok := m.state.City(i)
	if !ok {
		return nil
	}
	m.detail.open = true
	m.detail.city = city
	m.detail.gen++
	m.detail.text = summary.Loading
	m.detail.loading = true
	// The previous link stays until a new one arrives.

	m.detailView = viewport.New(m.detailWidth(), m.contentHeight())
	m.redrawChart()
	m.refreshDetailView()

	m.log.Debug("detail opened", zap.String("city", city.Name), zap.Int("gen", m.detail.gen))
	return summaryCmd(m.ctx, m.summary, m.detail.gen, city.Name)
}

// closeDetail hides the panel and releases its chart. Bumping gen drops any
// summary still in flight.
func (m *Model) closeDetail() {
	m.detail.open = false
	m.detail.loading = false
	m.detail.gen++
	m.chart.Replace(nil)
}

func (m *Model) handleSummary(msg summaryMsg) {
	if !m.detail.open || msg.gen != m.detail.gen {
		m.log.Debug("stale summary dropped", zap.Int("gen", msg.gen), zap.Int("current", m.detail.gen))
		return
	}
	m.detail.loading = false
	m.detail.text = msg.result.Text
	if msg.result.OK && msg.result.Link != "" {
		m.detail.link = msg.result.Link
	}
	m.refreshDetailView()
}

// chartPoints returns the forecast, or a smooth hourly curve around the
// current temperature when the snapshot carries none.
func (m Model) chartPoints() []weather.ForecastPoint {
	if len(m.detail.city.Forecast) > 0 {
		return m.detail.city.Forecast
	}
	return weather.FallbackCurve(m.detail.city.Main.Temp, m.now())
}

// redrawChart replaces the on-screen chart with one for the current city,
// size and theme.
func (m *Model) redrawChart() {
	m.chart.Replace(newLineChart(m.chartPoints(), chartOptions{
		Width:  m.detailWidth() - 2,
		Height: detailChartHeight,
		Accent: lipgloss.Color(m.theme.Accent),
		Axis:   lipgloss.Color(m.theme.Faint),
	}))
}

func (m *Model) refreshDetailView() {
	m.detailView.Width = m.detailWidth()
	m.detailView.Height = m.contentHeight()
	m.detailView.SetContent(m.renderDetailBody())
}

func (m Model) detailWidth() int {
	w := m.width - 4
	if w > detailMaxWidth {
		w = detailMaxWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderDetail renders the detail panel.
func (m Model) renderDetail() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(0, 1)
	return box.Render(m.detailView.View())
}

func (m Model) renderDetailBody() string {
	styles := m.theme.Styles()
	c := m.detail.city
	width := m.detailWidth()

	title := c.Name
	if c.Sys.Country != "" {
		title += ", " + c.Sys.Country
	}

	facts := []string{
		styles.Text.Bold(true).Render(title),
		"",
		styles.AccentText.Bold(true).Render(fmt.Sprintf("%d°", c.RoundedTemp())) + "  " +
			styles.MutedText.Render(c.Description()),
		"",
		styles.MutedText.Render("Humidity ") + styles.Text.Render(fmt.Sprintf("%d%%", c.Main.Humidity)),
		styles.MutedText.Render("Wind     ") + styles.Text.Render(fmt.Sprintf("%s km/h", formatSpeed(c.Wind.Speed))),
	}
	if c.Dt > 0 {
		observed := "Updated " + c.ObservedAt().Local().Format("15:04")
		if c.Mock {
			observed += " · simulated"
		}
		facts = append(facts, styles.FaintText.Render(observed))
	}

	art := styles.AccentText.Render(strings.Join(largeIcon(c.Condition()), "\n"))
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(width-lipgloss.Width(art)-2).Render(strings.Join(facts, "\n")),
		"  ",
		art,
	)

	var b strings.Builder
	b.WriteString(top)
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Bold(true).Render("Temperature (°C)"))
	b.WriteString("\n")
	b.WriteString(m.chart.View())
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Bold(true).Render("About"))
	b.WriteString("\n")

	textStyle := styles.Text
	if m.detail.loading {
		textStyle = styles.FaintText
	}
	b.WriteString(textStyle.Width(width).Render(m.detail.text))
	if m.detail.link != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.FaintText.Render("Read more ") + styles.AccentText.Underline(true).Render(m.detail.link))
	}
	return b.String()
}

// formatSpeed drops a trailing .0.
func formatSpeed(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	return strings.TrimSuffix(s, ".0")
}
