package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/atmos/internal/state"
	"github.com/five82/atmos/internal/weather"
)

const (
	cardWidth  = 26 // including border
	cardGap    = 1
	emptyTitle = "No saved locations"
	emptyHint  = "Press / to search for a city or L to use your location."
)

// gridColumns returns how many cards fit side by side.
func (m Model) gridColumns() int {
	cols := (m.width - 2 + cardGap) / (cardWidth + cardGap)
	if cols < 1 {
		cols = 1
	}
	return cols
}

// columnsForNav is the index step for up/down.
func (m Model) columnsForNav() int {
	if m.state.View == state.ViewList {
		return 1
	}
	return m.gridColumns()
}

func (m *Model) moveSelection(delta int) {
	n := len(m.state.Cities)
	if n == 0 {
		m.selected = 0
		return
	}
	next := m.selected + delta
	if next < 0 || next >= n {
		return
	}
	m.selected = next
}

// renderDashboard renders the search bar and the saved cities.
func (m Model) renderDashboard() string {
	var b strings.Builder
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n\n")

	switch {
	case len(m.state.Cities) == 0:
		b.WriteString(m.renderEmptyState())
	case m.state.View == state.ViewList:
		b.WriteString(m.renderList())
	default:
		b.WriteString(m.renderGrid())
	}
	return b.String()
}

func (m Model) renderSearchBar() string {
	styles := m.theme.Styles()
	line := " " + m.search.View()
	if !m.searching && m.search.Value() == "" {
		line = " " + styles.FaintText.Render("⌕ Press / to search for a city")
	}
	if m.Loading() {
		line += "  " + styles.AccentText.Render(m.spinner.View()) + styles.MutedText.Render(" Fetching weather...")
	}
	return line
}

func (m Model) renderEmptyState() string {
	styles := m.theme.Styles()
	content := styles.Text.Bold(true).Render(emptyTitle) + "\n" + styles.MutedText.Render(emptyHint)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, lipgloss.NewStyle().Padding(2, 0).Render(content))
}

func (m Model) renderGrid() string {
	cols := m.gridColumns()
	var rows []string
	for start := 0; start < len(m.state.Cities); start += cols {
		end := start + cols
		if end > len(m.state.Cities) {
			end = len(m.state.Cities)
		}
		cards := make([]string, 0, (end-start)*2)
		for i := start; i < end; i++ {
			if i > start {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
			cards = append(cards, m.renderCard(m.state.Cities[i], i == m.selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return indent(strings.Join(rows, "\n"), 1)
}

// renderCard renders one grid card: name and description beside the icon,
// the rounded temperature underneath.
func (m Model) renderCard(c weather.Snapshot, selected bool) string {
	styles := m.theme.Styles()
	inner := cardWidth - 4 // border plus padding

	border := lipgloss.Color(m.theme.Border)
	if selected {
		border = lipgloss.Color(m.theme.BorderFocus)
	}

	glyph := iconGlyph(c.Condition())
	nameWidth := inner - 2
	name := styles.Text.Bold(true).Render(padRight(c.Name, nameWidth)) + " " + styles.AccentText.Render(glyph)
	desc := styles.MutedText.Render(padRight(c.Description(), inner))
	temp := styles.Text.Bold(true).Render(fmt.Sprintf("%d°", c.RoundedTemp()))
	if c.Mock {
		temp += "  " + styles.FaintText.Render("demo")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(cardWidth - 2).
		Render(name + "\n" + desc + "\n\n" + temp)
}

// renderList renders one row per city: icon, name, description, temperature.
func (m Model) renderList() string {
	styles := m.theme.Styles()
	width := m.width - 4
	if width < 30 {
		width = 30
	}
	const tempWidth = 5
	nameWidth := width / 3
	descWidth := width - nameWidth - tempWidth - 6

	lines := make([]string, 0, len(m.state.Cities))
	for i, c := range m.state.Cities {
		row := " " + iconGlyph(c.Condition()) + "  " +
			padRight(c.Name, nameWidth) + " " +
			padRight(c.Description(), descWidth) +
			fmt.Sprintf("%*s", tempWidth, fmt.Sprintf("%d°", c.RoundedTemp()))
		if i == m.selected {
			lines = append(lines, styles.Selected.Width(width).Render(row))
			continue
		}
		lines = append(lines, styles.Text.Render(row))
	}
	return indent(strings.Join(lines, "\n"), 1)
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
