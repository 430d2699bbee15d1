package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Rows taken by the header, command bar and toast line.
const chromeHeight = 3

// contentHeight is the room left for the active page.
func (m Model) contentHeight() int {
	h := m.height - chromeHeight
	if h < 3 {
		h = 3
	}
	return h
}

// renderMain renders the full screen without overlays.
func (m Model) renderMain() string {
	var content string
	switch {
	case m.tab == TabSettings:
		content = m.renderSettings()
	case m.detail.open:
		content = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.renderDetail())
	default:
		content = m.renderDashboard()
	}

	return strings.Join([]string{
		m.renderHeader(),
		m.renderCommandBar(),
		fitHeight(content, m.contentHeight()),
		m.renderToast(),
	}, "\n")
}

func (m Model) renderToast() string {
	if m.toast.text == "" {
		return ""
	}
	styles := m.theme.Styles()
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, styles.Toast.Render(m.toast.text)+" ")
}
