package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const modalWidth = 52

// openKeyModal shows the API key prompt with an empty input.
func (m *Model) openKeyModal() tea.Cmd {
	m.keyModal = true
	m.keyInput.Reset()
	return m.keyInput.Focus()
}

func (m *Model) closeKeyModal() {
	m.keyModal = false
	m.keyInput.Blur()
	m.keyInput.Reset()
}

// handleKeyModalKey handles input while the key prompt is open. Enter saves a
// non-blank key; esc continues in demo mode.
func (m Model) handleKeyModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.state.ClearAPIKey()
		m.persist()
		m.closeKeyModal()
		m.log.Info("continuing in demo mode")
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if !m.state.SetAPIKey(m.keyInput.Value()) {
			return m, nil
		}
		m.persist()
		m.closeKeyModal()
		m.log.Info("api key saved")
		return m, nil
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

// renderKeyModal renders the API key prompt.
func (m Model) renderKeyModal() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Connect OpenWeatherMap"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Width(modalWidth - 6).Render(
		"Enter an API key for live weather, or continue with simulated data."))
	b.WriteString("\n\n")
	b.WriteString(styles.AccentText.Render("API Key"))
	b.WriteString("\n")
	b.WriteString(m.keyInput.View())
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Enter: Save • Esc: Use Demo Mode"))

	return modalBox(m.theme, b.String())
}

// renderConfirmClear asks before deleting every saved city.
func (m Model) renderConfirmClear() string {
	styles := m.theme.Styles()
	content := styles.Text.Bold(true).Render("Delete all saved locations?") + "\n\n" +
		styles.WarningText.Render("y") + styles.MutedText.Render(": Delete  ") +
		styles.WarningText.Render("n") + styles.MutedText.Render(": Keep")
	return modalBox(m.theme, content)
}

func modalBox(t Theme, content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Accent)).
		Padding(1, 2).
		Width(modalWidth).
		Render(content)
}
