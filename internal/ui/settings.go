package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	fieldName = iota
	fieldAvatar
	fieldAPIKey
)

var settingsLabels = [3]string{"Display Name", "Avatar URL", "API Key"}

// openSettings switches to the settings page with the form prefilled from
// the current state.
func (m *Model) openSettings() tea.Cmd {
	m.tab = TabSettings
	m.settingsInputs[fieldName].SetValue(m.state.Settings.Name)
	m.settingsInputs[fieldAvatar].SetValue(m.state.Settings.Avatar)
	m.settingsInputs[fieldAPIKey].SetValue(m.state.Settings.APIKey)
	m.settingsFocus = fieldName
	return m.focusSettingsField()
}

func (m *Model) focusSettingsField() tea.Cmd {
	for i := range m.settingsInputs {
		m.settingsInputs[i].Blur()
	}
	return m.settingsInputs[m.settingsFocus].Focus()
}

func (m *Model) closeSettings() {
	m.tab = TabDashboard
	for i := range m.settingsInputs {
		m.settingsInputs[i].Blur()
	}
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.closeSettings()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.settingsFocus = (m.settingsFocus + 1) % len(m.settingsInputs)
		return m, m.focusSettingsField()

	case key.Matches(msg, m.keys.PrevField):
		m.settingsFocus = (m.settingsFocus + len(m.settingsInputs) - 1) % len(m.settingsInputs)
		return m, m.focusSettingsField()

	case key.Matches(msg, m.keys.Confirm):
		m.state.ApplySettings(
			m.settingsInputs[fieldName].Value(),
			m.settingsInputs[fieldAvatar].Value(),
			m.settingsInputs[fieldAPIKey].Value(),
		)
		m.persist()
		m.log.Info("settings saved",
			zap.String("name", m.state.Settings.Name),
			zap.Bool("demo_mode", m.state.DemoMode()))
		return m, m.setToast(msgSettingsSaved)
	}

	var cmd tea.Cmd
	m.settingsInputs[m.settingsFocus], cmd = m.settingsInputs[m.settingsFocus].Update(msg)
	return m, cmd
}

// renderSettings renders the profile and credential form.
func (m Model) renderSettings() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Settings"))
	b.WriteString("\n\n")
	for i, in := range m.settingsInputs {
		label := styles.MutedText
		if i == m.settingsFocus {
			label = styles.AccentText
		}
		b.WriteString(label.Render(settingsLabels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	mode := styles.WarningText.Render("Demo Mode")
	if !m.state.DemoMode() {
		mode = styles.SuccessText.Render("Connected")
	}
	b.WriteString(styles.MutedText.Render("Status: ") + mode)
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Tab: Next field • Enter: Save • Esc: Back"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(1, 2).
		Width(modalWidth)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box.Render(b.String()))
}
