package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/atmos/internal/state"
)

// Theme defines colors for the UI.
type Theme struct {
	Name state.Theme

	// Base colors
	Background string // Outermost background
	Surface    string // Header and command bar
	SurfaceAlt string // Cards and panels

	// Selection
	SelectionBg   string
	SelectionText string

	// Borders
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string

	// API badge colors
	ConnectedBg   string
	ConnectedText string
	DemoBg        string
	DemoText      string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Toast: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Text)).
			Foreground(lipgloss.Color(t.Background)).
			Padding(0, 2),

		connectedBg:   t.ConnectedBg,
		connectedText: t.ConnectedText,
		demoBg:        t.DemoBg,
		demoText:      t.DemoText,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
	Toast    lipgloss.Style

	connectedBg   string
	connectedText string
	demoBg        string
	demoText      string
}

// BadgeStyle returns the API status badge style.
func (s Styles) BadgeStyle(connected bool) lipgloss.Style {
	bg, fg := s.demoBg, s.demoText
	if connected {
		bg, fg = s.connectedBg, s.connectedText
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(bg)).
		Bold(true).
		Padding(0, 1)
}

// WithBackground returns a copy of Styles with all text styles having the specified background.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)

	out := s
	out.Background = s.Background.Background(bg)
	out.Surface = s.Surface.Background(bg)
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.Header = s.Header.Background(bg)
	out.Logo = s.Logo.Background(bg)
	return out
}

// GetTheme returns the palette for a persisted theme value.
func GetTheme(name state.Theme) Theme {
	if name == state.ThemeDark {
		return darkTheme()
	}
	return lightTheme()
}

func lightTheme() Theme {
	// Material 3 baseline palette, blue primary.
	return Theme{
		Name: state.ThemeLight,

		Background: "#fdfcff",
		Surface:    "#eef1f8",
		SurfaceAlt: "#f7f9ff",

		SelectionBg:   "#d1e4ff",
		SelectionText: "#001d36",

		Border:      "#c3c7cf",
		BorderFocus: "#0061a4",

		Text:    "#1a1c1e",
		Muted:   "#43474e",
		Faint:   "#73777f",
		Accent:  "#0061a4",
		Success: "#2e7d32",
		Warning: "#8c5000",
		Danger:  "#ba1a1a",

		ConnectedBg:   "#d1e4ff",
		ConnectedText: "#001d36",
		DemoBg:        "#e5e7eb",
		DemoText:      "#374151",
	}
}

func darkTheme() Theme {
	return Theme{
		Name: state.ThemeDark,

		Background: "#1a1c1e",
		Surface:    "#22262b",
		SurfaceAlt: "#2b2f35",

		SelectionBg:   "#00497d",
		SelectionText: "#d1e4ff",

		Border:      "#43474e",
		BorderFocus: "#9ecaff",

		Text:    "#e2e2e6",
		Muted:   "#c3c7cf",
		Faint:   "#8d9199",
		Accent:  "#9ecaff",
		Success: "#81c784",
		Warning: "#ffb870",
		Danger:  "#ffb4ab",

		ConnectedBg:   "#00497d",
		ConnectedText: "#d1e4ff",
		DemoBg:        "#374151",
		DemoText:      "#e5e7eb",
	}
}
