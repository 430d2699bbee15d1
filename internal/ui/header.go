package ui

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/atmos/internal/state"
)

// greeting picks the salutation for the hour of t.
func greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "Good Morning"
	case h < 18:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}

// initial returns the uppercased first letter of name, or "?".
func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// renderHeader renders the top bar: logo and greeting on the left, profile
// and API status on the right.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	name := m.state.Settings.Name
	left := bg.Join([]string{
		bg.Render("atmos", styles.Logo),
		bg.Render(greeting(m.now())+", "+name, styles.Text),
	}, 2)

	profile := "(" + initial(name) + ")"
	if m.state.Settings.Avatar != "" {
		profile = "(◉)"
	}

	connected := !m.state.DemoMode()
	badge := "API: Demo Mode"
	if connected {
		badge = "API: Connected"
	}

	right := bg.Join([]string{
		bg.Render(profile, styles.AccentText.Bold(true)),
		styles.BadgeStyle(connected).Render(badge),
	}, 1) + bg.Spaces(1)

	if m.width < lipgloss.Width(left)+lipgloss.Width(right)+2 {
		left = bg.Render("atmos", styles.Logo)
	}
	return styles.Header.Width(m.width).Render(bg.Spread(left, right, m.width-1))
}

type cmd struct {
	key  string
	desc string
}

// renderCommandBar renders the keys that apply to the current screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var cmds []cmd
	switch {
	case m.searching:
		cmds = []cmd{{"enter", "Search"}, {"esc", "Cancel"}}
	case m.tab == TabSettings:
		cmds = []cmd{{"tab", "Next"}, {"enter", "Save"}, {"esc", "Back"}}
	case m.detail.open:
		cmds = []cmd{{"esc", "Back"}, {"j/k", "Scroll"}, {"y", "Copy link"}, {"T", m.themeLabel()}, {"?", "Help"}}
	default:
		view := "List"
		if m.state.View == state.ViewList {
			view = "Grid"
		}
		cmds = []cmd{
			{"/", "Search"},
			{"L", "Locate"},
			{"enter", "Open"},
			{"v", view},
			{"T", m.themeLabel()},
			{"s", "Settings"},
			{"?", "Help"},
			{"q", "Quit"},
		}
	}

	parts := make([]string, 0, len(cmds))
	for _, c := range cmds {
		parts = append(parts, bg.Render(c.key, styles.AccentText.Bold(true))+
			bg.Render(":", styles.FaintText)+
			bg.Render(c.desc, styles.MutedText))
	}
	return styles.Header.Width(m.width).Render(bg.Spaces(1) + bg.Join(parts, 2))
}

// themeLabel names the theme T switches to.
func (m Model) themeLabel() string {
	if m.theme.Name == state.ThemeDark {
		return "Light"
	}
	return "Dark"
}
