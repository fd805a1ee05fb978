package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme preference values persisted under the "theme-preference" key.
const (
	PrefLight  = "light"
	PrefDark   = "dark"
	PrefSystem = "system"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Background    string
	Surface       string
	Text          string
	Muted         string
	Faint         string
	Accent        string
	Success       string
	Warning       string
	Danger        string
	SelectionBg   string
	SelectionText string
	Border        string
}

// Dark is the default palette on dark terminals.
func Dark() Theme {
	return Theme{
		Name:          PrefDark,
		Background:    "#1a1b26",
		Surface:       "#24283b",
		Text:          "#c0caf5",
		Muted:         "#787c99",
		Faint:         "#565a6e",
		Accent:        "#7aa2f7",
		Success:       "#9ece6a",
		Warning:       "#e0af68",
		Danger:        "#f7768e",
		SelectionBg:   "#364a82",
		SelectionText: "#c0caf5",
		Border:        "#3b4261",
	}
}

// Light is the palette on light terminals.
func Light() Theme {
	return Theme{
		Name:          PrefLight,
		Background:    "#e1e2e7",
		Surface:       "#d5d6db",
		Text:          "#343b58",
		Muted:         "#6c6e75",
		Faint:         "#9699a3",
		Accent:        "#34548a",
		Success:       "#485e30",
		Warning:       "#8f5e15",
		Danger:        "#8c4351",
		SelectionBg:   "#b7c1e3",
		SelectionText: "#343b58",
		Border:        "#a8aecb",
	}
}

// ResolveTheme maps a stored preference to a concrete theme. "system"
// follows the terminal background; unknown values fall back to system.
func ResolveTheme(pref string) Theme {
	switch pref {
	case PrefLight:
		return Light()
	case PrefDark:
		return Dark()
	default:
		if lipgloss.HasDarkBackground() {
			return Dark()
		}
		return Light()
	}
}

// Styles contains pre-built lipgloss styles for a theme.
type Styles struct {
	Text       lipgloss.Style
	MutedText  lipgloss.Style
	FaintText  lipgloss.Style
	AccentText lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	Danger     lipgloss.Style

	Logo     lipgloss.Style
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Selected lipgloss.Style
	Badge    lipgloss.Style
	Box      lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		MutedText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		FaintText:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		AccentText: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		Success:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
		Badge: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Accent)).
			Padding(0, 1),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
	}
}

// ToggleTheme flips between light and dark, ignoring system.
func ToggleTheme(current Theme) Theme {
	if current.Name == PrefDark {
		return Light()
	}
	return Dark()
}
