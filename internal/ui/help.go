package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay. Any key dismisses it.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []struct {
		title string
		rows  [][2]string
	}{
		{"Navigation", [][2]string{
			{"j/k, ↓/↑", "Move selection"},
			{"g / G", "First / last item"},
			{"←/→, l", "Previous / next page"},
			{"enter", "Open item detail"},
			{"esc", "Back to list"},
		}},
		{"Filters", [][2]string{
			{"/", "Search names (debounced)"},
			{"f", "Cycle category filter"},
			{"v", "Toggle favorites-only"},
			{"s", "Toggle sort field (id/name)"},
			{"o", "Toggle sort order"},
		}},
		{"Actions", [][2]string{
			{"space", "Toggle favorite"},
			{"n", "Edit note (detail view)"},
			{"r", "Retry failed fetch"},
			{"T", "Toggle light/dark theme"},
			{"q, ctrl+c", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(styles.Logo.Render("trove") + styles.MutedText.Render("  keyboard reference"))
	b.WriteString("\n\n")
	for _, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title) + "\n")
		for _, row := range section.rows {
			b.WriteString("  " + styles.Text.Render(padRight(row[0], 12)) +
				styles.MutedText.Render(row[1]) + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("press any key to close"))

	box := styles.Box.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
