package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/trovecli/trove/internal/catalog"
)

const statBarWidth = 20

// renderDetail renders the full record for the selected item.
func (m Model) renderDetail() string {
	styles := m.theme.Styles()

	item := m.detailItem()
	if item == nil {
		body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("Item is no longer on this page"))
		return m.renderHeader() + "\n" + body
	}

	var b strings.Builder

	title := fmt.Sprintf("#%d %s", item.ID, item.Name)
	if m.favs != nil && m.favs.Contains(item.ID) {
		title += " " + styles.Warning.Render("★")
	}
	b.WriteString(styles.AccentText.Bold(true).Render(title))
	b.WriteString("\n\n")

	if tags := item.TagNames(); len(tags) > 0 {
		badges := make([]string, 0, len(tags))
		for _, tag := range tags {
			badges = append(badges, styles.Badge.Render(tag))
		}
		b.WriteString(strings.Join(badges, " "))
		b.WriteString("\n\n")
	}

	if item.Height > 0 || item.Weight > 0 {
		b.WriteString(styles.MutedText.Render("height ") + styles.Text.Render(fmt.Sprintf("%d", item.Height)))
		b.WriteString(styles.MutedText.Render("   weight ") + styles.Text.Render(fmt.Sprintf("%d", item.Weight)))
		b.WriteString("\n\n")
	}

	if len(item.Abilities) > 0 {
		b.WriteString(styles.MutedText.Render("abilities") + "\n")
		for _, ability := range item.Abilities {
			line := "  " + ability.Name
			if ability.Hidden {
				line += styles.FaintText.Render(" (hidden)")
			}
			b.WriteString(styles.Text.Render(line) + "\n")
		}
		b.WriteString("\n")
	}

	if len(item.Stats) > 0 {
		b.WriteString(styles.MutedText.Render("stats") + "\n")
		for _, stat := range item.Stats {
			b.WriteString(fmt.Sprintf("  %-16s %s %d\n",
				stat.Name, m.renderStatBar(stat.Base), stat.Base))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderNote())

	body := styles.Box.Width(min(m.width-2, 72)).Render(b.String())
	footer := styles.Footer.Width(m.width).Render(
		"space ★  n note  esc back  q quit")

	content := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Top, body)
	return m.renderHeader() + "\n" + content + footer
}

// renderNote shows the stored note or the active editor.
func (m Model) renderNote() string {
	styles := m.theme.Styles()

	if m.editingNote {
		return styles.MutedText.Render("note") + "\n" + m.noteInput.View() + "\n"
	}
	if m.notes == nil {
		return ""
	}
	note := m.notes.Get(m.detailID)
	if note == "" {
		return styles.FaintText.Render("no note yet. press n to add one") + "\n"
	}
	return styles.MutedText.Render("note") + "\n" + styles.Text.Render(note) + "\n"
}

// renderStatBar draws a proportional bar for a base stat value.
func (m Model) renderStatBar(value int) string {
	styles := m.theme.Styles()

	// 255 is the conventional ceiling for base stats. Values outside
	// [0, 255] still render; the bar just pins at its bounds.
	filled := value * statBarWidth / 255
	filled = max(0, min(filled, statBarWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", statBarWidth-filled)

	switch {
	case value >= 100:
		return styles.Success.Render(bar)
	case value >= 60:
		return styles.Warning.Render(bar)
	default:
		return styles.MutedText.Render(bar)
	}
}

// detailItem finds the detail item within the current snapshot.
func (m Model) detailItem() *catalog.Item {
	for i := range m.snapshot.Items {
		if m.snapshot.Items[i].ID == m.detailID {
			return &m.snapshot.Items[i]
		}
	}
	return nil
}
