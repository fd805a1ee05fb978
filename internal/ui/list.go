package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/trovecli/trove/internal/explorer"
)

// renderList renders the list view: header, filter bar, item rows, and the
// pagination footer.
func (m Model) renderList() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")

	// Header + filter bar + footer take three lines.
	bodyHeight := m.height - 3
	b.WriteString(m.renderRows(bodyHeight))
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the top status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{styles.Logo.Render("trove")}

	if m.snapshot.TotalCount > 0 {
		parts = append(parts, styles.MutedText.Render(
			fmt.Sprintf("%d items", m.snapshot.TotalCount)))
	}

	switch {
	case m.snapshot.Loading:
		parts = append(parts, styles.Warning.Render("Fetching..."))
	case m.snapshot.Err != "":
		msg := truncate(m.snapshot.Err, max(20, m.width-30))
		parts = append(parts, styles.Danger.Render("ERROR "+msg),
			styles.MutedText.Render("r to retry"))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

// renderFilterBar shows the active query, category, favorites, and sort.
func (m Model) renderFilterBar() string {
	styles := m.theme.Styles()

	var parts []string

	if m.searching {
		parts = append(parts, m.searchInput.View())
	} else if q := m.snapshot.Filters.Query; q != "" {
		parts = append(parts, styles.AccentText.Render("/"+q))
	}

	category := m.snapshot.Filters.Category
	if category == "" {
		category = explorer.CategoryAll
	}
	parts = append(parts, styles.MutedText.Render("category:")+styles.Text.Render(category))

	if m.snapshot.Filters.FavoritesOnly {
		parts = append(parts, styles.Warning.Render("★ favorites"))
	}

	order := "↑"
	if m.snapshot.Sort.Order == explorer.Descending {
		order = "↓"
	}
	parts = append(parts, styles.MutedText.Render("sort:")+
		styles.Text.Render(string(m.snapshot.Sort.Field)+order))

	return styles.Footer.Width(m.width).Render(strings.Join(parts, "  "))
}

// renderRows renders the item rows, one per line, padding to height lines.
func (m Model) renderRows(height int) string {
	styles := m.theme.Styles()

	if len(m.snapshot.Items) == 0 {
		msg := "No items match the current filters"
		if m.snapshot.Loading {
			msg = "Fetching catalog page..."
		}
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render(msg)) + "\n"
	}

	var b strings.Builder
	visible := min(len(m.snapshot.Items), height)
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}

	for i := start; i < start+visible && i < len(m.snapshot.Items); i++ {
		item := m.snapshot.Items[i]

		marker := "  "
		if m.favs != nil && m.favs.Contains(item.ID) {
			marker = styles.Warning.Render("★ ")
		}
		note := ""
		if m.notes != nil && m.notes.Get(item.ID) != "" {
			note = styles.FaintText.Render(" ✎")
		}

		row := fmt.Sprintf("%s%4d  %-24s %s%s",
			marker,
			item.ID,
			truncate(item.Name, 24),
			styles.MutedText.Render(strings.Join(item.TagNames(), ", ")),
			note,
		)

		if i == m.selected {
			row = styles.Selected.Width(m.width).Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	for i := visible; i < height; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

// renderFooter renders pagination status and key hints.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	page := m.snapshot.Page
	total := max(m.snapshot.TotalPages, 1)

	prev := "←"
	if !m.snapshot.HasPrevious {
		prev = " "
	}
	next := "→"
	if !m.snapshot.HasNext {
		next = " "
	}

	pagination := fmt.Sprintf("%s page %d/%d %s", prev, page, total, next)
	hints := "/ search  f category  v favorites  s/o sort  space ★  enter detail  ? help  q quit"

	gap := m.width - lipgloss.Width(pagination) - len(hints) - 4
	if gap < 1 {
		return styles.Footer.Width(m.width).Render(pagination)
	}
	return styles.Footer.Width(m.width).Render(
		pagination + strings.Repeat(" ", gap) + styles.FaintText.Render(hints))
}
