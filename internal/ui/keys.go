package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the explorer.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	ToggleTheme key.Binding
	Back        key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Pagination
	NextPage key.Binding
	PrevPage key.Binding

	// Filters and sort
	Search         key.Binding
	CycleCategory  key.Binding
	FavoritesOnly  key.Binding
	CycleSortField key.Binding
	ToggleOrder    key.Binding

	// Actions
	Open     key.Binding
	Favorite key.Binding
	EditNote key.Binding
	Retry    key.Binding

	// Input
	Confirm key.Binding
	Cancel  key.Binding
}

// defaultKeyMap returns the default key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("?", "Toggle help"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Toggle light/dark"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to list"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First item"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last item"),
		),

		NextPage: key.NewBinding(
			key.WithKeys("l", "right", "pgdown"),
			key.WithHelp("l/→", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "pgup"),
			key.WithHelp("←", "Previous page"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search names"),
		),
		CycleCategory: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle category"),
		),
		FavoritesOnly: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Favorites only"),
		),
		CycleSortField: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Sort field"),
		),
		ToggleOrder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Sort order"),
		),

		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open detail"),
		),
		Favorite: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Toggle favorite"),
		),
		EditNote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Edit note"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Retry fetch"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
	}
}
