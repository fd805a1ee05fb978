package ui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/trovecli/trove/internal/debounce"
	"github.com/trovecli/trove/internal/explorer"
	"github.com/trovecli/trove/internal/favorites"
	"github.com/trovecli/trove/internal/notes"
	"github.com/trovecli/trove/internal/urlstate"
)

// View represents the current active view.
type View int

const (
	ViewList View = iota
	ViewDetail
)

const (
	defaultTick   = 250 * time.Millisecond
	searchSettle  = 300 * time.Millisecond
	maxNoteInput  = notes.MaxLen
	searchCharCap = 80
)

// Options configures the UI.
type Options struct {
	Context       context.Context
	Explorer      *explorer.Explorer
	Favorites     *favorites.Store
	Notes         *notes.Store
	Sync          *urlstate.Sync
	ThemePref     string
	SaveThemePref func(string)
	Tick          time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	exp       *explorer.Explorer
	favs      *favorites.Store
	notes     *notes.Store
	sync      *urlstate.Sync
	saveTheme func(string)
	tick      time.Duration

	theme  Theme
	keys   keyMap
	width  int
	height int
	ready  bool

	view     View
	snapshot explorer.Snapshot
	selected int
	detailID int

	searching   bool
	searchInput textinput.Model
	debouncer   *debounce.Debouncer[string]

	editingNote bool
	noteInput   textinput.Model

	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = defaultTick
	}
	saveTheme := opts.SaveThemePref
	if saveTheme == nil {
		saveTheme = func(string) {}
	}

	search := textinput.New()
	search.Placeholder = "search names"
	search.CharLimit = searchCharCap
	search.Prompt = "/"

	note := textinput.New()
	note.Placeholder = "note (enter saves, esc cancels)"
	note.CharLimit = maxNoteInput
	note.Prompt = "> "

	exp := opts.Explorer
	sync := opts.Sync
	// The debouncer feeds settled search text into the filter stage and the
	// mirrored state; intermediate keystrokes never reach either.
	deb := debounce.New(searchSettle, func(q string) {
		exp.SetQuery(q)
		if sync != nil {
			sync.Apply(map[string]string{"q": q})
		}
	})

	return Model{
		ctx:         ctx,
		exp:         exp,
		favs:        opts.Favorites,
		notes:       opts.Notes,
		sync:        sync,
		saveTheme:   saveTheme,
		tick:        tick,
		theme:       ResolveTheme(opts.ThemePref),
		keys:        defaultKeyMap(),
		view:        ViewList,
		searchInput: search,
		noteInput:   note,
		debouncer:   deb,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(m.tick),
		snapshotCmd(m.exp),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m, tea.Batch(snapshotCmd(m.exp), tickCmd(m.tick))

	case snapshotMsg:
		m.snapshot = explorer.Snapshot(msg)
		m.clampSelection()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.view == ViewDetail {
		return m.renderDetail()
	}
	return m.renderList()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.editingNote {
		return m.handleNoteKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.debouncer.Stop()
		m.exp.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		m.theme = ToggleTheme(m.theme)
		m.saveTheme(m.theme.Name)
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		m.exp.Refetch()
		return m, snapshotCmd(m.exp)
	}

	if m.view == ViewDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

// handleListKey processes keys in the list view.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.snapshot.Items)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		if n := len(m.snapshot.Items); n > 0 {
			m.selected = n - 1
		}

	case key.Matches(msg, m.keys.NextPage):
		if m.snapshot.HasNext {
			m.setPage(m.snapshot.Page + 1)
			return m, snapshotCmd(m.exp)
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.snapshot.HasPrevious {
			m.setPage(m.snapshot.Page - 1)
			return m, snapshotCmd(m.exp)
		}

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.snapshot.Filters.Query)
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.CycleCategory):
		m.cycleCategory()
	case key.Matches(msg, m.keys.FavoritesOnly):
		m.toggleFavoritesOnly()
	case key.Matches(msg, m.keys.CycleSortField):
		m.cycleSortField()
	case key.Matches(msg, m.keys.ToggleOrder):
		m.toggleSortOrder()

	case key.Matches(msg, m.keys.Favorite):
		if item := m.selectedItem(); item != nil {
			m.favs.Toggle(item.ID)
		}
	case key.Matches(msg, m.keys.Open):
		if item := m.selectedItem(); item != nil {
			m.detailID = item.ID
			m.view = ViewDetail
		}
	}

	m.snapshot = m.exp.Snapshot()
	m.clampSelection()
	return m, nil
}

// handleDetailKey processes keys in the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.view = ViewList
	case key.Matches(msg, m.keys.Favorite):
		m.favs.Toggle(m.detailID)
	case key.Matches(msg, m.keys.EditNote):
		m.editingNote = true
		m.noteInput.SetValue(m.notes.Get(m.detailID))
		m.noteInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

// handleSearchKey processes keys while the search input is focused.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.searchInput.Blur()
		// Enter skips the settle window and applies immediately.
		m.debouncer.Stop()
		q := m.searchInput.Value()
		m.exp.SetQuery(q)
		m.applySync(map[string]string{"q": q})
		m.snapshot = m.exp.Snapshot()
		m.clampSelection()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.searching = false
		m.searchInput.Blur()
		m.debouncer.Stop()
		m.exp.SetQuery("")
		m.applySync(map[string]string{"q": ""})
		m.snapshot = m.exp.Snapshot()
		m.clampSelection()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.debouncer.Set(m.searchInput.Value())
	return m, cmd
}

// handleNoteKey processes keys while the note editor is focused.
func (m Model) handleNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.editingNote = false
		m.noteInput.Blur()
		m.notes.Set(m.detailID, m.noteInput.Value())
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.editingNote = false
		m.noteInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

// setPage moves the explorer to page p and mirrors it to the session state.
func (m *Model) setPage(p int) {
	m.exp.SetPage(p)
	if p <= 1 {
		m.applySync(map[string]string{"page": ""})
	} else {
		m.applySync(map[string]string{"page": strconv.Itoa(p)})
	}
	m.selected = 0
}

// cycleCategory advances through "all" plus the categories present on the
// current page.
func (m *Model) cycleCategory() {
	current := m.snapshot.Filters.Category
	options := append([]string{explorer.CategoryAll}, m.exp.Categories()...)
	next := options[0]
	for i, opt := range options {
		if opt == current {
			next = options[(i+1)%len(options)]
			break
		}
	}
	f := m.exp.Filters()
	f.Category = next
	m.exp.SetFilters(f)
	if next == explorer.CategoryAll {
		m.applySync(map[string]string{"filter": ""})
	} else {
		m.applySync(map[string]string{"filter": next})
	}
	m.selected = 0
}

func (m *Model) toggleFavoritesOnly() {
	f := m.exp.Filters()
	f.FavoritesOnly = !f.FavoritesOnly
	m.exp.SetFilters(f)
	if f.FavoritesOnly {
		m.applySync(map[string]string{"favorites": "1"})
	} else {
		m.applySync(map[string]string{"favorites": ""})
	}
	m.selected = 0
}

func (m *Model) cycleSortField() {
	s := m.exp.Sort()
	if s.Field == explorer.SortByID {
		s.Field = explorer.SortByName
		m.applySync(map[string]string{"sort": string(explorer.SortByName)})
	} else {
		s.Field = explorer.SortByID
		m.applySync(map[string]string{"sort": ""})
	}
	m.exp.SetSort(s)
}

func (m *Model) toggleSortOrder() {
	s := m.exp.Sort()
	if s.Order == explorer.Descending {
		s.Order = explorer.Ascending
		m.applySync(map[string]string{"order": ""})
	} else {
		s.Order = explorer.Descending
		m.applySync(map[string]string{"order": string(explorer.Descending)})
	}
	m.exp.SetSort(s)
}

func (m *Model) applySync(updates map[string]string) {
	if m.sync != nil {
		m.sync.Apply(updates)
	}
}

func (m *Model) clampSelection() {
	if n := len(m.snapshot.Items); m.selected >= n {
		m.selected = max(0, n-1)
	}
}

func (m Model) selectedItem() *itemRef {
	if m.selected < 0 || m.selected >= len(m.snapshot.Items) {
		return nil
	}
	item := m.snapshot.Items[m.selected]
	return &itemRef{ID: item.ID, Name: item.Name}
}

type itemRef struct {
	ID   int
	Name string
}

// Messages

type tickMsg time.Time

type snapshotMsg explorer.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func snapshotCmd(e *explorer.Explorer) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(e.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
