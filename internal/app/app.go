package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/trovecli/trove/internal/catalog"
	"github.com/trovecli/trove/internal/config"
	"github.com/trovecli/trove/internal/explorer"
	"github.com/trovecli/trove/internal/favorites"
	"github.com/trovecli/trove/internal/kvstore"
	"github.com/trovecli/trove/internal/notes"
	"github.com/trovecli/trove/internal/ui"
	"github.com/trovecli/trove/internal/urlstate"
)

const (
	sessionKey   = "last-session"
	themePrefKey = "theme-preference"
)

// Options configure the Trove application.
type Options struct {
	ConfigPath string
	StateQuery string // optional query-string seeding the explorer state
	PageSize   int    // overrides config when > 0
}

// Run boots the interactive explorer until the context is cancelled or the
// user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.PageSize > 0 {
		cfg.PageSize = opts.PageSize
	}

	logger, closeLog := newLogger(cfg.LogLevel)
	defer closeLog()

	kv, err := kvstore.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open local storage: %w", err)
	}

	client, err := catalog.NewClient(cfg.BaseURL, cfg.Collection)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	favs := favorites.New(kv, logger)
	noteStore := notes.New(kv, logger)

	sync := loadSession(kv, opts.StateQuery, logger)
	state := sync.State()

	exp := explorer.New(ctx, client, favs, explorer.Options{
		PageSize:    cfg.PageSize,
		InitialPage: pageFromState(state),
		Filters:     filtersFromState(state),
		Sort:        sortFromState(state),
		Logger:      logger,
	})
	defer exp.Close()

	// Populate the first page before the UI starts polling.
	exp.Refetch()

	themePref := themePrefFrom(kv, logger)
	uiErr := ui.Run(ui.Options{
		Context:   ctx,
		Explorer:  exp,
		Favorites: favs,
		Notes:     noteStore,
		Sync:      sync,
		ThemePref: themePref,
		SaveThemePref: func(name string) {
			if err := kv.Set(themePrefKey, name); err != nil {
				logger.Warn("persist theme preference failed", "error", err)
			}
		},
	})

	if err := kv.Set(sessionKey, sync.Encode()); err != nil {
		logger.Warn("persist session state failed", "error", err)
	}
	return uiErr
}

// loadSession builds the session state sync: an explicit query argument
// wins, otherwise the persisted last session is resumed. Corrupt state
// falls back to an empty session.
func loadSession(kv *kvstore.Store, explicit string, logger *slog.Logger) *urlstate.Sync {
	raw := strings.TrimSpace(explicit)
	if raw == "" {
		stored, err := kv.Get(sessionKey)
		if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
			logger.Warn("load session state failed", "error", err)
		}
		raw = stored
	}
	sync, err := urlstate.Parse(raw)
	if err != nil {
		logger.Warn("corrupt session state ignored", "error", err)
		sync, _ = urlstate.Parse("")
	}
	return sync
}

// themePrefFrom reads the persisted theme preference, defaulting to system.
func themePrefFrom(kv *kvstore.Store, logger *slog.Logger) string {
	pref, err := kv.Get(themePrefKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			logger.Warn("load theme preference failed", "error", err)
		}
		return ui.PrefSystem
	}
	switch pref {
	case ui.PrefLight, ui.PrefDark, ui.PrefSystem:
		return pref
	default:
		return ui.PrefSystem
	}
}

// pageFromState parses the page parameter, defaulting to 1.
func pageFromState(s urlstate.State) int {
	page, err := strconv.Atoi(s.Page)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// filtersFromState maps session state onto a filter settings.
func filtersFromState(s urlstate.State) explorer.Filters {
	f := explorer.DefaultFilters()
	f.Query = s.Query
	if c := strings.TrimSpace(s.Filter); c != "" {
		f.Category = c
	}
	f.FavoritesOnly = s.Favorites == "1" || strings.EqualFold(s.Favorites, "true")
	return f
}

// sortFromState maps session state onto a sort settings.
func sortFromState(s urlstate.State) explorer.Sort {
	srt := explorer.DefaultSort()
	if s.Sort == string(explorer.SortByName) {
		srt.Field = explorer.SortByName
	}
	if s.Order == string(explorer.Descending) {
		srt.Order = explorer.Descending
	}
	return srt
}
