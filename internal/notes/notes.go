// Package notes persists short per-item annotations under keys of the form
// "note-{id}". Notes are capped at 200 characters and live only in local
// storage; the remote catalog never sees them.
package notes

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/trovecli/trove/internal/kvstore"
)

// MaxLen is the maximum note length in runes.
const MaxLen = 200

// KV is the persistence capability the store needs.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store reads and writes per-item notes.
type Store struct {
	kv     KV
	logger *slog.Logger
}

// New builds a note store over kv.
func New(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// Get returns the note for id, or "" when none is stored. Read failures
// are logged and reported as an absent note.
func (s *Store) Get(id int) string {
	raw, err := s.kv.Get(key(id))
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			s.logger.Warn("load note failed", "id", id, "error", err)
		}
		return ""
	}
	return raw
}

// Set stores the note for id, trimming surrounding whitespace and capping
// the length at MaxLen runes. An empty note deletes the entry. Persistence
// failures are logged, never returned.
func (s *Store) Set(id int, text string) {
	trimmed := strings.TrimSpace(text)
	if runes := []rune(trimmed); len(runes) > MaxLen {
		trimmed = string(runes[:MaxLen])
	}
	if trimmed == "" {
		if err := s.kv.Delete(key(id)); err != nil {
			s.logger.Warn("delete note failed", "id", id, "error", err)
		}
		return
	}
	if err := s.kv.Set(key(id), trimmed); err != nil {
		s.logger.Warn("persist note failed", "id", id, "error", err)
	}
}

func key(id int) string {
	return fmt.Sprintf("note-%d", id)
}
