package notes

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/trovecli/trove/internal/kvstore"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	kv, err := kvstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("kvstore.New returned error: %v", err)
	}
	return New(kv, slog.New(slog.DiscardHandler))
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	if got := s.Get(25); got != "" {
		t.Fatalf("Get on empty store = %q, want empty", got)
	}

	s.Set(25, "  fastest sprite on page three  ")
	if got := s.Get(25); got != "fastest sprite on page three" {
		t.Fatalf("Get = %q, want trimmed note", got)
	}

	// Notes are keyed per item.
	if got := s.Get(26); got != "" {
		t.Fatalf("Get(26) = %q, want empty", got)
	}
}

func TestStore_CapsLength(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	s.Set(1, strings.Repeat("x", 500))
	if got := len(s.Get(1)); got != MaxLen {
		t.Fatalf("note length = %d, want %d", got, MaxLen)
	}
}

func TestStore_EmptyNoteDeletes(t *testing.T) {
	t.Parallel()

	s := newStore(t)
	s.Set(7, "keep an eye on this one")
	s.Set(7, "   ")
	if got := s.Get(7); got != "" {
		t.Fatalf("Get after empty Set = %q, want deleted", got)
	}
}
