package kvstore

import (
	"errors"
	"testing"
)

func TestStore_SetGetDelete(t *testing.T) {
	t.Parallel()

	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := s.Get("favorites"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store = %v, want ErrNotFound", err)
	}

	if err := s.Set("favorites", "[1,2,3]"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	got, err := s.Get("favorites")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got != "[1,2,3]" {
		t.Fatalf("Get = %q, want [1,2,3]", got)
	}

	if err := s.Set("favorites", "[4]"); err != nil {
		t.Fatalf("Set (overwrite) returned error: %v", err)
	}
	got, _ = s.Get("favorites")
	if got != "[4]" {
		t.Fatalf("Get after overwrite = %q, want [4]", got)
	}

	if err := s.Delete("favorites"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := s.Get("favorites"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}

	// Deleting twice must stay a no-op.
	if err := s.Delete("favorites"); err != nil {
		t.Fatalf("Delete (absent) returned error: %v", err)
	}
}

func TestStore_RejectsUnsafeKeys(t *testing.T) {
	t.Parallel()

	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	for _, key := range []string{"", "../escape", ".hidden", "a/b", "a b"} {
		if err := s.Set(key, "x"); err == nil {
			t.Fatalf("Set(%q) accepted unsafe key, want error", key)
		}
	}

	for _, key := range []string{"note-25", "theme-preference", "last-session"} {
		if err := s.Set(key, "x"); err != nil {
			t.Fatalf("Set(%q) returned error: %v", key, err)
		}
	}
}
