// Package favorites maintains the user's favorite item set, persisted as a
// JSON identifier array in local key-value storage.
package favorites

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/trovecli/trove/internal/kvstore"
)

const storageKey = "favorites"

// KV is the persistence capability the store needs. *kvstore.Store
// implements it; tests substitute counting fakes.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Store holds the favorite identifier set. The set is loaded once at
// construction and written back synchronously on every mutation. Each
// mutation installs a fresh set value so observers comparing snapshots
// see the change; the previous set is never modified in place.
type Store struct {
	mu     sync.RWMutex
	ids    map[int]struct{}
	kv     KV
	logger *slog.Logger
}

// New loads the persisted favorite set. A missing or corrupt entry leaves
// the set empty; the failure is logged, never returned.
func New(kv KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{ids: map[int]struct{}{}, kv: kv, logger: logger}

	raw, err := kv.Get(storageKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrNotFound) {
			logger.Warn("load favorites failed", "error", err)
		}
		return s
	}
	var stored []int
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		logger.Warn("corrupt favorites entry ignored", "error", err)
		return s
	}
	for _, id := range stored {
		s.ids[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is favorited.
func (s *Store) Contains(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// IDs returns the favorite identifiers in ascending order.
func (s *Store) IDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedIDs(s.ids)
}

// Set returns a copy of the favorite set for filter predicates.
func (s *Store) Set() map[int]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int]struct{}, len(s.ids))
	for id := range s.ids {
		out[id] = struct{}{}
	}
	return out
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Toggle adds id when absent and removes it when present.
func (s *Store) Toggle(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := clone(s.ids)
	if _, ok := next[id]; ok {
		delete(next, id)
	} else {
		next[id] = struct{}{}
	}
	s.install(next)
}

// Add inserts id. Adding a present id is a no-op with no persistence write.
func (s *Store) Add(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		return
	}
	next := clone(s.ids)
	next[id] = struct{}{}
	s.install(next)
}

// Remove deletes id. Removing an absent id is a no-op with no persistence
// write.
func (s *Store) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; !ok {
		return
	}
	next := clone(s.ids)
	delete(next, id)
	s.install(next)
}

// install swaps in the new set and persists it. A failed write is logged
// only; the in-memory set stays authoritative for the session.
func (s *Store) install(next map[int]struct{}) {
	s.ids = next
	data, err := json.Marshal(sortedIDs(next))
	if err != nil {
		s.logger.Warn("encode favorites failed", "error", err)
		return
	}
	if err := s.kv.Set(storageKey, string(data)); err != nil {
		s.logger.Warn("persist favorites failed", "error", err)
	}
}

func clone(ids map[int]struct{}) map[int]struct{} {
	next := make(map[int]struct{}, len(ids)+1)
	for id := range ids {
		next[id] = struct{}{}
	}
	return next
}

func sortedIDs(ids map[int]struct{}) []int {
	out := make([]int, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}
