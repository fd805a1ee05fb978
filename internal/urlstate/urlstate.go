// Package urlstate mirrors a fixed subset of explorer state into a
// query-string form. It replaces the browser address bar for a terminal
// application: the encoded state seeds a session from the command line and
// is persisted so the next session resumes where the last one ended.
//
// The component owns no business logic; it is a pure bidirectional mapping
// between in-memory state and query parameters.
package urlstate

import (
	"fmt"
	"net/url"
	"sync"
)

// Keys is the fixed set of recognized query parameters. Anything else in
// the input is dropped.
var Keys = []string{"page", "q", "filter", "sort", "order", "favorites"}

// State is the flat string mapping read from a query string. Absent keys
// are empty strings; defaults are applied by the consumer (page 1, empty
// query, "all" filter, sort by identifier ascending, favorites off).
type State struct {
	Page      string
	Query     string
	Filter    string
	Sort      string
	Order     string
	Favorites string
}

// Sync holds the current query parameter values and applies partial
// updates to them. It is safe for concurrent use: updates arrive both from
// the UI update loop and from debounce timer goroutines.
type Sync struct {
	mu     sync.Mutex
	values url.Values
}

// Parse builds a Sync from an encoded query string, keeping only the
// recognized keys. An empty string yields an empty Sync.
func Parse(raw string) (*Sync, error) {
	parsed, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("parse state query: %w", err)
	}
	values := url.Values{}
	for _, key := range Keys {
		if v := parsed.Get(key); v != "" {
			values.Set(key, v)
		}
	}
	return &Sync{values: values}, nil
}

// State returns the current values as a flat mapping.
func (s *Sync) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Page:      s.values.Get("page"),
		Query:     s.values.Get("q"),
		Filter:    s.values.Get("filter"),
		Sort:      s.values.Get("sort"),
		Order:     s.values.Get("order"),
		Favorites: s.values.Get("favorites"),
	}
}

// Get returns the value for one key.
func (s *Sync) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Get(key)
}

// Apply merges a partial update. For each key present in updates, an empty
// value removes the key and a non-empty value sets it. Keys not mentioned
// are left untouched. Unrecognized keys are ignored.
func (s *Sync) Apply(updates map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range Keys {
		value, ok := updates[key]
		if !ok {
			continue
		}
		if value == "" {
			s.values.Del(key)
			continue
		}
		s.values.Set(key, value)
	}
}

// Encode returns the query-string form of the current state.
func (s *Sync) Encode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Encode()
}
