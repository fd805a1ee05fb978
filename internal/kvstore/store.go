// Package kvstore provides simple key-value persistence backed by one file
// per key. It stands in for browser local storage: get/set/delete string
// values, with missing or unreadable entries treated as absent rather than
// fatal.
package kvstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("kvstore: key not found")

const appDir = "trove"

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Store persists string values under a root directory, one file per key.
type Store struct {
	root string
}

// DefaultRoot returns the default store location under the XDG data home.
func DefaultRoot() string {
	return filepath.Join(xdg.DataHome, appDir)
}

// New creates a Store rooted at dir, creating it as needed. An empty dir
// uses DefaultRoot.
func New(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultRoot()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{root: dir}, nil
}

// Get returns the stored value for key, or ErrNotFound.
func (s *Store) Get(key string) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read key %q: %w", key, err)
	}
	return string(data), nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write key %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete key %q: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.root, key), nil
}
