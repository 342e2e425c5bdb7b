// Package store provides the client's persistent key/value state: the
// terminal analog of browser localStorage. Values live in a small JSON
// file; every write is flushed synchronously.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dishly-app/dishly/internal/domain"
	"github.com/dishly-app/dishly/internal/logger"
)

// Keys used by the application.
const (
	// KeyAuthToken holds the session bearer token. It is written by the
	// auth manager and read by everything that calls a protected endpoint.
	KeyAuthToken = "authToken"

	// KeyTheme holds the display preference ("light" or "dark").
	KeyTheme = "theme"
)

// Compile-time interface check.
var _ domain.LocalStore = (*FileStore)(nil)

// FileStore is a file-backed string store. Safe for concurrent access.
type FileStore struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
	log    *logger.Logger
}

// Open loads the store at path, creating parent directories as needed.
// A missing file yields an empty store; a corrupt file is an error so a
// bad state file never silently eats the session token.
func Open(path string, log *logger.Logger) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		values: make(map[string]string),
		log:    log,
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("store: create dir: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", path, err)
	}

	log.Debug("loaded %d key(s) from %s", len(s.values), path)
	return s, nil
}

// Get returns the value for key, or "" when absent.
func (s *FileStore) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Set writes a value and persists immediately.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.flush()
}

// Delete removes a key and persists immediately. Deleting an absent key
// is a no-op.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flush()
}

// flush writes the current map to disk. Caller holds the lock.
func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}

	// Write-then-rename so a crash mid-write can't truncate the file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("store: write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("store: rename: %w", err)
	}

	s.log.Debug("flushed %d key(s) to %s", len(s.values), s.path)
	return nil
}
