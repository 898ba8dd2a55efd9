// Package store persists fit configuration dumps to disk as YAML.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// ConfigStore reads and writes the fit configuration collection as a YAML
// document. Writes go through a temp file and rename so a crash mid-write
// never leaves a truncated store behind.
type ConfigStore struct {
	path string
	mu   sync.Mutex
}

// NewConfigStore creates a store backed by the given file path.
func NewConfigStore(path string) *ConfigStore { return &ConfigStore{path: path} }

// Path returns the backing file path.
func (s *ConfigStore) Path() string { return s.path }

// Save writes the configuration dumps, creating parent directories as needed.
//
// Parameters:
//   - dumps: The dictionary representations of all configurations, in order.
//
// Returns:
//   - error: An error if encoding or writing fails.
func (s *ConfigStore) Save(dumps []map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := yaml.Marshal(dumps)
	if err != nil {
		return fmt.Errorf("encoding fit configurations: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("writing fit configurations: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// Load reads the configuration dumps. A missing file yields an empty
// collection; any other read or decode failure is an error.
//
// Returns:
//   - []map[string]any: The dictionary representations, in stored order.
//   - error: An error if reading or decoding fails.
func (s *ConfigStore) Load() ([]map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading fit configurations: %w", err)
	}
	var dumps []map[string]any
	if err := yaml.Unmarshal(raw, &dumps); err != nil {
		return nil, fmt.Errorf("decoding fit configurations: %w", err)
	}
	return dumps, nil
}
