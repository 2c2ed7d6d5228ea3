package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store provides persistence for configuration data.
type Store interface {
	// Load loads the configuration from disk
	Load() error

	// Save saves the configuration to disk
	Save() error

	// GetSection retrieves configuration data for a specific section
	GetSection(sectionID string) (map[string]interface{}, error)

	// SetSection stores configuration data for a specific section
	SetSection(sectionID string, data map[string]interface{}) error
}

// FileStore implements Store using a JSON file.
type FileStore struct {
	path    string
	data    map[string]map[string]interface{}
	mu      sync.RWMutex
	version string
}

// fileFormat is the on-disk JSON layout.
type fileFormat struct {
	Version  string                            `json:"version"`
	Sections map[string]map[string]interface{} `json:"sections"`
}

// NewFileStore creates a new file-based configuration store.
// If path is empty, defaults to ~/.spotlight/config.json
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".spotlight", "config.json")
	}

	store := &FileStore{
		path:    path,
		data:    make(map[string]map[string]interface{}),
		version: "1.0",
	}

	// Try to load existing config, but don't fail if it doesn't exist
	if err := store.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	return store, nil
}

// Load loads the configuration from disk.
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var file fileFormat
	if err := json.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if file.Sections != nil {
		s.data = file.Sections
	}
	if file.Version != "" {
		s.version = file.Version
	}
	return nil
}

// Save saves the configuration to disk, creating the directory if needed.
func (s *FileStore) Save() error {
	s.mu.RLock()
	file := fileFormat{
		Version:  s.version,
		Sections: s.data,
	}
	raw, err := json.MarshalIndent(file, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetSection retrieves configuration data for a specific section.
// A missing section yields an empty map, not an error.
func (s *FileStore) GetSection(sectionID string) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	section, ok := s.data[sectionID]
	if !ok {
		return map[string]interface{}{}, nil
	}

	copied := make(map[string]interface{}, len(section))
	for k, v := range section {
		copied[k] = v
	}
	return copied, nil
}

// SetSection stores configuration data for a specific section.
func (s *FileStore) SetSection(sectionID string, data map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make(map[string]interface{}, len(data))
	for k, v := range data {
		copied[k] = v
	}
	s.data[sectionID] = copied
	return nil
}
