package config

import (
	"sync"
)

// CursorSection holds the visible-cursor overlay settings.
type CursorSection struct {
	mu      sync.RWMutex
	store   Store
	enabled bool
	color   string
}

// NewCursorSection creates the cursor section with defaults: overlay
// enabled, default marker color.
func NewCursorSection(store Store) *CursorSection {
	return &CursorSection{
		store:   store,
		enabled: true,
		color:   "",
	}
}

// ID returns the section identifier.
func (s *CursorSection) ID() string {
	return "cursor"
}

// Load reads the section from the store, keeping defaults for absent keys.
func (s *CursorSection) Load() error {
	data, err := s.store.GetSection(s.ID())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := data["enabled"].(bool); ok {
		s.enabled = v
	}
	if v, ok := data["color"].(string); ok {
		s.color = v
	}
	return nil
}

// Save writes the section to the store and persists it.
func (s *CursorSection) Save() error {
	s.mu.RLock()
	data := map[string]interface{}{
		"enabled": s.enabled,
		"color":   s.color,
	}
	s.mu.RUnlock()

	if err := s.store.SetSection(s.ID(), data); err != nil {
		return err
	}
	return s.store.Save()
}

// Enabled reports whether new sessions attach a visible cursor.
func (s *CursorSection) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// SetEnabled toggles the visible cursor for new sessions.
func (s *CursorSection) SetEnabled(enabled bool) error {
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()
	return s.Save()
}

// Color returns the configured marker color, empty for the built-in default.
func (s *CursorSection) Color() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.color
}

// SetColor sets the marker color as a CSS color value.
func (s *CursorSection) SetColor(color string) error {
	s.mu.Lock()
	s.color = color
	s.mu.Unlock()
	return s.Save()
}
