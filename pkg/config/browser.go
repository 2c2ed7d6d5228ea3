package config

import (
	"sync"
)

// BrowserSection holds defaults for new browser sessions.
type BrowserSection struct {
	mu             sync.RWMutex
	store          Store
	headless       bool
	viewportWidth  int
	viewportHeight int
}

// NewBrowserSection creates the browser section with defaults. Headed mode
// is the default: a visible cursor is pointless in a window nobody sees,
// though headless still matters for recordings.
func NewBrowserSection(store Store) *BrowserSection {
	return &BrowserSection{
		store:          store,
		headless:       false,
		viewportWidth:  1280,
		viewportHeight: 720,
	}
}

// ID returns the section identifier.
func (s *BrowserSection) ID() string {
	return "browser"
}

// Load reads the section from the store, keeping defaults for absent keys.
func (s *BrowserSection) Load() error {
	data, err := s.store.GetSection(s.ID())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := data["headless"].(bool); ok {
		s.headless = v
	}
	if v := asInt(data["viewport_width"]); v > 0 {
		s.viewportWidth = v
	}
	if v := asInt(data["viewport_height"]); v > 0 {
		s.viewportHeight = v
	}
	return nil
}

// asInt tolerates both in-memory ints and JSON-decoded float64s.
func asInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}

// Save writes the section to the store and persists it.
func (s *BrowserSection) Save() error {
	s.mu.RLock()
	data := map[string]interface{}{
		"headless":        s.headless,
		"viewport_width":  s.viewportWidth,
		"viewport_height": s.viewportHeight,
	}
	s.mu.RUnlock()

	if err := s.store.SetSection(s.ID(), data); err != nil {
		return err
	}
	return s.store.Save()
}

// Headless reports the default headless mode for new sessions.
func (s *BrowserSection) Headless() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.headless
}

// SetHeadless sets the default headless mode for new sessions.
func (s *BrowserSection) SetHeadless(headless bool) error {
	s.mu.Lock()
	s.headless = headless
	s.mu.Unlock()
	return s.Save()
}

// Viewport returns the default viewport dimensions for new sessions.
func (s *BrowserSection) Viewport() (width, height int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewportWidth, s.viewportHeight
}

// SetViewport sets the default viewport dimensions for new sessions.
func (s *BrowserSection) SetViewport(width, height int) error {
	s.mu.Lock()
	s.viewportWidth = width
	s.viewportHeight = height
	s.mu.Unlock()
	return s.Save()
}
