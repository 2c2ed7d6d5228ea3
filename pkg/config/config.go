// Package config provides JSON-file-backed configuration for spotlight:
// cursor overlay settings and browser session defaults.
package config

import (
	"sync"
)

var (
	// global holds the singleton configuration instance
	global   *Config
	globalMu sync.Mutex
)

// Config bundles the configuration sections over a shared store.
type Config struct {
	store   Store
	cursor  *CursorSection
	browser *BrowserSection
}

// New creates a configuration over the given store and loads all sections.
func New(store Store) (*Config, error) {
	cfg := &Config{
		store:   store,
		cursor:  NewCursorSection(store),
		browser: NewBrowserSection(store),
	}

	if err := cfg.cursor.Load(); err != nil {
		return nil, err
	}
	if err := cfg.browser.Load(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Cursor returns the cursor overlay section.
func (c *Config) Cursor() *CursorSection {
	return c.cursor
}

// Browser returns the browser defaults section.
func (c *Config) Browser() *BrowserSection {
	return c.browser
}

// Initialize creates and initializes the global configuration.
// This should be called once at application startup.
func Initialize(configPath string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	store, err := NewFileStore(configPath)
	if err != nil {
		return err
	}

	cfg, err := New(store)
	if err != nil {
		return err
	}

	global = cfg
	return nil
}

// IsInitialized returns true if the global configuration has been initialized.
func IsInitialized() bool {
	globalMu.Lock()
	defer globalMu.Unlock()
	return global != nil
}

// GetCursor returns the cursor section from global config.
// Returns nil if config is not initialized.
func GetCursor() *CursorSection {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global == nil {
		return nil
	}
	return global.cursor
}

// GetBrowser returns the browser section from global config.
// Returns nil if config is not initialized.
func GetBrowser() *BrowserSection {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global == nil {
		return nil
	}
	return global.browser
}
