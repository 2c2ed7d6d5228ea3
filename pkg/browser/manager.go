package browser

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/spotlight/pkg/config"
	"github.com/entrhq/spotlight/pkg/log"
	"github.com/entrhq/spotlight/pkg/overlay"
)

// Logger is the diagnostics surface the session manager needs. Both the
// console logger (pkg/log) and the session-file logger (pkg/logging)
// satisfy it.
type Logger interface {
	Verbosef(format string, args ...interface{})
	Tracef(format string, args ...interface{})
}

// SessionManager owns the Playwright runtime and all active browser
// sessions. Each session with the cursor enabled gets its own overlay
// controller attached at creation time.
type SessionManager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	playwright  *playwright.Playwright
	maxSessions int
	idleTimeout time.Duration
	initialized bool
	logger      Logger
}

// NewSessionManager creates a new session manager. A nil logger falls back
// to a normal-level console logger.
func NewSessionManager(logger Logger) *SessionManager {
	if logger == nil {
		logger = log.NewLogger(log.LevelNormal)
	}

	return &SessionManager{
		sessions:    make(map[string]*Session),
		maxSessions: DefaultMaxSessions,
		idleTimeout: time.Duration(DefaultIdleTimeout) * time.Second,
		logger:      logger,
	}
}

// Initialize installs and starts the Playwright runtime.
// This must be called before creating any sessions.
func (m *SessionManager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	// Discard driver output so it does not interleave with our own logging
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	m.playwright = pw
	m.initialized = true
	return nil
}

// DefaultSessionOptions builds session options from global config, falling
// back to package defaults when config is not initialized.
func DefaultSessionOptions() SessionOptions {
	opts := SessionOptions{
		Viewport:   &Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight},
		Timeout:    DefaultTimeout,
		ShowCursor: true,
	}

	if browser := config.GetBrowser(); browser != nil {
		opts.Headless = browser.Headless()
		w, h := browser.Viewport()
		opts.Viewport = &Viewport{Width: w, Height: h}
	}
	if cursor := config.GetCursor(); cursor != nil {
		opts.ShowCursor = cursor.Enabled()
		opts.CursorColor = cursor.Color()
	}

	return opts
}

// StartSession creates a new browser session with the given name and options.
func (m *SessionManager) StartSession(name string, opts SessionOptions) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[name]; exists {
		return nil, fmt.Errorf("session %q already exists", name)
	}

	if len(m.sessions) >= m.maxSessions {
		return nil, fmt.Errorf("maximum number of sessions (%d) reached", m.maxSessions)
	}

	if !m.initialized {
		return nil, fmt.Errorf("session manager not initialized")
	}

	if opts.Viewport == nil {
		opts.Viewport = &Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		}
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
	}
	browser, err := m.playwright.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
	}
	context, err := browser.NewContext(contextOpts)
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	page.SetDefaultTimeout(opts.Timeout)

	now := time.Now()
	session := &Session{
		Name:       name,
		Browser:    browser,
		Context:    context,
		Page:       page,
		Headless:   opts.Headless,
		CreatedAt:  now,
		LastUsedAt: now,
		CurrentURL: "about:blank",
	}

	if opts.ShowCursor {
		cursor := overlay.NewController(overlay.Options{
			Color:  opts.CursorColor,
			Logger: m.logger,
		})
		cursor.Attach(overlay.NewPageTarget(page))
		session.Cursor = cursor
		m.logger.Verbosef("session %q: cursor overlay attached", name)
	}

	m.sessions[name] = session
	m.logger.Verbosef("session %q: started (headless=%v)", name, opts.Headless)
	return session, nil
}

// CloseSession closes and removes a browser session.
func (m *SessionManager) CloseSession(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[name]; !exists {
		return fmt.Errorf("session %q not found", name)
	}
	return m.closeLocked(name)
}

// closeLocked tears down one session's Playwright resources. Close errors
// are collected rather than aborting cleanup midway. Callers must hold m.mu.
func (m *SessionManager) closeLocked(name string) error {
	session := m.sessions[name]

	var errs []error
	if err := session.Page.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := session.Context.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := session.Browser.Close(); err != nil {
		errs = append(errs, err)
	}

	delete(m.sessions, name)
	m.logger.Verbosef("session %q: closed", name)

	if len(errs) > 0 {
		return fmt.Errorf("errors closing session %q: %v", name, errs)
	}
	return nil
}

// GetSession retrieves an active session by name.
func (m *SessionManager) GetSession(name string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[name]
	if !exists {
		return nil, fmt.Errorf("session %q not found", name)
	}

	return session, nil
}

// ListSessions returns information about all active sessions.
func (m *SessionManager) ListSessions() []SessionInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]SessionInfo, 0, len(m.sessions))
	for _, session := range m.sessions {
		infos = append(infos, SessionInfo{
			Name:       session.Name,
			CurrentURL: session.CurrentURL,
			Headless:   session.Headless,
			HasCursor:  session.Cursor != nil,
			CreatedAt:  session.CreatedAt,
			LastUsedAt: session.LastUsedAt,
		})
	}

	return infos
}

// HasSessions returns true if there are any active sessions.
func (m *SessionManager) HasSessions() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions) > 0
}

// CloseAll closes all active sessions.
func (m *SessionManager) CloseAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for name := range m.sessions {
		if err := m.closeLocked(name); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing sessions: %v", errs)
	}
	return nil
}

// Shutdown closes all sessions and stops the Playwright runtime.
func (m *SessionManager) Shutdown() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name := range m.sessions {
		// Teardown errors are irrelevant during shutdown
		_ = m.closeLocked(name)
	}

	if m.initialized && m.playwright != nil {
		if err := m.playwright.Stop(); err != nil {
			return fmt.Errorf("failed to stop playwright: %w", err)
		}
		m.initialized = false
	}

	return nil
}

// CleanupIdleSessions closes sessions that have been idle for longer than
// the timeout.
func (m *SessionManager) CleanupIdleSessions() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	var toClose []string

	for name, session := range m.sessions {
		if now.Sub(session.LastUsedAt) > m.idleTimeout {
			toClose = append(toClose, name)
		}
	}

	var errs []error
	for _, name := range toClose {
		if err := m.closeLocked(name); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during cleanup: %v", errs)
	}
	return nil
}

// SetMaxSessions sets the maximum number of concurrent sessions.
func (m *SessionManager) SetMaxSessions(max int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxSessions = max
}

// SetIdleTimeout sets the idle timeout duration.
func (m *SessionManager) SetIdleTimeout(timeout time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.idleTimeout = timeout
}

// SessionInfo contains metadata about a browser session.
type SessionInfo struct {
	Name       string
	CurrentURL string
	Headless   bool
	HasCursor  bool
	CreatedAt  time.Time
	LastUsedAt time.Time
}
