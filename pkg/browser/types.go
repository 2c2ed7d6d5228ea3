package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/spotlight/pkg/overlay"
)

// Session represents an active browser session with its associated resources.
type Session struct {
	// Name is the unique identifier for this session
	Name string

	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Context is the browser context (isolated session)
	Context playwright.BrowserContext

	// Page is the current active page
	Page playwright.Page

	// Cursor is the visible cursor overlay bound to the session's page,
	// nil when the cursor is disabled for this session
	Cursor *overlay.Controller

	// Headless indicates if the browser is running in headless mode
	Headless bool

	// CreatedAt is the timestamp when the session was created
	CreatedAt time.Time

	// LastUsedAt is the timestamp of the last operation on this session
	LastUsedAt time.Time

	// CurrentURL is the URL of the current page
	CurrentURL string
}

// SessionOptions configures a new browser session.
type SessionOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Viewport sets the initial viewport size
	Viewport *Viewport

	// Timeout sets the default timeout for operations (in milliseconds)
	Timeout float64

	// ShowCursor attaches a visible cursor overlay to the session's page
	ShowCursor bool

	// CursorColor overrides the overlay marker color (any CSS color value)
	CursorColor string
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful
	// Valid values: "load", "domcontentloaded", "networkidle"
	WaitUntil string

	// Timeout in milliseconds (0 means default)
	Timeout float64
}

// ClickOptions configures element clicking behavior.
type ClickOptions struct {
	// Selector identifies the element to click
	Selector string

	// Button specifies which mouse button to use (left, right, middle)
	Button string

	// ClickCount is the number of times to click (1 for single, 2 for double)
	ClickCount int

	// Timeout in milliseconds
	Timeout float64
}

// FillOptions configures form input filling.
type FillOptions struct {
	// Selector identifies the input element
	Selector string

	// Value is the text to fill
	Value string

	// Timeout in milliseconds
	Timeout float64
}

// WaitOptions configures waiting behavior.
type WaitOptions struct {
	// Selector to wait for
	Selector string

	// State to wait for: "attached", "detached", "visible", "hidden"
	State string

	// Timeout in milliseconds
	Timeout float64
}

// ScreenshotOptions configures page screenshots.
type ScreenshotOptions struct {
	// Path optionally writes the image to disk as well
	Path string

	// FullPage captures the whole scrollable page instead of the viewport
	FullPage bool
}

// Default values for various operations
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720
	DefaultMaxSessions    = 5
	DefaultIdleTimeout    = 300 // 5 minutes in seconds
)
