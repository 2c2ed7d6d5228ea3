package overlay

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/entrhq/spotlight/pkg/retry"
)

// Logger receives trace-level diagnostics from the controller. The overlay
// is cosmetic, so injection failures are reported here and nowhere else.
type Logger interface {
	Tracef(format string, args ...interface{})
}

// nopLogger discards all diagnostics.
type nopLogger struct{}

func (nopLogger) Tracef(format string, args ...interface{}) {}

// Position is a viewport-relative cursor position in CSS pixels.
type Position struct {
	X float64
	Y float64
}

const (
	// DefaultOverlayID is the DOM id of the persistent pointer marker.
	DefaultOverlayID = "spotlight-cursor"

	// DefaultColor is the marker fill color.
	DefaultColor = "#e8457c"

	// Initial injection happens while the page is already interactive, so a
	// short attempt budget suffices. A navigation can land on a document
	// that stays non-scriptable for longer, hence the larger reinject
	// budget.
	attachAttempts   = 5
	reinjectAttempts = 10
	retryDelay       = 200 * time.Millisecond

	// moveSettle matches the marker's CSS position transition. Evaluate
	// returns when the script finishes, not when the transition does, so
	// MoveTo waits this long before returning.
	moveSettle = 300 * time.Millisecond
)

// Options configures a new Controller.
type Options struct {
	// OverlayID overrides the DOM id of the marker element.
	OverlayID string

	// Color is the CSS color of the marker and click ripple.
	Color string

	// Logger receives trace diagnostics. Nil discards them.
	Logger Logger
}

// Controller draws a synthetic cursor inside a page and keeps it alive
// across navigations, which destroy all injected DOM state. Every method
// fails silently: the overlay exists so a human can follow the automation,
// and a page that rejects script injection must never break the session.
//
// The host driver is expected to serialize calls. The load-event handler
// runs concurrently with host calls from the controller's point of view;
// lastPos uses last-write-wins, and the worst outcome is a stale redraw
// that the next MoveTo corrects.
type Controller struct {
	mu          sync.Mutex
	target      Target
	unsubscribe func()
	lastPos     *Position

	overlayID string
	color     string
	logger    Logger
}

// NewController creates a controller. It draws nothing until Attach binds
// it to a target and MoveTo commands a position.
func NewController(opts Options) *Controller {
	if opts.OverlayID == "" {
		opts.OverlayID = DefaultOverlayID
	}
	if opts.Color == "" {
		opts.Color = DefaultColor
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}

	return &Controller{
		overlayID: opts.OverlayID,
		color:     opts.Color,
		logger:    opts.Logger,
	}
}

// Attach binds the controller to a page-like target. The previous target's
// load handler is removed first, so only the current target ever triggers a
// re-injection. Attach then subscribes re-injection to the new target's
// load event and performs an initial injection attempt. The last commanded
// position survives the swap.
func (c *Controller) Attach(target Target) {
	c.mu.Lock()
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.target = target
	c.unsubscribe = target.OnLoad(c.handleLoad)
	c.mu.Unlock()

	ok := retry.Try(context.Background(), attachAttempts, retryDelay, func(ctx context.Context) error {
		return c.reinject()
	})
	if !ok {
		c.logger.Tracef("overlay: initial injection failed after %d attempts", attachAttempts)
	}
}

// handleLoad redraws the overlay after a navigation wiped it out.
func (c *Controller) handleLoad() {
	ok := retry.Try(context.Background(), reinjectAttempts, retryDelay, func(ctx context.Context) error {
		return c.reinject()
	})
	if !ok {
		c.logger.Tracef("overlay: re-injection failed after %d attempts", reinjectAttempts)
	}
}

// reinject redraws the marker at the last commanded position. Navigation
// redraws never replay the click ripple; only an explicit MoveTo does. With
// no commanded position yet there is nothing to restore.
func (c *Controller) reinject() error {
	c.mu.Lock()
	target, pos := c.target, c.lastPos
	c.mu.Unlock()

	if target == nil || pos == nil {
		return nil
	}
	return c.draw(target, *pos, false)
}

// MoveTo slides the marker to viewport coordinates (x, y) with the click
// ripple, then waits out the position transition so the marker has visually
// arrived before the caller takes a screenshot or acts next. Coordinates
// are drawn as given; there is no bounds check.
//
// The position is recorded before drawing: a navigation racing this call
// must redraw at the new position even if the draw itself never lands.
func (c *Controller) MoveTo(x, y float64) {
	c.mu.Lock()
	c.lastPos = &Position{X: x, Y: y}
	target := c.target
	c.mu.Unlock()

	if target == nil {
		return
	}

	if err := c.draw(target, Position{X: x, Y: y}, true); err != nil {
		c.logger.Tracef("overlay: %v", err)
	}
	target.WaitForTimeout(float64(moveSettle.Milliseconds()))
}

// Hide makes the marker invisible without destroying it or forgetting the
// last position. A missing marker is a silent no-op.
func (c *Controller) Hide() {
	c.setVisibility("hidden")
}

// Show restores the marker's default visibility.
func (c *Controller) Show() {
	c.setVisibility("")
}

// LastPosition returns a copy of the most recently commanded position, or
// nil if MoveTo has not been called yet.
func (c *Controller) LastPosition() *Position {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lastPos == nil {
		return nil
	}
	pos := *c.lastPos
	return &pos
}

func (c *Controller) draw(target Target, pos Position, showClickEffect bool) error {
	script := renderScript(c.overlayID, c.color, showClickEffect)
	arg := map[string]interface{}{"x": pos.X, "y": pos.Y}

	if _, err := target.Evaluate(script, arg); err != nil {
		return fmt.Errorf("draw at (%v, %v) failed: %w", pos.X, pos.Y, err)
	}
	return nil
}

func (c *Controller) setVisibility(value string) {
	c.mu.Lock()
	target := c.target
	c.mu.Unlock()

	if target == nil {
		return
	}

	if _, err := target.Evaluate(visibilityScript(c.overlayID), value); err != nil {
		c.logger.Tracef("overlay: visibility update failed: %v", err)
	}
}
