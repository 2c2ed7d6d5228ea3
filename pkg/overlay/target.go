package overlay

import (
	"github.com/playwright-community/playwright-go"
)

// Target is the minimal page surface the controller needs: notification
// when a navigation completes, script execution inside the page, and a
// fixed-duration pause.
type Target interface {
	// OnLoad registers handler to run every time a navigation completes
	// (including same-page reloads) and returns a function that removes
	// the registration.
	OnLoad(handler func()) (unsubscribe func())

	// Evaluate runs a JavaScript expression inside the page with a
	// serializable argument and returns its result or thrown error.
	Evaluate(expression string, arg interface{}) (interface{}, error)

	// WaitForTimeout suspends the caller for the given number of
	// milliseconds.
	WaitForTimeout(timeout float64)
}

// PageTarget adapts a Playwright page to the Target interface.
type PageTarget struct {
	page playwright.Page
}

// NewPageTarget wraps a Playwright page as an overlay target.
func NewPageTarget(page playwright.Page) *PageTarget {
	return &PageTarget{page: page}
}

// OnLoad subscribes handler to the page's load event. The returned function
// removes exactly this subscription and leaves any others in place.
func (t *PageTarget) OnLoad(handler func()) func() {
	wrapped := func(playwright.Page) {
		handler()
	}
	t.page.On("load", wrapped)
	return func() {
		t.page.RemoveListener("load", wrapped)
	}
}

// Evaluate executes the expression in the page's scripting context.
func (t *PageTarget) Evaluate(expression string, arg interface{}) (interface{}, error) {
	if arg == nil {
		return t.page.Evaluate(expression)
	}
	return t.page.Evaluate(expression, arg)
}

// WaitForTimeout suspends for the given number of milliseconds.
func (t *PageTarget) WaitForTimeout(timeout float64) {
	t.page.WaitForTimeout(timeout)
}

// Page returns the underlying Playwright page.
func (t *PageTarget) Page() playwright.Page {
	return t.page
}
