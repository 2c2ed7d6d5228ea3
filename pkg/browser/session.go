package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/spotlight/pkg/overlay"
)

// UpdateLastUsed updates the LastUsedAt timestamp to the current time.
func (s *Session) UpdateLastUsed() {
	s.LastUsedAt = time.Now()
}

// Navigate navigates the session's page to the specified URL. The cursor
// overlay, if any, restores itself automatically once the load completes.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	s.UpdateLastUsed()

	playwrightOpts := playwright.PageGotoOptions{}

	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		playwrightOpts.WaitUntil = &waitUntil
	}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	_, err := s.Page.Goto(url, playwrightOpts)
	if err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	s.CurrentURL = s.Page.URL()
	return nil
}

// MoveMouse moves the real pointer and the visible cursor overlay to the
// given viewport coordinates.
func (s *Session) MoveMouse(x, y float64) error {
	s.UpdateLastUsed()

	if err := s.Page.Mouse().Move(x, y); err != nil {
		return fmt.Errorf("mouse move failed: %w", err)
	}
	if s.Cursor != nil {
		s.Cursor.MoveTo(x, y)
	}
	return nil
}

// Click clicks an element matching the selector. When a cursor overlay is
// attached, the visible cursor walks to the element's center first so a
// human observer or recording sees where the interaction lands.
func (s *Session) Click(opts ClickOptions) error {
	s.UpdateLastUsed()

	if opts.Selector == "" {
		return fmt.Errorf("selector is required for click")
	}

	if s.Cursor != nil {
		// Cosmetic: a missing bounding box just skips the cursor walk.
		if x, y, err := s.elementCenter(opts.Selector); err == nil {
			s.Cursor.MoveTo(x, y)
		}
	}

	playwrightOpts := playwright.PageClickOptions{}

	if opts.Button != "" {
		button := playwright.MouseButton(opts.Button)
		playwrightOpts.Button = &button
	}

	if opts.ClickCount > 0 {
		playwrightOpts.ClickCount = &opts.ClickCount
	}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if err := s.Page.Click(opts.Selector, playwrightOpts); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}

	// Update current URL in case click caused navigation
	s.CurrentURL = s.Page.URL()
	return nil
}

// ClickAt clicks at the given viewport coordinates, walking the visible
// cursor there first.
func (s *Session) ClickAt(x, y float64) error {
	s.UpdateLastUsed()

	if s.Cursor != nil {
		s.Cursor.MoveTo(x, y)
	}

	if err := s.Page.Mouse().Click(x, y); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}

	s.CurrentURL = s.Page.URL()
	return nil
}

// Fill fills an input element with the specified value, walking the visible
// cursor to the field first.
func (s *Session) Fill(opts FillOptions) error {
	s.UpdateLastUsed()

	if opts.Selector == "" {
		return fmt.Errorf("selector is required for fill")
	}

	if s.Cursor != nil {
		if x, y, err := s.elementCenter(opts.Selector); err == nil {
			s.Cursor.MoveTo(x, y)
		}
	}

	playwrightOpts := playwright.PageFillOptions{}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if err := s.Page.Fill(opts.Selector, opts.Value, playwrightOpts); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}

	return nil
}

// Wait waits for an element to reach a specific state.
func (s *Session) Wait(opts WaitOptions) error {
	s.UpdateLastUsed()

	if opts.Selector == "" {
		return fmt.Errorf("selector is required for wait")
	}

	playwrightOpts := playwright.PageWaitForSelectorOptions{}

	if opts.State != "" {
		state := playwright.WaitForSelectorState(opts.State)
		playwrightOpts.State = &state
	}

	if opts.Timeout > 0 {
		playwrightOpts.Timeout = &opts.Timeout
	}

	if _, err := s.Page.WaitForSelector(opts.Selector, playwrightOpts); err != nil {
		return fmt.Errorf("wait failed: %w", err)
	}

	return nil
}

// Screenshot captures the page, including the overlay cursor, which is the
// point of drawing one. The image bytes are returned and optionally written
// to opts.Path.
func (s *Session) Screenshot(opts ScreenshotOptions) ([]byte, error) {
	s.UpdateLastUsed()

	playwrightOpts := playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(opts.FullPage),
	}
	if opts.Path != "" {
		playwrightOpts.Path = playwright.String(opts.Path)
	}

	data, err := s.Page.Screenshot(playwrightOpts)
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return data, nil
}

// HideCursor hides the overlay cursor without forgetting its position.
// No-op when the session has no cursor.
func (s *Session) HideCursor() {
	if s.Cursor != nil {
		s.Cursor.Hide()
	}
}

// ShowCursor restores the overlay cursor's visibility.
func (s *Session) ShowCursor() {
	if s.Cursor != nil {
		s.Cursor.Show()
	}
}

// AdoptPage rebinds the session to a new page, e.g. when the automation
// flow moves into a popup or a fresh tab. The cursor overlay re-attaches to
// the new page and keeps its last position; the old page's load handler is
// dropped.
func (s *Session) AdoptPage(page playwright.Page) {
	s.UpdateLastUsed()

	s.Page = page
	s.CurrentURL = page.URL()
	if s.Cursor != nil {
		s.Cursor.Attach(overlay.NewPageTarget(page))
	}
}

// GetMetadata returns current page metadata.
func (s *Session) GetMetadata() (map[string]string, error) {
	s.UpdateLastUsed()

	title, err := s.Page.Title()
	if err != nil {
		title = ""
	}

	return map[string]string{
		"title": title,
		"url":   s.Page.URL(),
	}, nil
}

// elementCenter returns the viewport coordinates of the center of the first
// element matching the selector.
func (s *Session) elementCenter(selector string) (float64, float64, error) {
	element, err := s.Page.QuerySelector(selector)
	if err != nil {
		return 0, 0, fmt.Errorf("selector query failed: %w", err)
	}
	if element == nil {
		return 0, 0, fmt.Errorf("no element found matching selector: %s", selector)
	}

	box, err := element.BoundingBox()
	if err != nil {
		return 0, 0, fmt.Errorf("bounding box failed: %w", err)
	}
	if box == nil {
		return 0, 0, fmt.Errorf("element has no bounding box: %s", selector)
	}

	return box.X + box.Width/2, box.Y + box.Height/2, nil
}
