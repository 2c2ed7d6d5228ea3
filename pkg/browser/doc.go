// Package browser provides Playwright browser sessions with a visible
// cursor overlay, so an automated agent's pointer actions can be followed
// by a human observer or captured in recordings.
//
// The package is built around three core concepts:
//
//  1. Session: a Playwright browser instance with its context and page,
//     plus an optional overlay.Controller drawing the synthetic cursor
//  2. SessionManager: registry owning the Playwright runtime and all
//     active named sessions
//  3. Cursor-aware operations: Click, Fill, MoveMouse and ClickAt walk the
//     visible cursor to the interaction point before acting
//
// # Session Lifecycle
//
//  1. Create: StartSession creates a named session; when ShowCursor is set
//     an overlay controller is attached to the page
//  2. Use: navigation, interaction, and screenshot operations act on the
//     session; the cursor overlay survives navigations on its own
//  3. Close: CloseSession tears down the Playwright resources
//  4. Timeout: CleanupIdleSessions reaps sessions past the idle timeout
//
// The overlay is strictly cosmetic: pages that reject script injection
// (strict CSP, sandboxed frames) log a trace diagnostic and the session
// keeps working without a visible cursor.
//
// # Example Usage
//
//	manager := browser.NewSessionManager(logger)
//	if err := manager.Initialize(); err != nil {
//	    return err
//	}
//	defer manager.Shutdown()
//
//	session, err := manager.StartSession("demo", browser.SessionOptions{
//	    ShowCursor: true,
//	    Viewport:   &browser.Viewport{Width: 1280, Height: 720},
//	})
//
//	err = session.Navigate("https://example.com", browser.NavigateOptions{
//	    WaitUntil: "load",
//	})
//	err = session.MoveMouse(200, 300)
//	err = session.Click(browser.ClickOptions{Selector: "a"})
//	_, err = session.Screenshot(browser.ScreenshotOptions{Path: "out.png"})
package browser
