// Package overlay renders a synthetic cursor inside an automated page so a
// human observer or recording can follow the agent's pointer actions.
//
// The hard part is not drawing — it is staying drawn. Every navigation
// destroys all injected DOM state, and some pages actively reject script
// injection. The Controller therefore tracks the last commanded pointer
// position as its own state, re-injects the marker after every load event
// with a bounded retry loop, and degrades to log-and-continue when a page
// refuses the injection.
//
// # Lifecycle
//
// One Controller lives for the whole automation session:
//
//  1. Attach binds it to a page-like Target and subscribes re-injection
//     to the target's load event. Attach may be called again with a new
//     target (a new tab, a popup); the old target's handler is removed and
//     the last position carries over.
//  2. MoveTo records the position, draws the marker with a transient click
//     ripple, and waits out the 300ms position transition.
//  3. Hide and Show toggle visibility without destroying the marker.
//
// # Failure policy
//
// No error from this package ever reaches the caller. Injection failures
// and retry exhaustion are reported through the trace logger only; the
// marker simply does not appear, and the automation flow continues.
//
// # Example
//
//	cursor := overlay.NewController(overlay.Options{Logger: logger})
//	cursor.Attach(overlay.NewPageTarget(page))
//	cursor.MoveTo(100, 200)
//	cursor.Hide()
package overlay
