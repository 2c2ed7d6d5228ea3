package overlay

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type evalCall struct {
	script string
	arg    interface{}
}

// fakeTarget is an in-memory Target that records every interaction and can
// be switched into a failing mode, standing in for a page whose security
// policy rejects script injection.
type fakeTarget struct {
	mu       sync.Mutex
	handlers []func()
	calls    []evalCall
	waits    []float64
	failWith error
}

func (f *fakeTarget) OnLoad(handler func()) func() {
	f.mu.Lock()
	idx := len(f.handlers)
	f.handlers = append(f.handlers, handler)
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		f.handlers[idx] = nil
		f.mu.Unlock()
	}
}

func (f *fakeTarget) Evaluate(expression string, arg interface{}) (interface{}, error) {
	f.mu.Lock()
	f.calls = append(f.calls, evalCall{script: expression, arg: arg})
	err := f.failWith
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *fakeTarget) WaitForTimeout(timeout float64) {
	f.mu.Lock()
	f.waits = append(f.waits, timeout)
	f.mu.Unlock()
}

// fireLoad simulates a completed navigation.
func (f *fakeTarget) fireLoad() {
	f.mu.Lock()
	handlers := append([]func(){}, f.handlers...)
	f.mu.Unlock()

	for _, h := range handlers {
		if h != nil {
			h()
		}
	}
}

func (f *fakeTarget) setFail(err error) {
	f.mu.Lock()
	f.failWith = err
	f.mu.Unlock()
}

func (f *fakeTarget) evalCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeTarget) lastCall() evalCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func (f *fakeTarget) activeHandlers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, h := range f.handlers {
		if h != nil {
			n++
		}
	}
	return n
}

// traceRecorder captures trace lines so tests can assert on the logged
// outcome rather than on the absence of a crash.
type traceRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *traceRecorder) Tracef(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func (r *traceRecorder) joined() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.lines, "\n")
}

func coords(t *testing.T, call evalCall) (float64, float64) {
	t.Helper()
	arg, ok := call.arg.(map[string]interface{})
	require.True(t, ok, "draw argument should be a coordinate object")
	return arg["x"].(float64), arg["y"].(float64)
}

func TestMoveToRecordsLastPosition(t *testing.T) {
	c := NewController(Options{})
	target := &fakeTarget{}
	c.Attach(target)

	moves := []Position{{X: 10, Y: 20}, {X: 30, Y: 40}, {X: 5, Y: 5}}
	for _, m := range moves {
		c.MoveTo(m.X, m.Y)
	}

	pos := c.LastPosition()
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 5, Y: 5}, *pos)
}

func TestMoveToBeforeAttachOnlyRecords(t *testing.T) {
	c := NewController(Options{})
	c.MoveTo(42, 24)

	pos := c.LastPosition()
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 42, Y: 24}, *pos)
}

func TestMoveToDrawsWithClickEffectAndWaitsOutTransition(t *testing.T) {
	c := NewController(Options{})
	target := &fakeTarget{}
	c.Attach(target)

	c.MoveTo(100, 200)

	require.Equal(t, 1, target.evalCount())
	call := target.lastCall()
	assert.Contains(t, call.script, "ripple")
	x, y := coords(t, call)
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 200.0, y)
	assert.Equal(t, []float64{300}, target.waits)
}

func TestReinjectWithoutPriorMoveIsNoOp(t *testing.T) {
	c := NewController(Options{})
	target := &fakeTarget{}
	c.Attach(target)

	// No MoveTo yet: neither the attach-time injection nor a navigation
	// redraw has anything to restore.
	assert.Equal(t, 0, target.evalCount())

	target.fireLoad()
	assert.Equal(t, 0, target.evalCount())
}

func TestReinjectDrawsAtLastPositionWithoutClickEffect(t *testing.T) {
	c := NewController(Options{})
	target := &fakeTarget{}
	c.Attach(target)
	c.MoveTo(100, 200)

	before := target.evalCount()
	target.fireLoad()
	target.fireLoad()

	require.Equal(t, before+2, target.evalCount())
	call := target.lastCall()
	assert.NotContains(t, call.script, "ripple")
	x, y := coords(t, call)
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 200.0, y)
}

func TestMoveToRecordsPositionEvenWhenDrawFails(t *testing.T) {
	logs := &traceRecorder{}
	c := NewController(Options{Logger: logs})
	target := &fakeTarget{failWith: fmt.Errorf("Evaluation failed: blocked by CSP")}
	c.Attach(target)

	c.MoveTo(50, 50)

	pos := c.LastPosition()
	require.NotNil(t, pos)
	assert.Equal(t, Position{X: 50, Y: 50}, *pos)

	// MoveTo has no retry budget: one attempt, one trace line, and the
	// settle wait still happens.
	assert.Equal(t, 1, target.evalCount())
	assert.Contains(t, logs.joined(), "blocked by CSP")
	assert.Equal(t, []float64{300}, target.waits)
}

func TestAttachInjectionRetriesAreBounded(t *testing.T) {
	logs := &traceRecorder{}
	c := NewController(Options{Logger: logs})
	c.MoveTo(10, 10) // position on record so the attach-time injection has work to do

	target := &fakeTarget{failWith: fmt.Errorf("injection rejected")}
	c.Attach(target)

	assert.Equal(t, 5, target.evalCount())
	assert.Contains(t, logs.joined(), "initial injection failed after 5 attempts")
}

func TestNavigationReinjectRetriesAreBounded(t *testing.T) {
	logs := &traceRecorder{}
	c := NewController(Options{Logger: logs})
	target := &fakeTarget{}
	c.Attach(target)
	c.MoveTo(1, 2)

	before := target.evalCount()
	target.setFail(fmt.Errorf("injection rejected"))
	target.fireLoad()

	assert.Equal(t, before+10, target.evalCount())
	assert.Contains(t, logs.joined(), "re-injection failed after 10 attempts")
}

func TestHideAndShowToggleVisibility(t *testing.T) {
	c := NewController(Options{})
	target := &fakeTarget{}
	c.Attach(target)

	c.Hide()
	call := target.lastCall()
	assert.Contains(t, call.script, "visibility")
	assert.Equal(t, "hidden", call.arg)

	c.Show()
	call = target.lastCall()
	assert.Contains(t, call.script, "visibility")
	assert.Equal(t, "", call.arg)

	// Visibility toggles never touch the recorded position and never
	// trigger a redraw.
	assert.Nil(t, c.LastPosition())
	assert.Equal(t, 2, target.evalCount())
}

func TestHideSwallowsExecutionFailure(t *testing.T) {
	logs := &traceRecorder{}
	c := NewController(Options{Logger: logs})
	target := &fakeTarget{failWith: fmt.Errorf("target closed")}
	c.Attach(target)

	c.Hide()
	c.Show()

	assert.Contains(t, logs.joined(), "visibility update failed")
	assert.Nil(t, c.LastPosition())
}

func TestReattachMovesLoadSubscription(t *testing.T) {
	c := NewController(Options{})
	first := &fakeTarget{}
	c.Attach(first)
	c.MoveTo(100, 200)

	second := &fakeTarget{}
	c.Attach(second)

	// Re-attach removed the first target's handler and re-injected on the
	// second at the preserved position.
	assert.Equal(t, 0, first.activeHandlers())
	require.Equal(t, 1, second.evalCount())
	call := second.lastCall()
	assert.NotContains(t, call.script, "ripple")
	x, y := coords(t, call)
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 200.0, y)

	// A late load on the discarded target must not reach the controller.
	firstEvals := first.evalCount()
	first.fireLoad()
	assert.Equal(t, firstEvals, first.evalCount())

	// The current target's navigations still do.
	second.fireLoad()
	assert.Equal(t, 2, second.evalCount())
}

func TestRenderScriptIncludesRippleOnlyOnClick(t *testing.T) {
	withClick := renderScript(DefaultOverlayID, DefaultColor, true)
	withoutClick := renderScript(DefaultOverlayID, DefaultColor, false)

	assert.Contains(t, withClick, "ripple")
	assert.NotContains(t, withoutClick, "ripple")

	// Both flavors ensure the persistent marker exists and reposition it.
	for _, script := range []string{withClick, withoutClick} {
		assert.Contains(t, script, DefaultOverlayID)
		assert.Contains(t, script, "transition: left 300ms ease, top 300ms ease")
	}
}
