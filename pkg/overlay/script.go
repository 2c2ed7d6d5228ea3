package overlay

import "fmt"

// The injected payloads live here as Go string templates. They run inside
// the page's own scripting context via Target.Evaluate and therefore must
// stay self-contained: no globals left behind besides the marker element
// itself, and nothing that assumes a particular framework on the page.

// clickRippleFragment spawns the transient click marker. It positions at
// document coordinates (viewport position plus scroll offset) because the
// ripple is absolutely positioned, and removes itself once its animation
// has finished.
const clickRippleFragment = `
    const ripple = document.createElement('div');
    ripple.style.cssText = [
      'position: absolute',
      'left: ' + (x + window.scrollX - 10) + 'px',
      'top: ' + (y + window.scrollY - 10) + 'px',
      'width: 20px',
      'height: 20px',
      'border: 2px solid %s',
      'border-radius: 50%%',
      'opacity: 0.8',
      'transform: scale(0.5)',
      'transition: transform 450ms ease-out, opacity 450ms ease-out',
      'pointer-events: none',
      'z-index: 2147483646',
    ].join('; ');
    document.body.appendChild(ripple);
    requestAnimationFrame(() => {
      ripple.style.transform = 'scale(2.5)';
      ripple.style.opacity = '0';
    });
    setTimeout(() => ripple.remove(), 500);
`

// markerFragment ensures the persistent pointer marker exists exactly once
// and repositions it. The marker is fixed-positioned so viewport coordinates
// apply directly, and carries a 300ms left/top transition so movement is
// visible rather than instantaneous.
const markerFragment = `
    let cursor = document.getElementById(%q);
    if (!cursor) {
      cursor = document.createElement('div');
      cursor.id = %q;
      cursor.style.cssText = [
        'position: fixed',
        'left: 0px',
        'top: 0px',
        'width: 20px',
        'height: 22px',
        'transition: left 300ms ease, top 300ms ease',
        'pointer-events: none',
        'z-index: 2147483647',
      ].join('; ');
      cursor.innerHTML = '<svg width="20" height="22" viewBox="0 0 20 22" xmlns="http://www.w3.org/2000/svg">' +
        '<path d="M2 1 L2 17 L6.5 13.5 L9.5 20 L12.5 18.5 L9.5 12 L15 11.5 Z" ' +
        'fill="%s" stroke="white" stroke-width="1.5"/></svg>';
      document.documentElement.appendChild(cursor);
    }
    cursor.style.left = x + 'px';
    cursor.style.top = y + 'px';
`

// renderScript builds the draw payload. It takes a {x, y} argument object
// when evaluated. The click ripple is only present in the payload when
// requested, so navigation-triggered redraws cannot replay it by accident.
func renderScript(overlayID, color string, showClickEffect bool) string {
	script := "({ x, y }) => {"
	if showClickEffect {
		script += fmt.Sprintf(clickRippleFragment, color)
	}
	script += fmt.Sprintf(markerFragment, overlayID, overlayID, color)
	script += "}"
	return script
}

// visibilityScript toggles the persistent marker's CSS visibility. It takes
// the visibility value as its argument; an empty string restores the
// default. A missing marker is a no-op, not an error.
func visibilityScript(overlayID string) string {
	return fmt.Sprintf(`(value) => {
    const cursor = document.getElementById(%q);
    if (cursor) {
      cursor.style.visibility = value;
    }
  }`, overlayID)
}
