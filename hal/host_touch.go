//go:build !tinygo

package hal

import (
	"sync"

	"tinygo.org/x/drivers/touch"
)

// hostPressure is reported as Z while the pointer is down.
const hostPressure = 255

// hostTouch reports pointer state in framebuffer pixels. The window backend
// updates it from the mouse; headless runs feed it from a tap script.
type hostTouch struct {
	mu     sync.Mutex
	p      touch.Point
	script []touch.Point
}

func newHostTouch() *hostTouch { return &hostTouch{} }

func (t *hostTouch) ReadTouchPoint() touch.Point {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.p
}

func (t *hostTouch) set(p touch.Point) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.p = p
}

// queueTap scripts a press at (x, y) held for hold samples, followed by a
// release of the same length.
func (t *hostTouch) queueTap(x, y, hold int) {
	if hold <= 0 {
		hold = 1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := 0; i < hold; i++ {
		t.script = append(t.script, touch.Point{X: x, Y: y, Z: hostPressure})
	}
	for i := 0; i < hold; i++ {
		t.script = append(t.script, touch.Point{})
	}
}

// advance moves to the next scripted sample. It reports false once the
// script is exhausted, leaving the pointer released.
func (t *hostTouch) advance() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.script) == 0 {
		return false
	}
	t.p = t.script[0]
	t.script = t.script[1:]
	return true
}
