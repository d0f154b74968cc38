//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"tinygo.org/x/drivers/touch"
)

// Screen size of the emulated panel (portrait, like the 2.8" TFT shields).
const (
	hostWidth  = 240
	hostHeight = 320
)

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	fb     *hostFramebuffer
	touch  *hostTouch
	clock  *hostClock
}

// New returns a host HAL implementation.
func New() HAL {
	return newHost(os.Stdout)
}

func newHost(w io.Writer) *hostHAL {
	logger := &hostLogger{w: w}
	return &hostHAL{
		logger: logger,
		led:    &hostLED{logger: logger},
		fb:     newHostFramebuffer(hostWidth, hostHeight),
		touch:  newHostTouch(),
		clock:  newHostClock(),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) LED() LED         { return h.led }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{t: h.touch} }
func (h *hostHAL) Clock() Clock     { return h.clock }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	t *hostTouch
}

func (in hostInput) Touch() touch.Pointer { return in.t }

func (in hostInput) Calibration() Calibration {
	return ScreenCalibration(hostWidth, hostHeight)
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// hostLED reports state changes through the logger.
type hostLED struct {
	logger *hostLogger
}

func (l *hostLED) High() { l.logger.WriteLineString("led: HIGH") }
func (l *hostLED) Low()  { l.logger.WriteLineString("led: LOW") }
