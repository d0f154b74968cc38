package hal

import (
	"time"

	"tinygo.org/x/drivers/touch"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
//
// The keypad application drives it as the lock output: high while unlocked.
type LED interface {
	High()
	Low()
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
//
// Pixels are stored little-endian. Present makes the current contents visible.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to the touch panel (if available).
//
// Touch returns raw panel samples; Calibration maps them to screen pixels.
type Input interface {
	Touch() touch.Pointer
	Calibration() Calibration
}

// Clock provides time and cooperative stalls.
//
// Stall blocks the caller; it is used for short visual feedback only.
type Clock interface {
	Now() time.Time
	Stall(d time.Duration)
}

// HAL provides the only contact point between the keypad and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Display() Display
	Input() Input
	Clock() Clock
}
