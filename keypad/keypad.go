// Package keypad implements a 3x4 touchscreen keypad: button hit-testing,
// highlight feedback, and a single-line text field that echoes key presses.
package keypad

import (
	"image/color"
	"time"

	"tftkeypad/gfx"
)

// Canvas is the drawing surface the keypad renders onto.
type Canvas interface {
	DrawBox(x, y, w, h int, border, fill color.RGBA) error
	FillRect(x, y, w, h int, c color.RGBA) error
	DrawText(t gfx.Text) error
	Flush() error
}

// Staller blocks the caller for a fixed duration. All visual feedback delays
// go through it.
type Staller interface {
	Stall(d time.Duration)
}

// StallFunc adapts a function to Staller.
type StallFunc func(time.Duration)

func (f StallFunc) Stall(d time.Duration) { f(d) }

// Text field geometry.
const (
	fieldX = 15
	fieldY = 15
	fieldW = 216
	fieldH = 35

	clearX = 16
	clearY = 16
	clearW = 214
	clearH = 33

	echoY    = 25
	echoSize = 2

	noticeX    = 65
	noticeY    = 30
	noticeSize = 1
)

const (
	HighlightHold = 100 * time.Millisecond
	ClearSettle   = 10 * time.Millisecond
	NoticeHold    = 2 * time.Second

	OverflowNotice = "Too many inputs"
)

// Palette colors.
var (
	Foreground = gfx.White
	Background = gfx.Black
	Accent     = gfx.Red
)

// Keypad owns the button registry and the text field cursor.
type Keypad struct {
	canvas Canvas
	stall  Staller

	layout Layout
	cursor Cursor
}

func New(c Canvas, s Staller) *Keypad {
	if s == nil {
		s = StallFunc(time.Sleep)
	}
	return &Keypad{
		canvas: c,
		stall:  s,
		layout: BuildLayout(),
		cursor: NewCursor(),
	}
}

func (k *Keypad) Layout() *Layout { return &k.layout }

// Cursor returns the x position of the next echoed character.
func (k *Keypad) Cursor() int { return k.cursor.X() }

// Draw rebuilds the layout and draws the text field and every button.
func (k *Keypad) Draw() error {
	k.layout = BuildLayout()
	k.cursor.Reset()

	if err := k.canvas.DrawBox(fieldX, fieldY, fieldW, fieldH, Foreground, Background); err != nil {
		return err
	}
	for i := range k.layout {
		if err := k.drawButton(i, Foreground); err != nil {
			return err
		}
	}
	return k.canvas.Flush()
}

// Locate returns the button under (x, y), or NoButton.
func (k *Keypad) Locate(x, y int) int {
	return k.layout.Locate(x, y)
}

// Highlight flashes button i. Out of range indexes are ignored.
func (k *Keypad) Highlight(i int) error {
	if i < 0 || i >= Buttons {
		return nil
	}
	return k.scoped(HighlightHold,
		func() error { return k.drawButton(i, Accent) },
		func() error { return k.drawButton(i, Foreground) },
	)
}

// Echo writes r at the cursor and advances it. When the field is already
// full the field is cleared, the overflow notice is shown, and r is dropped.
// accepted reports whether r was written.
func (k *Keypad) Echo(r rune) (accepted bool, err error) {
	if k.cursor.Full() {
		return false, k.Notice(OverflowNotice, NoticeHold)
	}
	t := gfx.Char(r, int16(k.cursor.X()), echoY, echoSize, Foreground)
	if err := k.canvas.DrawText(t); err != nil {
		return false, err
	}
	if err := k.canvas.Flush(); err != nil {
		return false, err
	}
	k.cursor.Advance()
	return true, nil
}

// ClearField blanks the text field and resets the cursor.
func (k *Keypad) ClearField() error {
	if err := k.canvas.FillRect(clearX, clearY, clearW, clearH, Background); err != nil {
		return err
	}
	if err := k.canvas.Flush(); err != nil {
		return err
	}
	k.stall.Stall(ClearSettle)
	k.cursor.Reset()
	return nil
}

// Notice clears the field, shows msg for hold, then clears the field again.
// The cursor is back at the start afterwards.
func (k *Keypad) Notice(msg string, hold time.Duration) error {
	if err := k.ClearField(); err != nil {
		return err
	}
	err := k.scoped(hold,
		func() error { return k.canvas.DrawText(gfx.String(msg, noticeX, noticeY, noticeSize, Foreground)) },
		func() error { return nil },
	)
	if err != nil {
		return err
	}
	return k.ClearField()
}

// scoped draws on, shows it for hold, then draws off. The stall is the only
// place the keypad blocks.
func (k *Keypad) scoped(hold time.Duration, on, off func() error) error {
	if err := on(); err != nil {
		return err
	}
	if err := k.canvas.Flush(); err != nil {
		return err
	}
	k.stall.Stall(hold)
	if err := off(); err != nil {
		return err
	}
	return k.canvas.Flush()
}

func (k *Keypad) drawButton(i int, c color.RGBA) error {
	r := k.layout[i]
	if err := k.canvas.DrawBox(r.XMin, r.YMin, r.Width(), r.Height(), c, Background); err != nil {
		return err
	}
	return k.canvas.DrawText(gfx.Char(r.Label, int16(r.LabelX), int16(r.LabelY), 1, c))
}
