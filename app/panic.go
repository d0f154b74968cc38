package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"tftkeypad/gfx"
	"tftkeypad/hal"

	"tinygo.org/x/tinyfont"
)

// recoverPanic turns a panic inside a step into a panic screen and an error.
func (l *lock) recoverPanic(err *error) {
	v := recover()
	if v == nil {
		return
	}
	stack := debug.Stack()

	l.logf("app: panic: %v", v)
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		l.logf("%s", line)
	}

	drawPanicScreen(l.fb, v, stack)
	*err = fmt.Errorf("app: panic: %v", v)
}

func drawPanicScreen(fb hal.Framebuffer, v any, stack []byte) {
	if fb == nil {
		return
	}
	d := gfx.NewFrameDisplay(fb)
	d.Clear(gfx.White)

	font := gfx.DefaultFont
	fontHeight := int16(12)
	fontOffset := gfx.Ascent(font)
	fontWidth := gfx.Width(font, gfx.Char('0', 0, 0, 1, gfx.Black))
	if fontWidth <= 0 {
		_ = d.Display()
		return
	}

	lines := []string{
		"Keypad Panic:",
		fmt.Sprintf("panic: %v", v),
	}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, strings.TrimSpace(line))
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	maxW, maxH := d.Size()
	cols := maxW / fontWidth
	if cols <= 0 {
		cols = 1
	}

	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+fontHeight > maxH {
				_ = d.Display()
				return
			}
			chunk, rest := takeRunes(line, cols)
			x := int16(0)
			for _, r := range chunk {
				tinyfont.DrawChar(d, font, x, y+fontOffset, r, gfx.Black)
				x += fontWidth
			}
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = d.Display()
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
