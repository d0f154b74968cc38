package gfx

import (
	"fmt"
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// DefaultFont is used when a Painter is created without a font.
var DefaultFont tinyfont.Fonter = &proggy.TinySZ8pt7b

// Kind selects how a Text is rendered.
type Kind uint8

const (
	KindString Kind = iota
	KindChar
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindChar:
		return "char"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Text is a string or a single character placed on screen.
//
// X, Y is the top-left corner. Size scales every font pixel to a Size x Size
// block, so size 2 text is twice as wide and tall as size 1.
type Text struct {
	Kind  Kind
	Str   string
	Char  rune
	X, Y  int16
	Size  uint8
	Color color.RGBA
}

func String(s string, x, y int16, size uint8, c color.RGBA) Text {
	return Text{Kind: KindString, Str: s, X: x, Y: y, Size: size, Color: c}
}

func Char(r rune, x, y int16, size uint8, c color.RGBA) Text {
	return Text{Kind: KindChar, Char: r, X: x, Y: y, Size: size, Color: c}
}

func (t Text) scale() int16 {
	if t.Size == 0 {
		return 1
	}
	return int16(t.Size)
}

type renderFunc func(d drivers.Displayer, f tinyfont.Fonter, baseline int16, t Text)

var renderers = [...]renderFunc{
	KindString: renderString,
	KindChar:   renderChar,
}

// Render draws t onto d using font f.
func Render(d drivers.Displayer, f tinyfont.Fonter, t Text) error {
	if int(t.Kind) >= len(renderers) {
		return fmt.Errorf("render text: unknown %s", t.Kind)
	}
	sd := scaledDisplay{d: d, ox: t.X, oy: t.Y, n: t.scale()}
	renderers[t.Kind](sd, f, t.Y+Ascent(f), t)
	return nil
}

func renderString(d drivers.Displayer, f tinyfont.Fonter, baseline int16, t Text) {
	tinyfont.WriteLine(d, f, t.X, baseline, t.Str, t.Color)
}

func renderChar(d drivers.Displayer, f tinyfont.Fonter, baseline int16, t Text) {
	tinyfont.DrawChar(d, f, t.X, baseline, t.Char, t.Color)
}

// Ascent is the distance from the top of a digit glyph to the baseline.
func Ascent(f tinyfont.Fonter) int16 {
	off := int16(f.GetGlyph('0').Info().YOffset)
	if off >= 0 {
		return int16(f.GetYAdvance())
	}
	return -off
}

// Width returns the rendered width of t in pixels.
func Width(f tinyfont.Fonter, t Text) int16 {
	var outbox uint32
	switch t.Kind {
	case KindChar:
		_, outbox = tinyfont.LineWidth(f, string(t.Char))
	default:
		_, outbox = tinyfont.LineWidth(f, t.Str)
	}
	return int16(outbox) * t.scale()
}

// scaledDisplay magnifies pixels around (ox, oy).
type scaledDisplay struct {
	d      drivers.Displayer
	ox, oy int16
	n      int16
}

func (s scaledDisplay) Size() (x, y int16) { return s.d.Size() }

func (s scaledDisplay) SetPixel(x, y int16, c color.RGBA) {
	if s.n <= 1 {
		s.d.SetPixel(x, y, c)
		return
	}
	bx := s.ox + (x-s.ox)*s.n
	by := s.oy + (y-s.oy)*s.n
	for j := int16(0); j < s.n; j++ {
		for i := int16(0); i < s.n; i++ {
			s.d.SetPixel(bx+i, by+j, c)
		}
	}
}

func (s scaledDisplay) Display() error { return s.d.Display() }
