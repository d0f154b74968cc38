package gfx

import (
	"image/color"

	"tftkeypad/hal"

	"tinygo.org/x/tinyfont"
)

// Painter draws boxes and text onto a framebuffer.
type Painter struct {
	d    *FrameDisplay
	font tinyfont.Fonter
}

// NewPainter returns a Painter using font f, or DefaultFont when f is nil.
func NewPainter(fb hal.Framebuffer, f tinyfont.Fonter) *Painter {
	if f == nil {
		f = DefaultFont
	}
	return &Painter{d: NewFrameDisplay(fb), font: f}
}

// DrawBox fills a w x h box at (x, y) and outlines it.
func (p *Painter) DrawBox(x, y, w, h int, border, fill color.RGBA) error {
	if err := p.d.FillRectangle(int16(x), int16(y), int16(w), int16(h), fill); err != nil {
		return err
	}
	return p.d.DrawRectangle(int16(x), int16(y), int16(w), int16(h), border)
}

func (p *Painter) FillRect(x, y, w, h int, c color.RGBA) error {
	return p.d.FillRectangle(int16(x), int16(y), int16(w), int16(h), c)
}

func (p *Painter) DrawText(t Text) error {
	return Render(p.d, p.font, t)
}

func (p *Painter) Clear(c color.RGBA) { p.d.Clear(c) }

// Flush makes everything drawn so far visible.
func (p *Painter) Flush() error { return p.d.Display() }
