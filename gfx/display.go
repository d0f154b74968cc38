package gfx

import (
	"image/color"

	"tftkeypad/hal"
)

// FrameDisplay adapts a hal.Framebuffer to the drivers.Displayer interface.
// Drawing outside the framebuffer is clipped.
type FrameDisplay struct {
	fb hal.Framebuffer
}

func NewFrameDisplay(fb hal.Framebuffer) *FrameDisplay {
	return &FrameDisplay{fb: fb}
}

func (d *FrameDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *FrameDisplay) SetPixel(x, y int16, c color.RGBA) {
	buf := d.buffer()
	if buf == nil {
		return
	}

	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}

	pixel := RGB565(c)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *FrameDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *FrameDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	buf := d.buffer()
	if buf == nil {
		return nil
	}

	w := d.fb.Width()
	h := d.fb.Height()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := RGB565(c)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

// DrawRectangle draws a 1px outline covering [x, x+width) x [y, y+height).
func (d *FrameDisplay) DrawRectangle(x, y, width, height int16, c color.RGBA) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if err := d.FillRectangle(x, y, width, 1, c); err != nil {
		return err
	}
	if err := d.FillRectangle(x, y+height-1, width, 1, c); err != nil {
		return err
	}
	if err := d.FillRectangle(x, y, 1, height, c); err != nil {
		return err
	}
	return d.FillRectangle(x+width-1, y, 1, height, c)
}

// Clear fills the whole framebuffer.
func (d *FrameDisplay) Clear(c color.RGBA) {
	if d.fb == nil {
		return
	}
	d.fb.ClearRGB(c.R, c.G, c.B)
}

func (d *FrameDisplay) buffer() []byte {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	return d.fb.Buffer()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
