package gfx

import (
	"image/color"
	"testing"

	"tftkeypad/hal"

	"tinygo.org/x/tinyfont"
)

type testFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newTestFB(w, h int) *testFB {
	return &testFB{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *testFB) Width() int              { return f.w }
func (f *testFB) Height() int             { return f.h }
func (f *testFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *testFB) StrideBytes() int        { return f.w * 2 }
func (f *testFB) Buffer() []byte          { return f.buf }
func (f *testFB) Present() error          { f.presents++; return nil }

func (f *testFB) ClearRGB(r, g, b uint8) {
	p := RGB565(color.RGBA{R: r, G: g, B: b, A: 0xFF})
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

func (f *testFB) at(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

// pixelRecorder is a drivers.Displayer that remembers every pixel set.
type pixelRecorder struct {
	px map[[2]int16]color.RGBA
}

func newPixelRecorder() *pixelRecorder {
	return &pixelRecorder{px: make(map[[2]int16]color.RGBA)}
}

func (r *pixelRecorder) Size() (x, y int16) { return 240, 320 }
func (r *pixelRecorder) Display() error     { return nil }

func (r *pixelRecorder) SetPixel(x, y int16, c color.RGBA) {
	r.px[[2]int16{x, y}] = c
}

func (r *pixelRecorder) bounds() (x0, y0, x1, y1 int16) {
	first := true
	for p := range r.px {
		if first {
			x0, y0, x1, y1 = p[0], p[1], p[0], p[1]
			first = false
			continue
		}
		x0 = min(x0, p[0])
		y0 = min(y0, p[1])
		x1 = max(x1, p[0])
		y1 = max(y1, p[1])
	}
	return
}

func TestColorConstantsRoundTrip(t *testing.T) {
	cases := []struct {
		c    color.RGBA
		want uint16
	}{
		{Black, 0x0000},
		{White, 0xFFFF},
		{Red, 0xF800},
	}
	for _, tc := range cases {
		if got := RGB565(tc.c); got != tc.want {
			t.Fatalf("RGB565(%v)=%#04x, want %#04x", tc.c, got, tc.want)
		}
	}
}

func TestFillRectangleClips(t *testing.T) {
	fb := newTestFB(10, 10)
	d := NewFrameDisplay(fb)

	if err := d.FillRectangle(-5, 8, 8, 10, White); err != nil {
		t.Fatalf("FillRectangle: %v", err)
	}
	count := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if fb.at(x, y) == 0xFFFF {
				count++
			}
		}
	}
	// x in [0,3), y in [8,10)
	if count != 6 {
		t.Fatalf("filled=%d, want 6", count)
	}
	if fb.at(2, 9) != 0xFFFF || fb.at(3, 9) != 0 {
		t.Fatal("fill edge mismatch")
	}
}

func TestDrawRectangleOutline(t *testing.T) {
	fb := newTestFB(20, 20)
	d := NewFrameDisplay(fb)

	if err := d.DrawRectangle(2, 3, 5, 4, Red); err != nil {
		t.Fatalf("DrawRectangle: %v", err)
	}
	for _, p := range [][2]int{{2, 3}, {6, 3}, {2, 6}, {6, 6}, {4, 3}, {2, 5}} {
		if fb.at(p[0], p[1]) != 0xF800 {
			t.Fatalf("pixel %v not on outline", p)
		}
	}
	if fb.at(4, 4) != 0 {
		t.Fatal("outline filled the interior")
	}
	if fb.at(7, 3) != 0 || fb.at(2, 7) != 0 {
		t.Fatal("outline drawn past its size")
	}
}

func TestPainterDrawBoxAndFlush(t *testing.T) {
	fb := newTestFB(40, 40)
	p := NewPainter(fb, nil)

	if err := p.DrawBox(5, 5, 10, 10, White, Red); err != nil {
		t.Fatalf("DrawBox: %v", err)
	}
	if fb.at(5, 5) != 0xFFFF || fb.at(14, 14) != 0xFFFF {
		t.Fatal("missing border")
	}
	if fb.at(9, 9) != 0xF800 {
		t.Fatal("missing fill")
	}
	if err := p.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if fb.presents != 1 {
		t.Fatalf("presents=%d, want 1", fb.presents)
	}
}

func TestPainterClear(t *testing.T) {
	fb := newTestFB(8, 8)
	p := NewPainter(fb, nil)
	p.Clear(Red)
	if fb.at(0, 0) != 0xF800 || fb.at(7, 7) != 0xF800 {
		t.Fatalf("pixels=%#04x %#04x, want f800", fb.at(0, 0), fb.at(7, 7))
	}
	if fb.presents != 0 {
		t.Fatal("Clear presented")
	}
}

func TestRenderDispatchesByKind(t *testing.T) {
	f := tinyfont.Fonter(DefaultFont)

	ch := newPixelRecorder()
	if err := Render(ch, f, Char('0', 20, 30, 1, White)); err != nil {
		t.Fatalf("Render(char): %v", err)
	}
	if len(ch.px) == 0 {
		t.Fatal("char drew nothing")
	}

	str := newPixelRecorder()
	if err := Render(str, f, String("00", 20, 30, 1, White)); err != nil {
		t.Fatalf("Render(string): %v", err)
	}
	if len(str.px) <= len(ch.px) {
		t.Fatalf("string pixels=%d, char pixels=%d", len(str.px), len(ch.px))
	}

	if err := Render(ch, f, Text{Kind: Kind(9)}); err == nil {
		t.Fatal("Render(unknown kind): expected error")
	}
}

func TestRenderPlacesTopLeft(t *testing.T) {
	rec := newPixelRecorder()
	if err := Render(rec, DefaultFont, Char('0', 20, 30, 1, White)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	_, y0, _, _ := rec.bounds()
	if y0 < 30 {
		t.Fatalf("glyph top=%d above text origin 30", y0)
	}
}

func TestRenderScalesPixels(t *testing.T) {
	one := newPixelRecorder()
	two := newPixelRecorder()
	if err := Render(one, DefaultFont, Char('0', 20, 25, 1, White)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if err := Render(two, DefaultFont, Char('0', 20, 25, 2, White)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(two.px) != 4*len(one.px) {
		t.Fatalf("size 2 pixels=%d, want %d", len(two.px), 4*len(one.px))
	}
	x0, y0, _, _ := two.bounds()
	if x0 < 20 || y0 < 25 {
		t.Fatalf("scaled glyph escaped its origin: (%d,%d)", x0, y0)
	}
}

func TestWidthScales(t *testing.T) {
	w1 := Width(DefaultFont, Char('0', 0, 0, 1, White))
	w2 := Width(DefaultFont, Char('0', 0, 0, 2, White))
	ws := Width(DefaultFont, String("00", 0, 0, 1, White))
	if w1 <= 0 {
		t.Fatalf("width=%d", w1)
	}
	if w2 != 2*w1 {
		t.Fatalf("size 2 width=%d, want %d", w2, 2*w1)
	}
	if ws != 2*w1 {
		t.Fatalf("string width=%d, want %d", ws, 2*w1)
	}
}

func TestKindString(t *testing.T) {
	if KindChar.String() != "char" || KindString.String() != "string" {
		t.Fatal("kind names")
	}
}
