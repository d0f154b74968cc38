package keypad

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"tftkeypad/gfx"
)

type op struct {
	kind  string
	x, y  int
	w, h  int
	color color.RGBA
	text  gfx.Text
}

type recCanvas struct {
	ops     []op
	flushes int
	failOn  string
}

func (c *recCanvas) DrawBox(x, y, w, h int, border, fill color.RGBA) error {
	if c.failOn == "box" {
		return errors.New("box failed")
	}
	c.ops = append(c.ops, op{kind: "box", x: x, y: y, w: w, h: h, color: border})
	return nil
}

func (c *recCanvas) FillRect(x, y, w, h int, col color.RGBA) error {
	c.ops = append(c.ops, op{kind: "fill", x: x, y: y, w: w, h: h, color: col})
	return nil
}

func (c *recCanvas) DrawText(t gfx.Text) error {
	c.ops = append(c.ops, op{kind: "text", text: t, color: t.Color})
	return nil
}

func (c *recCanvas) Flush() error {
	c.flushes++
	return nil
}

func (c *recCanvas) texts() []gfx.Text {
	var out []gfx.Text
	for _, o := range c.ops {
		if o.kind == "text" {
			out = append(out, o.text)
		}
	}
	return out
}

type recStall struct {
	stalls []time.Duration
}

func (s *recStall) Stall(d time.Duration) { s.stalls = append(s.stalls, d) }

func (s *recStall) count(d time.Duration) int {
	n := 0
	for _, got := range s.stalls {
		if got == d {
			n++
		}
	}
	return n
}

func newTestKeypad() (*Keypad, *recCanvas, *recStall) {
	c := &recCanvas{}
	s := &recStall{}
	return New(c, s), c, s
}

func TestDrawRendersFieldAndButtons(t *testing.T) {
	k, c, _ := newTestKeypad()
	if err := k.Draw(); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	boxes := 0
	for _, o := range c.ops {
		if o.kind == "box" {
			boxes++
		}
	}
	if boxes != Buttons+1 {
		t.Fatalf("boxes=%d, want %d", boxes, Buttons+1)
	}
	first := c.ops[0]
	if first.kind != "box" || first.x != 15 || first.y != 15 || first.w != 216 || first.h != 35 {
		t.Fatalf("field box=%+v", first)
	}
	texts := c.texts()
	if len(texts) != Buttons {
		t.Fatalf("labels=%d", len(texts))
	}
	if texts[0].Char != '1' || texts[0].X != 35 || texts[0].Y != 85 || texts[0].Size != 1 {
		t.Fatalf("label 0=%+v", texts[0])
	}
	if texts[11].Char != 'E' || texts[11].X != 195 || texts[11].Y != 271 {
		t.Fatalf("label 11=%+v", texts[11])
	}
	if c.flushes == 0 {
		t.Fatal("Draw did not flush")
	}
	if k.Cursor() != CursorStart {
		t.Fatalf("cursor=%d", k.Cursor())
	}
}

func TestDrawPropagatesError(t *testing.T) {
	c := &recCanvas{failOn: "box"}
	k := New(c, &recStall{})
	if err := k.Draw(); err == nil {
		t.Fatal("Draw: expected error")
	}
}

func TestEchoAdvancesCursor(t *testing.T) {
	k, c, _ := newTestKeypad()
	for n := 1; n <= Capacity(); n++ {
		ok, err := k.Echo('5')
		if err != nil || !ok {
			t.Fatalf("Echo %d: ok=%v err=%v", n, ok, err)
		}
		if k.Cursor() != CursorStart+n*CursorStep {
			t.Fatalf("after %d: cursor=%d", n, k.Cursor())
		}
	}
	texts := c.texts()
	if len(texts) != Capacity() {
		t.Fatalf("echoed=%d", len(texts))
	}
	for i, tx := range texts {
		if tx.Kind != gfx.KindChar || tx.Size != 2 || tx.Y != 25 || int(tx.X) != CursorStart+i*CursorStep {
			t.Fatalf("echo %d=%+v", i, tx)
		}
	}
}

func TestEchoOverflowShowsNoticeOnce(t *testing.T) {
	k, c, s := newTestKeypad()
	for i := 0; i < Capacity(); i++ {
		if _, err := k.Echo('1'); err != nil {
			t.Fatalf("Echo: %v", err)
		}
	}
	c.ops = nil

	ok, err := k.Echo('2')
	if err != nil {
		t.Fatalf("Echo: %v", err)
	}
	if ok {
		t.Fatal("Echo past capacity: expected not accepted")
	}
	if got := s.count(NoticeHold); got != 1 {
		t.Fatalf("notice stalls=%d, want 1", got)
	}
	if k.Cursor() != CursorStart {
		t.Fatalf("cursor=%d after overflow", k.Cursor())
	}
	texts := c.texts()
	if len(texts) != 1 || texts[0].Kind != gfx.KindString || texts[0].Str != OverflowNotice {
		t.Fatalf("texts=%+v", texts)
	}
	if texts[0].X != 65 || texts[0].Y != 30 || texts[0].Size != 1 {
		t.Fatalf("notice at %+v", texts[0])
	}

	ok, err = k.Echo('3')
	if err != nil || !ok {
		t.Fatalf("Echo after overflow: ok=%v err=%v", ok, err)
	}
	if k.Cursor() != CursorStart+CursorStep {
		t.Fatalf("cursor=%d", k.Cursor())
	}
}

func TestHighlightFlashesAccent(t *testing.T) {
	k, c, s := newTestKeypad()
	if err := k.Highlight(4); err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if len(s.stalls) != 1 || s.stalls[0] != HighlightHold {
		t.Fatalf("stalls=%v", s.stalls)
	}
	if len(c.ops) != 4 {
		t.Fatalf("ops=%d, want 4", len(c.ops))
	}
	r := k.Layout()[4]
	if c.ops[0].kind != "box" || c.ops[0].x != r.XMin || c.ops[0].y != r.YMin || c.ops[0].color != Accent {
		t.Fatalf("highlight box=%+v", c.ops[0])
	}
	if c.ops[1].color != Accent || c.ops[1].text.Char != '5' {
		t.Fatalf("highlight label=%+v", c.ops[1])
	}
	if c.ops[2].color != Foreground || c.ops[3].color != Foreground {
		t.Fatalf("restore=%+v %+v", c.ops[2], c.ops[3])
	}
}

func TestHighlightOutOfRangeIsNoop(t *testing.T) {
	k, c, s := newTestKeypad()
	for _, i := range []int{NoButton, Buttons, 100} {
		if err := k.Highlight(i); err != nil {
			t.Fatalf("Highlight(%d): %v", i, err)
		}
	}
	if len(c.ops) != 0 || len(s.stalls) != 0 || c.flushes != 0 {
		t.Fatalf("ops=%d stalls=%d flushes=%d", len(c.ops), len(s.stalls), c.flushes)
	}
}

func TestClearFieldResetsCursor(t *testing.T) {
	k, c, s := newTestKeypad()
	k.Echo('7')
	k.Echo('8')
	c.ops = nil
	if err := k.ClearField(); err != nil {
		t.Fatalf("ClearField: %v", err)
	}
	if k.Cursor() != CursorStart {
		t.Fatalf("cursor=%d", k.Cursor())
	}
	if len(c.ops) != 1 {
		t.Fatalf("ops=%+v", c.ops)
	}
	f := c.ops[0]
	if f.kind != "fill" || f.x != 16 || f.y != 16 || f.w != 214 || f.h != 33 || f.color != Background {
		t.Fatalf("fill=%+v", f)
	}
	if got := s.count(ClearSettle); got != 1 {
		t.Fatalf("settle stalls=%d", got)
	}
}

func TestLocateDelegatesToLayout(t *testing.T) {
	k, _, _ := newTestKeypad()
	if got := k.Locate(40, 90); got != 0 {
		t.Fatalf("Locate(40,90)=%d", got)
	}
	if got := k.Locate(70, 70); got != NoButton {
		t.Fatalf("Locate(70,70)=%d", got)
	}
}
