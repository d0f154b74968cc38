package hal

import (
	"testing"

	"tinygo.org/x/drivers/touch"
)

func TestCalibrationMapsExtremes(t *testing.T) {
	c := Calibration{MinX: 1000, MaxX: 9000, MinY: 2000, MaxY: 6000, Width: 240, Height: 320, MinPressure: 10}

	x, y, ok := c.Map(touch.Point{X: 1000, Y: 2000, Z: 50})
	if !ok || x != 0 || y != 0 {
		t.Fatalf("Map(min)=(%d,%d,%v), want (0,0,true)", x, y, ok)
	}
	x, y, ok = c.Map(touch.Point{X: 9000, Y: 6000, Z: 50})
	if !ok || x != 239 || y != 319 {
		t.Fatalf("Map(max)=(%d,%d,%v), want (239,319,true)", x, y, ok)
	}
	x, y, ok = c.Map(touch.Point{X: 5000, Y: 4000, Z: 50})
	if !ok || x != 119 || y != 159 {
		t.Fatalf("Map(mid)=(%d,%d,%v), want (119,159,true)", x, y, ok)
	}
}

func TestCalibrationClampsAndRejectsLowPressure(t *testing.T) {
	c := Calibration{MinX: 1000, MaxX: 9000, MinY: 2000, MaxY: 6000, Width: 240, Height: 320, MinPressure: 10}

	if _, _, ok := c.Map(touch.Point{X: 5000, Y: 4000, Z: 9}); ok {
		t.Fatal("expected low pressure sample to be rejected")
	}
	x, y, ok := c.Map(touch.Point{X: 0, Y: 65535, Z: 10})
	if !ok {
		t.Fatal("expected touch")
	}
	if x != 0 || y != 319 {
		t.Fatalf("Map(out of range)=(%d,%d), want (0,319)", x, y)
	}
}

func TestCalibrationInvertedAxis(t *testing.T) {
	c := Calibration{MinX: 9000, MaxX: 1000, MinY: 0, MaxY: 319, Width: 240, Height: 320, MinPressure: 1}
	x, _, ok := c.Map(touch.Point{X: 9000, Y: 0, Z: 1})
	if !ok || x != 0 {
		t.Fatalf("x=%d ok=%v, want 0 true", x, ok)
	}
	x, _, _ = c.Map(touch.Point{X: 1000, Y: 0, Z: 1})
	if x != 239 {
		t.Fatalf("x=%d, want 239", x)
	}
}

func TestScreenCalibrationIsIdentity(t *testing.T) {
	c := ScreenCalibration(240, 320)
	for _, p := range []touch.Point{{X: 0, Y: 0, Z: 1}, {X: 40, Y: 90, Z: 255}, {X: 239, Y: 319, Z: 1}} {
		x, y, ok := c.Map(p)
		if !ok || x != p.X || y != p.Y {
			t.Fatalf("Map(%+v)=(%d,%d,%v)", p, x, y, ok)
		}
	}
	if _, _, ok := c.Map(touch.Point{X: 10, Y: 10}); ok {
		t.Fatal("released pointer reported as touch")
	}
}
