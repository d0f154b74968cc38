package hal

import "tinygo.org/x/drivers/touch"

// Calibration maps raw touch panel samples onto screen pixels.
type Calibration struct {
	MinX, MaxX int
	MinY, MaxY int

	Width  int
	Height int

	// MinPressure is the lowest Z accepted as a touch.
	MinPressure int
}

// ScreenCalibration is the identity mapping for pointers that already report
// screen pixels (host mouse, capacitive controllers).
func ScreenCalibration(width, height int) Calibration {
	return Calibration{
		MinX:        0,
		MaxX:        width - 1,
		MinY:        0,
		MaxY:        height - 1,
		Width:       width,
		Height:      height,
		MinPressure: 1,
	}
}

// Map converts a raw sample. ok is false when the sample is not a touch.
func (c Calibration) Map(p touch.Point) (x, y int, ok bool) {
	if p.Z < c.MinPressure || p.Z <= 0 {
		return 0, 0, false
	}
	if c.Width <= 0 || c.Height <= 0 {
		return 0, 0, false
	}
	x = clampInt(scale(p.X, c.MinX, c.MaxX, 0, c.Width-1), 0, c.Width-1)
	y = clampInt(scale(p.Y, c.MinY, c.MaxY, 0, c.Height-1), 0, c.Height-1)
	return x, y, true
}

// scale is an integer linear map from [inLo,inHi] to [outLo,outHi].
// Inverted input ranges are allowed (panels mounted upside down).
func scale(v, inLo, inHi, outLo, outHi int) int {
	if inHi == inLo {
		return outLo
	}
	return (v-inLo)*(outHi-outLo)/(inHi-inLo) + outLo
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
