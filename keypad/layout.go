package keypad

import "fmt"

const (
	Rows    = 4
	Columns = 3
	Buttons = Rows * Columns

	// NoButton is returned by Locate when a point lies outside every region.
	NoButton = -1

	// ButtonSize is the width and height of every button in pixels.
	ButtonSize = 50
)

// Labels for the two function keys.
const (
	KeyClear = 'C'
	KeyEnter = 'E'
)

// Pixel tables for the 3x4 grid.
var (
	columnX = [Columns]int{15, 95, 175}
	rowY    = [Rows]int{65, 127, 189, 251}
	labelX  = [Columns]int{35, 115, 195}
	labelY  = [Rows]int{85, 145, 209, 271}

	labels = [Buttons]rune{
		'1', '2', '3',
		'4', '5', '6',
		'7', '8', '9',
		KeyClear, '0', KeyEnter,
	}
)

// Region is one button's touch area and label.
type Region struct {
	XMin, YMin int
	XMax, YMax int

	Label          rune
	LabelX, LabelY int
}

// Contains reports whether (x, y) lies strictly inside r. Points on the
// border belong to no button.
func (r Region) Contains(x, y int) bool {
	return x > r.XMin && x < r.XMax && y > r.YMin && y < r.YMax
}

// Overlaps reports whether the closed rectangles of r and o intersect.
func (r Region) Overlaps(o Region) bool {
	return r.XMin <= o.XMax && o.XMin <= r.XMax && r.YMin <= o.YMax && o.YMin <= r.YMax
}

func (r Region) Width() int  { return r.XMax - r.XMin }
func (r Region) Height() int { return r.YMax - r.YMin }

// Layout is the button registry: one region per button, row-major.
type Layout [Buttons]Region

// BuildLayout computes the regions from the fixed grid tables.
func BuildLayout() Layout {
	var l Layout
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			i := row*Columns + col
			l[i] = Region{
				XMin:   columnX[col],
				YMin:   rowY[row],
				XMax:   columnX[col] + ButtonSize,
				YMax:   rowY[row] + ButtonSize,
				Label:  labels[i],
				LabelX: labelX[col],
				LabelY: labelY[row],
			}
		}
	}
	return l
}

// Locate returns the index of the first region containing (x, y), or NoButton.
func (l *Layout) Locate(x, y int) int {
	for i := range l {
		if l[i].Contains(x, y) {
			return i
		}
	}
	return NoButton
}

// Label returns the label of button i.
func (l *Layout) Label(i int) (rune, bool) {
	if i < 0 || i >= Buttons {
		return 0, false
	}
	return l[i].Label, true
}

// IndexOf returns the button carrying label r, or NoButton.
func (l *Layout) IndexOf(r rune) int {
	for i := range l {
		if l[i].Label == r {
			return i
		}
	}
	return NoButton
}

// Validate reports the first pair of overlapping regions.
func (l *Layout) Validate() error {
	for i := 0; i < Buttons; i++ {
		for j := i + 1; j < Buttons; j++ {
			if l[i].Overlaps(l[j]) {
				return fmt.Errorf("keypad: button %d (%c) overlaps button %d (%c)", i, l[i].Label, j, l[j].Label)
			}
		}
	}
	return nil
}
