//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"tinygo.org/x/drivers/touch"
)

// poll samples the mouse (or the first touch on touch-enabled hosts).
// Coordinates are already in framebuffer pixels because the window layout
// matches the framebuffer size.
func (t *hostTouch) poll() {
	var p touch.Point

	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		p = touch.Point{X: x, Y: y, Z: hostPressure}
	} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		p = touch.Point{X: x, Y: y, Z: hostPressure}
	}

	t.set(p)
}
