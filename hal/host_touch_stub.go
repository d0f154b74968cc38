//go:build !tinygo && !cgo

package hal

func (t *hostTouch) poll() {
	// No pointer support without the window backend.
}
