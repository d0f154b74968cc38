//go:build !tinygo && cgo

package hal

import (
	"image"
	"time"

	"tftkeypad/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Scale int
	Hz    int
}

// RunWindow starts a desktop window that displays the framebuffer and forwards
// the mouse as the touch panel. It blocks until the window closes.
//
// The application steps on its own goroutine so its stalls do not freeze the
// window; frames cross over through Framebuffer.Present.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := New().(*hostHAL)
	step := newApp(h)

	g := &hostGame{h: h, errc: make(chan error, 1), done: make(chan struct{})}
	go g.drive(step, time.Second/time.Duration(cfg.Hz))
	defer close(g.done)

	ebiten.SetWindowTitle("tftkeypad (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(cfg.Hz)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	seen    uint64

	errc chan error
	done chan struct{}
}

func (g *hostGame) drive(step func() error, period time.Duration) {
	if step == nil {
		return
	}
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-g.done:
			return
		case <-t.C:
			if err := step(); err != nil {
				g.errc <- err
				return
			}
		}
	}
}

func (g *hostGame) Update() error {
	g.h.touch.poll()
	select {
	case err := <-g.errc:
		return err
	default:
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
		g.seen = 0
	}

	if n := fb.snapshotRGB565(g.scratch); n != g.seen {
		g.seen = n
		src := g.scratch
		dst := g.img.Pix
		for i := 0; i+1 < len(src) && i/2*4+3 < len(dst); i += 2 {
			r, gg, b := rgb888From565(uint16(src[i]) | uint16(src[i+1])<<8)
			j := (i / 2) * 4
			dst[j+0] = r
			dst[j+1] = gg
			dst[j+2] = b
			dst[j+3] = 0xFF
		}
		g.fbImg.WritePixels(g.img.Pix)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
