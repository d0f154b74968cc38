//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled    bool
	Hz         int
	Ticks      uint64
	StepBudget int

	// Taps are replayed through the touch pointer, one after another.
	Taps []Tap
	// TapHold is how many ticks each scripted press (and release) lasts.
	TapHold int

	// Output receives log lines; nil means stdout.
	Output io.Writer
}

// Tap is a scripted touch in screen pixels.
type Tap struct {
	X, Y int
}

// ParseTap parses "x,y".
func ParseTap(s string) (Tap, error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Tap{}, fmt.Errorf("tap %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return Tap{}, fmt.Errorf("tap %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return Tap{}, fmt.Errorf("tap %q: %w", s, err)
	}
	return Tap{X: x, Y: y}, nil
}

// RunHeadless runs the application without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = 1
	}
	if cfg.TapHold <= 0 {
		cfg.TapHold = 2
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	h := newHost(out)
	for _, tap := range cfg.Taps {
		h.touch.queueTap(tap.X, tap.Y, cfg.TapHold)
	}
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			for i := 0; i < cfg.StepBudget; i++ {
				h.touch.advance()
				if step != nil {
					if err := step(); err != nil {
						return err
					}
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
