// Package app runs the passcode lock on top of the keypad.
package app

import (
	"time"

	"tftkeypad/hal"
)

// Config controls the lock application.
type Config struct {
	// Passcode is an encoded passcode record. Empty starts in setup mode.
	Passcode string
	// UnlockHold is how long the output stays high after a correct code.
	UnlockHold time.Duration
	// Mask echoes '*' instead of the digit.
	Mask bool
	// PollInterval is the touch sampling period used by Run.
	PollInterval time.Duration
	// Calibration overrides the input's own calibration when set.
	Calibration *hal.Calibration
}

const (
	DefaultUnlockHold   = 5 * time.Second
	DefaultPollInterval = 20 * time.Millisecond
)

func DefaultConfig() Config {
	return Config{
		UnlockHold:   DefaultUnlockHold,
		PollInterval: DefaultPollInterval,
	}
}

// New initializes the lock with the default config and returns its step
// function. Each call samples the touch panel once.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig())
}

// Run starts the lock and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, DefaultConfig())
}

func NewWithConfig(h hal.HAL, cfg Config) func() error {
	l, err := newLock(h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return l.step
}

func RunWithConfig(h hal.HAL, cfg Config) {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	step := NewWithConfig(h, cfg)
	clock := h.Clock()
	for {
		if err := step(); err != nil {
			if l := h.Logger(); l != nil {
				l.WriteLineString("app: " + err.Error())
			}
			select {}
		}
		clock.Stall(cfg.PollInterval)
	}
}
