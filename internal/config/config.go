// Package config loads the optional host configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"tftkeypad/app"
	"tftkeypad/hal"
	"tftkeypad/passcode"

	"github.com/pelletier/go-toml/v2"
)

// File is the keypad.toml layout.
type File struct {
	Lock   LockConfig   `toml:"lock"`
	Touch  *TouchConfig `toml:"touch,omitempty"`
	Window WindowConfig `toml:"window"`
}

type LockConfig struct {
	// Encoded passcode record, as printed by mkpasscode. Empty means setup mode.
	Passcode     string `toml:"passcode"`
	UnlockHoldMS int    `toml:"unlock_hold_ms"`
	Mask         bool   `toml:"mask"`
	PollMS       int    `toml:"poll_ms"`
}

// TouchConfig overrides the panel calibration.
type TouchConfig struct {
	MinX        int `toml:"min_x"`
	MaxX        int `toml:"max_x"`
	MinY        int `toml:"min_y"`
	MaxY        int `toml:"max_y"`
	Width       int `toml:"width"`
	Height      int `toml:"height"`
	MinPressure int `toml:"min_pressure"`
}

type WindowConfig struct {
	Scale int `toml:"scale"`
	Hz    int `toml:"hz"`
}

func Default() File {
	return File{
		Lock: LockConfig{
			UnlockHoldMS: int(app.DefaultUnlockHold / time.Millisecond),
			PollMS:       int(app.DefaultPollInterval / time.Millisecond),
		},
		Window: WindowConfig{Scale: 2, Hz: 60},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (File, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes TOML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (File, error) {
	f := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return File{}, err
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

func (f File) Validate() error {
	if f.Lock.Passcode != "" {
		if _, err := passcode.Parse(f.Lock.Passcode); err != nil {
			return fmt.Errorf("lock.passcode: %w", err)
		}
	}
	if f.Lock.UnlockHoldMS < 0 {
		return errors.New("lock.unlock_hold_ms: negative")
	}
	if f.Lock.PollMS < 0 {
		return errors.New("lock.poll_ms: negative")
	}
	if t := f.Touch; t != nil {
		if t.Width <= 0 || t.Height <= 0 {
			return errors.New("touch: width and height are required")
		}
		if t.MinX == t.MaxX || t.MinY == t.MaxY {
			return errors.New("touch: empty raw range")
		}
	}
	if f.Window.Scale < 0 || f.Window.Hz < 0 {
		return errors.New("window: negative value")
	}
	return nil
}

// Marshal encodes f as TOML.
func Marshal(f File) ([]byte, error) {
	return toml.Marshal(f)
}

// AppConfig maps the file onto the application config.
func (f File) AppConfig() app.Config {
	cfg := app.Config{
		Passcode:     f.Lock.Passcode,
		UnlockHold:   time.Duration(f.Lock.UnlockHoldMS) * time.Millisecond,
		Mask:         f.Lock.Mask,
		PollInterval: time.Duration(f.Lock.PollMS) * time.Millisecond,
	}
	if t := f.Touch; t != nil {
		cfg.Calibration = &hal.Calibration{
			MinX:        t.MinX,
			MaxX:        t.MaxX,
			MinY:        t.MinY,
			MaxY:        t.MaxY,
			Width:       t.Width,
			Height:      t.Height,
			MinPressure: t.MinPressure,
		}
	}
	return cfg
}
