package app

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"tftkeypad/gfx"
	"tftkeypad/hal"
	"tftkeypad/keypad"
	"tftkeypad/passcode"
)

// Status messages shown in the text field.
const (
	msgGranted = "Access granted"
	msgDenied  = "Access denied"
	msgConfirm = "Confirm code"
	msgCodeSet = "Code set"
	msgBadCode = "Mismatch"

	statusHold = time.Second

	maxBackoff = 8 * time.Second
)

type mode uint8

const (
	modeLocked mode = iota
	modeUnlocked
	modeSetup
	modeSetupConfirm
)

func (m mode) String() string {
	switch m {
	case modeLocked:
		return "locked"
	case modeUnlocked:
		return "unlocked"
	case modeSetup:
		return "setup"
	case modeSetupConfirm:
		return "setup-confirm"
	default:
		return "unknown"
	}
}

type lock struct {
	h      hal.HAL
	cfg    Config
	cal    hal.Calibration
	fb     hal.Framebuffer
	paint  *gfx.Painter
	kp     *keypad.Keypad
	logger hal.Logger

	rec     passcode.Record
	haveRec bool

	mode    mode
	entry   []byte
	first   []byte
	started bool
	pressed bool

	fails       int
	blockUntil  time.Time
	unlockUntil time.Time
}

func newLock(h hal.HAL, cfg Config) (*lock, error) {
	if cfg.UnlockHold <= 0 {
		cfg.UnlockHold = DefaultUnlockHold
	}

	disp := h.Display()
	if disp == nil {
		return nil, errors.New("app: no display")
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return nil, errors.New("app: no framebuffer")
	}

	paint := gfx.NewPainter(fb, nil)
	l := &lock{
		h:      h,
		cfg:    cfg,
		fb:     fb,
		paint:  paint,
		kp:     keypad.New(paint, h.Clock()),
		logger: h.Logger(),
		entry:  make([]byte, 0, passcode.MaxDigits),
		mode:   modeSetup,
	}

	switch {
	case cfg.Calibration != nil:
		l.cal = *cfg.Calibration
	case h.Input() != nil:
		l.cal = h.Input().Calibration()
	default:
		l.cal = hal.ScreenCalibration(fb.Width(), fb.Height())
	}

	if cfg.Passcode != "" {
		rec, err := passcode.Parse(cfg.Passcode)
		if err != nil {
			return nil, fmt.Errorf("app: passcode: %w", err)
		}
		l.rec = rec
		l.haveRec = true
		l.mode = modeLocked
	}
	if err := l.kp.Layout().Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return l, nil
}

func (l *lock) logf(format string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.WriteLineString(fmt.Sprintf(format, args...))
}

func (l *lock) step() (err error) {
	defer l.recoverPanic(&err)

	if !l.started {
		l.paint.Clear(keypad.Background)
		if err := l.kp.Draw(); err != nil {
			return err
		}
		l.h.LED().Low()
		l.started = true
		l.logf("app: ready (%s)", l.mode)
	}

	now := l.h.Clock().Now()
	if l.mode == modeUnlocked && !now.Before(l.unlockUntil) {
		l.relock()
	}

	x, y, down := l.sample()
	edge := down && !l.pressed
	l.pressed = down
	if !edge {
		return nil
	}
	if now.Before(l.blockUntil) {
		l.logf("lock: input blocked")
		return nil
	}

	i := l.kp.Locate(x, y)
	if i == keypad.NoButton {
		return nil
	}
	label, _ := l.kp.Layout().Label(i)
	if l.cfg.Mask && label != keypad.KeyClear && label != keypad.KeyEnter {
		l.logf("keypad: press *")
	} else {
		l.logf("keypad: press %c", label)
	}
	if err := l.kp.Highlight(i); err != nil {
		return err
	}

	switch label {
	case keypad.KeyClear:
		return l.clear()
	case keypad.KeyEnter:
		return l.submit()
	default:
		return l.digit(byte(label))
	}
}

func (l *lock) sample() (x, y int, ok bool) {
	in := l.h.Input()
	if in == nil {
		return 0, 0, false
	}
	t := in.Touch()
	if t == nil {
		return 0, 0, false
	}
	return l.cal.Map(t.ReadTouchPoint())
}

func (l *lock) digit(d byte) error {
	glyph := rune(d)
	if l.cfg.Mask {
		glyph = '*'
	}
	accepted, err := l.kp.Echo(glyph)
	if err != nil {
		return err
	}
	if !accepted {
		l.entry = wipeBytes(l.entry)
		l.logf("keypad: too many inputs")
		return nil
	}
	l.entry = append(l.entry, d)
	return nil
}

func (l *lock) clear() error {
	l.entry = wipeBytes(l.entry)
	if l.mode == modeUnlocked {
		l.relock()
	}
	return l.kp.ClearField()
}

func (l *lock) submit() error {
	if len(l.entry) == 0 {
		return nil
	}
	if err := l.kp.ClearField(); err != nil {
		return err
	}

	switch l.mode {
	case modeSetup:
		l.first = wipeBytes(l.first)
		l.first = append(l.first, l.entry...)
		l.entry = wipeBytes(l.entry)
		l.setMode(modeSetupConfirm)
		return l.kp.Notice(msgConfirm, statusHold)

	case modeSetupConfirm:
		ok := len(l.first) == len(l.entry) && subtle.ConstantTimeCompare(l.first, l.entry) == 1
		l.entry = wipeBytes(l.entry)
		if !ok {
			l.first = wipeBytes(l.first)
			l.logf("lock: setup mismatch")
			l.setMode(modeSetup)
			return l.kp.Notice(msgBadCode, statusHold)
		}
		rec, err := passcode.New(l.first, passcode.DefaultIter, l.makeSalt())
		l.first = wipeBytes(l.first)
		if err != nil {
			l.logf("lock: setup: %v", err)
			l.setMode(modeSetup)
			return l.kp.Notice(msgBadCode, statusHold)
		}
		l.rec = rec
		l.haveRec = true
		l.setMode(modeLocked)
		return l.kp.Notice(msgCodeSet, statusHold)

	default:
		ok := l.haveRec && l.rec.Verify(l.entry)
		l.entry = wipeBytes(l.entry)
		if !ok {
			return l.fail()
		}
		return l.unlock()
	}
}

func (l *lock) unlock() error {
	l.fails = 0
	l.h.LED().High()
	l.unlockUntil = l.h.Clock().Now().Add(l.cfg.UnlockHold)
	l.setMode(modeUnlocked)
	return l.kp.Notice(msgGranted, statusHold)
}

func (l *lock) relock() {
	l.h.LED().Low()
	l.setMode(modeLocked)
}

func (l *lock) fail() error {
	l.fails++
	if l.mode == modeUnlocked {
		l.relock()
	}
	d := backoff(l.fails)
	l.logf("lock: denied (fails=%d, blocked %s)", l.fails, d)
	err := l.kp.Notice(msgDenied, statusHold)
	l.blockUntil = l.h.Clock().Now().Add(d)
	return err
}

// backoff grows one second per consecutive failure, capped at maxBackoff.
func backoff(fails int) time.Duration {
	if fails <= 1 {
		return time.Second
	}
	d := time.Duration(fails) * time.Second
	if d > maxBackoff {
		d = maxBackoff
	}
	return d
}

func (l *lock) setMode(m mode) {
	if l.mode == m {
		return
	}
	l.logf("lock: %s -> %s", l.mode, m)
	l.mode = m
}

func (l *lock) makeSalt() [16]byte {
	var out [16]byte
	if _, err := rand.Read(out[:]); err == nil {
		return out
	}

	seed := uint32(l.h.Clock().Now().UnixNano()) ^ uint32(l.fails)*0x9e3779b9
	if seed == 0 {
		seed = 0x12345678
	}
	x := seed
	for i := 0; i < len(out); i++ {
		// xorshift32.
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		out[i] = byte(x)
	}
	return out
}

func wipeBytes(b []byte) []byte {
	for i := range b {
		b[i] = 0
	}
	return b[:0]
}
