//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/ili9341"
	"tinygo.org/x/drivers/touch"
	"tinygo.org/x/drivers/touch/resistive"
)

// Panel wiring for a Pico driving a 2.8" ILI9341 shield with a 4-wire
// resistive overlay. The touch X+/X-/Y+ lines need ADC-capable pins.
const (
	lcdWidth  = 240
	lcdHeight = 320

	pinSCK = machine.GP18
	pinSDO = machine.GP19
	pinSDI = machine.GP16
	pinCS  = machine.GP17
	pinDC  = machine.GP20
	pinRST = machine.GP21

	pinYP = machine.GP26
	pinXM = machine.GP27
	pinXP = machine.GP28
	pinYM = machine.GP22
)

// defaultCalibration maps the 16-bit resistive readings onto the panel.
// The raw extremes are per-panel; these fit the common 2.8" overlays.
var defaultCalibration = Calibration{
	MinX:        8960,
	MaxX:        57650,
	MinY:        7680,
	MaxY:        60220,
	Width:       lcdWidth,
	Height:      lcdHeight,
	MinPressure: 4096,
}

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	fb     Framebuffer
	touch  touch.Pointer
}

// New returns the board HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	fb, err := newPanelFramebuffer()
	if err != nil {
		logger.WriteLineString("hal: display: " + err.Error())
		fb = newPanelFramebufferStub()
	}

	machine.InitADC()
	res := &resistive.FourWire{}
	if err := res.Configure(&resistive.FourWireConfig{
		YP:          pinYP,
		YM:          pinYM,
		XP:          pinXP,
		XM:          pinXM,
		ReadSamples: 4,
	}); err != nil {
		logger.WriteLineString("hal: touch: " + err.Error())
	}

	return &tinyGoHAL{
		logger: logger,
		led:    &pinLED{pin: ledPin},
		fb:     fb,
		touch:  res,
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) LED() LED         { return h.led }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Input() Input     { return tinyGoInput{touch: h.touch} }
func (h *tinyGoHAL) Clock() Clock     { return tinyGoClock{} }

type tinyGoInput struct {
	touch touch.Pointer
}

func (in tinyGoInput) Touch() touch.Pointer     { return in.touch }
func (in tinyGoInput) Calibration() Calibration { return defaultCalibration }

type panelFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte

	lcd   *ili9341.Device
	txBuf []byte
}

func newPanelFramebuffer() (*panelFramebuffer, error) {
	if err := machine.SPI0.Configure(machine.SPIConfig{
		SCK:       pinSCK,
		SDO:       pinSDO,
		SDI:       pinSDI,
		Frequency: 40_000_000,
	}); err != nil {
		return nil, err
	}

	lcd := ili9341.NewSPI(machine.SPI0, pinDC, pinCS, pinRST)
	lcd.Configure(ili9341.Config{
		Width:    lcdWidth,
		Height:   lcdHeight,
		Rotation: drivers.Rotation0,
	})

	fb := newPanelFramebufferStub()
	fb.lcd = lcd
	fb.txBuf = make([]byte, 8*fb.stride)
	return fb, nil
}

func newPanelFramebufferStub() *panelFramebuffer {
	return &panelFramebuffer{
		w:      lcdWidth,
		h:      lcdHeight,
		stride: lcdWidth * 2,
		buf:    make([]byte, lcdWidth*lcdHeight*2),
	}
}

func (f *panelFramebuffer) Width() int          { return f.w }
func (f *panelFramebuffer) Height() int         { return f.h }
func (f *panelFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *panelFramebuffer) StrideBytes() int    { return f.stride }
func (f *panelFramebuffer) Buffer() []byte      { return f.buf }

func (f *panelFramebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.buf, rgb565(r, g, b))
}

// Present blits the whole framebuffer, a band of rows at a time. Without a
// panel it does nothing, so the lock keeps running and logging over UART.
func (f *panelFramebuffer) Present() error {
	if f.lcd == nil {
		return nil
	}
	rows := len(f.txBuf) / f.stride
	if rows <= 0 {
		return errors.New("tx buffer too small")
	}
	for y := 0; y < f.h; y += rows {
		n := rows
		if y+n > f.h {
			n = f.h - y
		}
		off := y * f.stride
		m := swapRGB565(f.txBuf, f.buf[off:off+n*f.stride])
		if err := f.lcd.DrawRGBBitmap8(0, int16(y), f.txBuf[:m], int16(f.w), int16(n)); err != nil {
			return err
		}
	}
	return nil
}
