//go:build tinygo

package device

import (
	"machine"
	"time"
)

// StickConfig names the analog pins the joystick axes are wired to.
type StickConfig struct {
	XPin machine.Pin
	YPin machine.Pin
}

// DisplayConfig has device-level values for the optional SSD1306 screen.
// A zero value disables the display.
type DisplayConfig struct {
	Bus     *machine.I2C
	Address uint16
	Width   int16
	Height  int16
}

// LoopConfig controls the main sampling loop.
type LoopConfig struct {
	// TickInterval is the delay between samples. USB HID polling allows
	// anything from a few ms up to ~60ms.
	TickInterval time.Duration
	// StartupDelay gives the host time to enumerate the USB device
	// before the first key event.
	StartupDelay time.Duration
}
