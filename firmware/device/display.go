//go:build tinygo

package device

import (
	"image/color"

	"tinygo.org/x/drivers/ssd1306"

	"github.com/calvinmclean/stickkeys"
	"github.com/calvinmclean/stickkeys/joystick"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Display draws the stick position on an SSD1306: a crosshair for the
// axes, a dot for the current deflection, and a tick on the edge for the
// active direction.
type Display struct {
	dev    ssd1306.Device
	width  int16
	height int16
}

// NewDisplay configures the screen over I2C. The bus must already be
// configured by the caller.
func NewDisplay(cfg DisplayConfig) *Display {
	dev := ssd1306.NewI2C(cfg.Bus)
	dev.Configure(ssd1306.Config{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Address: cfg.Address,
	})
	dev.ClearDisplay()

	return &Display{dev: dev, width: cfg.Width, height: cfg.Height}
}

// Show renders one frame. Coordinates are centered on the screen and the
// dot moves in screen orientation: positive Y is down, matching the
// processed vector.
func (d *Display) Show(f joystick.Frame, dir stickkeys.Direction, mode stickkeys.Mode) {
	d.dev.ClearBuffer()

	cx := d.width / 2
	cy := d.height / 2
	// leave a margin so the full-deflection dot stays on screen
	rx := cx - 3
	ry := cy - 3

	// crosshair
	for x := int16(0); x < d.width; x++ {
		d.dev.SetPixel(x, cy, white)
	}
	for y := int16(0); y < d.height; y++ {
		d.dev.SetPixel(cx, y, white)
	}

	// 3x3 dot at the deflected position
	px := cx + int16(f.X*float64(rx))
	py := cy + int16(f.Y*float64(ry))
	for dx := int16(-1); dx <= 1; dx++ {
		for dy := int16(-1); dy <= 1; dy++ {
			d.dev.SetPixel(px+dx, py+dy, white)
		}
	}

	// corner marker while calibrating so the screen state is obvious
	if mode == stickkeys.ModeCalibrateCenter || mode == stickkeys.ModeCalibrateExtremes {
		for x := int16(0); x < 4; x++ {
			for y := int16(0); y < 4; y++ {
				d.dev.SetPixel(x, y, white)
			}
		}
	}

	d.dev.Display()
}
