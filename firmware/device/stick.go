//go:build tinygo

package device

import "machine"

// Stick reads the two joystick potentiometers through the ADC.
type Stick struct {
	x machine.ADC
	y machine.ADC
}

// NewStick initializes the ADC and configures both axis pins.
func NewStick(cfg StickConfig) Stick {
	machine.InitADC()

	x := machine.ADC{Pin: cfg.XPin}
	x.Configure(machine.ADCConfig{})
	y := machine.ADC{Pin: cfg.YPin}
	y.Configure(machine.ADCConfig{})

	return Stick{x: x, y: y}
}

// Read samples both axes as 12-bit values. machine.ADC scales every
// reading to 16 bits regardless of the hardware resolution, so shift
// back down to the range the calibration defaults assume.
func (s Stick) Read() (int, int) {
	return int(s.x.Get() >> 4), int(s.y.Get() >> 4)
}
