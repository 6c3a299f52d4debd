package joystick

import "fmt"

// Rotation is a fixed clockwise rotation applied to the normalized vector
// before angle classification, for sticks mounted sideways or upside down.
type Rotation uint16

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

func (r Rotation) String() string {
	return fmt.Sprintf("%ddeg", uint16(r))
}

// ParseRotation converts a rotation in degrees to a Rotation.
func ParseRotation(degrees int) (Rotation, error) {
	switch degrees {
	case 0, 90, 180, 270:
		return Rotation(degrees), nil
	default:
		return Rotate0, fmt.Errorf("rotation must be 0, 90, 180 or 270, got %d", degrees)
	}
}

// MaxDeadzone is the exclusive upper bound for a configured deadzone.
// Anything closer to 1 leaves no usable travel.
const MaxDeadzone = 0.9

// Axis holds the calibrated raw-sample range for one axis.
type Axis struct {
	Min    int
	Center int
	Max    int
}

// Calibration holds every parameter the processing pipeline depends on.
// Raw units are ADC counts; the defaults assume a 12-bit reading.
type Calibration struct {
	X        Axis
	Y        Axis
	Deadzone float64
	Rotation Rotation
	Mirror   bool
}

// Default calibration used before the wizard has ever run, and as the
// per-key fallback when persisted values are missing.
func DefaultCalibration() Calibration {
	return Calibration{
		X:        Axis{Min: 0, Center: 2048, Max: 4095},
		Y:        Axis{Min: 0, Center: 2048, Max: 4095},
		Deadzone: 0.15,
		Rotation: Rotate0,
		Mirror:   false,
	}
}

// Validate checks the axis ordering invariant and parameter ranges.
// A degenerate range (min == center or center == max) is legal: the
// processor neutralizes the affected axis instead of dividing by zero.
func (c Calibration) Validate() error {
	for _, a := range []struct {
		name string
		axis Axis
	}{{"x", c.X}, {"y", c.Y}} {
		if a.axis.Min > a.axis.Center || a.axis.Center > a.axis.Max {
			return fmt.Errorf("%s axis must satisfy min <= center <= max, got %d/%d/%d",
				a.name, a.axis.Min, a.axis.Center, a.axis.Max)
		}
	}
	if c.Deadzone < 0 || c.Deadzone >= MaxDeadzone {
		return fmt.Errorf("deadzone must be in [0, %.1f), got %.3f", MaxDeadzone, c.Deadzone)
	}
	if _, err := ParseRotation(int(c.Rotation)); err != nil {
		return err
	}
	return nil
}
