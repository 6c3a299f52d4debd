package joystick

import "math"

// Frame is the result of processing one raw sample pair. It is rebuilt
// from scratch every tick and never retained beyond telemetry echo.
type Frame struct {
	RawX, RawY int

	// X and Y are the deadzone-corrected normalized components in [-1,1],
	// after mirroring and rotation. Y grows downward, matching the sector
	// layout where 90 degrees is DOWN.
	X, Y float64

	// Magnitude is the rescaled radial distance in [0,1]; exactly 0 inside
	// the deadzone and exactly 1 at full deflection.
	Magnitude float64

	// Angle is in degrees, [0,360).
	Angle float64
}

// normalizeAxis maps a raw reading onto [-1,1] piecewise around the
// calibrated center. A zero-width half-range (degenerate calibration)
// yields 0 for readings on that side instead of dividing by zero.
func normalizeAxis(raw int, a Axis) float64 {
	var n float64
	if raw >= a.Center {
		span := a.Max - a.Center
		if span == 0 {
			return 0
		}
		n = float64(raw-a.Center) / float64(span)
	} else {
		span := a.Center - a.Min
		if span == 0 {
			return 0
		}
		n = -float64(a.Center-raw) / float64(span)
	}
	return clamp(n, -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Process runs the full pipeline for one tick: normalize each axis, apply
// the radial deadzone with rescaling, mirror, rotate, and compute the
// angle. Pure; cal is read-only.
func Process(rawX, rawY int, cal Calibration) Frame {
	f := Frame{RawX: rawX, RawY: rawY}

	nx := normalizeAxis(rawX, cal.X)
	ny := normalizeAxis(rawY, cal.Y)

	rad := math.Sqrt(nx*nx + ny*ny)
	if rad == 0 || rad < cal.Deadzone {
		nx, ny = 0, 0
	} else {
		// Remap the post-deadzone radius back onto [0,1] so motion ramps
		// smoothly from the deadzone edge instead of jumping.
		scaled := clamp((rad-cal.Deadzone)/(1-cal.Deadzone), 0, 1)
		nx = nx / rad * scaled
		ny = ny / rad * scaled
		f.Magnitude = scaled
	}

	// Flip before rotate. The order is observable: a mirrored stick
	// rotated 90 degrees is not the same as the reverse composition.
	if cal.Mirror {
		nx = -nx
	}
	switch cal.Rotation {
	case Rotate90:
		nx, ny = ny, -nx
	case Rotate180:
		nx, ny = -nx, -ny
	case Rotate270:
		nx, ny = -ny, nx
	}

	f.X, f.Y = nx, ny

	angle := math.Atan2(ny, nx) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	f.Angle = angle

	return f
}
