package joystick

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalizeAxis(t *testing.T) {
	a := Axis{Min: 0, Center: 2048, Max: 4095}

	tests := []struct {
		name     string
		raw      int
		expected float64
	}{
		{"center", 2048, 0},
		{"min", 0, -1},
		{"max", 4095, 1},
		{"below min clamps", -100, -1},
		{"above max clamps", 5000, 1},
		{"halfway up", 2048 + (4095-2048)/2, float64(2048+(4095-2048)/2-2048) / float64(4095-2048)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := normalizeAxis(tt.raw, a)
			if !almostEqual(v, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, v)
			}
		})
	}
}

func TestNormalizeAxisDegenerate(t *testing.T) {
	// min == center == max must not divide by zero
	a := Axis{Min: 2048, Center: 2048, Max: 2048}
	for _, raw := range []int{0, 2048, 4095} {
		if v := normalizeAxis(raw, a); v != 0 {
			t.Errorf("expected 0 for raw=%d, got %v", raw, v)
		}
	}
}

func TestProcessOutputBounds(t *testing.T) {
	cal := DefaultCalibration()
	for rawX := 0; rawX <= 4095; rawX += 341 {
		for rawY := 0; rawY <= 4095; rawY += 341 {
			f := Process(rawX, rawY, cal)
			if f.X < -1 || f.X > 1 || f.Y < -1 || f.Y > 1 {
				t.Errorf("raw=(%d,%d): coordinates out of range: (%v,%v)", rawX, rawY, f.X, f.Y)
			}
			if f.Magnitude < 0 || f.Magnitude > 1 {
				t.Errorf("raw=(%d,%d): magnitude out of range: %v", rawX, rawY, f.Magnitude)
			}
			if f.Angle < 0 || f.Angle >= 360 {
				t.Errorf("raw=(%d,%d): angle out of range: %v", rawX, rawY, f.Angle)
			}
		}
	}
}

func TestProcessDeadzone(t *testing.T) {
	cal := DefaultCalibration()
	cal.Deadzone = 0.15

	t.Run("inside deadzone zeroes everything", func(t *testing.T) {
		// ~5% deflection on X only
		f := Process(2048+100, 2048, cal)
		if f.X != 0 || f.Y != 0 || f.Magnitude != 0 {
			t.Errorf("expected zeroed frame, got X=%v Y=%v Mag=%v", f.X, f.Y, f.Magnitude)
		}
	})

	t.Run("full deflection has magnitude 1", func(t *testing.T) {
		f := Process(4095, 2048, cal)
		if !almostEqual(f.Magnitude, 1) {
			t.Errorf("expected magnitude 1, got %v", f.Magnitude)
		}
	})

	t.Run("just past deadzone is near zero", func(t *testing.T) {
		// 20% deflection with deadzone 0.15 rescales to (0.2-0.15)/0.85
		span := float64(4095 - 2048)
		raw := 2048 + int(0.2*span)
		f := Process(raw, 2048, cal)
		if f.Magnitude > 0.07 {
			t.Errorf("expected rescaled magnitude near zero, got %v", f.Magnitude)
		}
		if f.Magnitude <= 0 {
			t.Errorf("expected positive magnitude, got %v", f.Magnitude)
		}
	})
}

func TestProcessRotation(t *testing.T) {
	cal := DefaultCalibration()
	cal.Deadzone = 0

	// full-right deflection before any transform
	rawX, rawY := 4095, 2048

	tests := []struct {
		rotation  Rotation
		expectedX float64
		expectedY float64
	}{
		{Rotate0, 1, 0},
		{Rotate90, 0, -1},
		{Rotate180, -1, 0},
		{Rotate270, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.rotation.String(), func(t *testing.T) {
			cal.Rotation = tt.rotation
			f := Process(rawX, rawY, cal)
			if !almostEqual(f.X, tt.expectedX) || !almostEqual(f.Y, tt.expectedY) {
				t.Errorf("expected (%v,%v), got (%v,%v)", tt.expectedX, tt.expectedY, f.X, f.Y)
			}
		})
	}
}

func TestProcessMirrorBeforeRotation(t *testing.T) {
	cal := DefaultCalibration()
	cal.Deadzone = 0
	cal.Mirror = true
	cal.Rotation = Rotate90

	// full right: mirror makes it full left, then 90cw turns (-1,0) into (0,1)
	f := Process(4095, 2048, cal)
	if !almostEqual(f.X, 0) || !almostEqual(f.Y, 1) {
		t.Errorf("expected (0,1), got (%v,%v)", f.X, f.Y)
	}
}

func TestProcessAngle(t *testing.T) {
	cal := DefaultCalibration()
	cal.Deadzone = 0

	tests := []struct {
		name     string
		rawX     int
		rawY     int
		expected float64
	}{
		{"right", 4095, 2048, 0},
		{"down", 2048, 4095, 90},
		{"left", 0, 2048, 180},
		{"up", 2048, 0, 270},
		{"down-right", 4095, 4095, 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Process(tt.rawX, tt.rawY, cal)
			if !almostEqual(f.Angle, tt.expected) {
				t.Errorf("expected angle %v, got %v", tt.expected, f.Angle)
			}
		})
	}
}

func TestProcessCenteredWithZeroDeadzone(t *testing.T) {
	cal := DefaultCalibration()
	cal.Deadzone = 0

	f := Process(2048, 2048, cal)
	if f.X != 0 || f.Y != 0 || f.Magnitude != 0 {
		t.Errorf("expected zeroed frame at rest, got X=%v Y=%v Mag=%v", f.X, f.Y, f.Magnitude)
	}
}

func TestProcessNeutralAngleZero(t *testing.T) {
	cal := DefaultCalibration()
	f := Process(2048, 2048, cal)
	if f.Angle != 0 {
		t.Errorf("expected angle 0 at rest, got %v", f.Angle)
	}
}
