package stickkeys

import "testing"

func TestDirectionFor(t *testing.T) {
	tests := []struct {
		name      string
		magnitude float64
		angle     float64
		expected  Direction
	}{
		{"neutral at zero", 0, 0, Neutral},
		{"neutral at threshold", 0.1, 123, Neutral},
		{"right", 1, 0, Right},
		{"right wraps high", 1, 359, Right},
		{"right upper edge", 1, 22.4999, Right},
		{"down-right lower edge", 1, 22.5, DownRight},
		{"down-right", 1, 45, DownRight},
		{"down", 1, 90, Down},
		{"down-left", 1, 135, DownLeft},
		{"left", 1, 180, Left},
		{"up-left", 1, 225, UpLeft},
		{"up", 1, 270, Up},
		{"up-right", 1, 315, UpRight},
		{"right wrap edge", 1, 337.5, Right},
		{"up-right upper edge", 1, 337.4999, UpRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DirectionFor(tt.magnitude, tt.angle)
			if d != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, d)
			}
		})
	}
}

func TestDirectionForIsTotal(t *testing.T) {
	// every classifiable input maps to one of the nine directions
	for angle := 0.0; angle < 360; angle += 0.5 {
		d := DirectionFor(1, angle)
		if d < Neutral || d > UpRight {
			t.Fatalf("angle %v produced invalid direction %d", angle, d)
		}
		if d == Neutral {
			t.Fatalf("angle %v produced Neutral despite full magnitude", angle)
		}
	}
}

func TestDirectionKeys(t *testing.T) {
	tests := []struct {
		direction Direction
		expected  KeyMask
	}{
		{Neutral, 0},
		{Right, MaskD},
		{DownRight, MaskS | MaskD},
		{Down, MaskS},
		{DownLeft, MaskS | MaskA},
		{Left, MaskA},
		{UpLeft, MaskW | MaskA},
		{Up, MaskW},
		{UpRight, MaskW | MaskD},
	}

	for _, tt := range tests {
		t.Run(tt.direction.String(), func(t *testing.T) {
			if mask := tt.direction.Keys(); mask != tt.expected {
				t.Errorf("expected mask %08b, got %08b", tt.expected, mask)
			}
		})
	}
}

func TestKeyMaskHas(t *testing.T) {
	mask := MaskW | MaskD
	if !mask.Has(KeyW) || !mask.Has(KeyD) {
		t.Error("expected mask to contain W and D")
	}
	if mask.Has(KeyA) || mask.Has(KeyS) {
		t.Error("expected mask to exclude A and S")
	}
}

func TestDirectionString(t *testing.T) {
	if s := DownLeft.String(); s != "DOWN-LEFT" {
		t.Errorf("expected DOWN-LEFT, got %s", s)
	}
	if s := Neutral.String(); s != "NEUTRAL" {
		t.Errorf("expected NEUTRAL, got %s", s)
	}
}
