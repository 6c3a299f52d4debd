package host

import (
	"strconv"
	"strings"
)

// Telemetry is one parsed debug/viz line from the device.
type Telemetry struct {
	RawX, RawY int
	X, Y       float64
	Magnitude  float64
	Angle      float64
	Direction  string
}

// ParseTelemetry parses a line in the device's telemetry format:
//
//	Raw: 4095,2048 | Norm: 1.00,0.00 | Mag: 1.00 | Angle: 0.0 | RIGHT
//
// The format is informational and may change between firmware versions,
// so anything unrecognized returns ok=false instead of an error.
func ParseTelemetry(line string) (Telemetry, bool) {
	parts := strings.Split(line, "|")
	if len(parts) != 5 {
		return Telemetry{}, false
	}

	var t Telemetry
	var ok bool

	if t.RawX, t.RawY, ok = parsePair(parts[0], "Raw:", parseInt); !ok {
		return Telemetry{}, false
	}

	var x, y float64
	if x, y, ok = parsePair(parts[1], "Norm:", parseFloat); !ok {
		return Telemetry{}, false
	}
	t.X, t.Y = x, y

	if t.Magnitude, ok = parseField(parts[2], "Mag:"); !ok {
		return Telemetry{}, false
	}
	if t.Angle, ok = parseField(parts[3], "Angle:"); !ok {
		return Telemetry{}, false
	}

	t.Direction = strings.TrimSpace(parts[4])
	if t.Direction == "" {
		return Telemetry{}, false
	}

	return t, true
}

func parsePair[T int | float64](field, prefix string, parse func(string) (T, bool)) (T, T, bool) {
	var zero T

	rest, ok := strings.CutPrefix(strings.TrimSpace(field), prefix)
	if !ok {
		return zero, zero, false
	}
	a, b, found := strings.Cut(rest, ",")
	if !found {
		return zero, zero, false
	}

	first, ok := parse(strings.TrimSpace(a))
	if !ok {
		return zero, zero, false
	}
	second, ok := parse(strings.TrimSpace(b))
	if !ok {
		return zero, zero, false
	}
	return first, second, true
}

func parseField(field, prefix string) (float64, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(field), prefix)
	if !ok {
		return 0, false
	}
	return parseFloat(strings.TrimSpace(rest))
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(s)
	return v, err == nil
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}
