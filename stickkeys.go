package stickkeys

// Version is the firmware version reported by the "version" command.
// The host tools compare it against their bundled latest version, so keep
// it strict semver.
const Version = "1.2.0"

// Key is one of the four keyboard keys the stick can hold down.
type Key uint8

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
)

func (k Key) String() string {
	switch k {
	case KeyW:
		return "W"
	case KeyA:
		return "A"
	case KeyS:
		return "S"
	default:
		return "D"
	}
}

// Keys lists every emittable key in a fixed order for diffing.
var Keys = [4]Key{KeyW, KeyA, KeyS, KeyD}

// KeyMask is the set of keys held for a direction.
type KeyMask uint8

const (
	MaskW KeyMask = 1 << iota
	MaskA
	MaskS
	MaskD
)

// Mask returns the single-key mask for k.
func (k Key) Mask() KeyMask {
	return 1 << KeyMask(k)
}

// Has reports whether key k is held in the mask.
func (m KeyMask) Has(k Key) bool {
	return m&k.Mask() != 0
}

// Direction is the 8-way quantization of the stick angle, plus NEUTRAL.
type Direction uint8

const (
	Neutral Direction = iota
	Right
	DownRight
	Down
	DownLeft
	Left
	UpLeft
	Up
	UpRight
)

func (d Direction) String() string {
	switch d {
	case Right:
		return "RIGHT"
	case DownRight:
		return "DOWN-RIGHT"
	case Down:
		return "DOWN"
	case DownLeft:
		return "DOWN-LEFT"
	case Left:
		return "LEFT"
	case UpLeft:
		return "UP-LEFT"
	case Up:
		return "UP"
	case UpRight:
		return "UP-RIGHT"
	default:
		return "NEUTRAL"
	}
}

// Keys returns the WASD keys held for this direction.
func (d Direction) Keys() KeyMask {
	switch d {
	case Right:
		return MaskD
	case DownRight:
		return MaskS | MaskD
	case Down:
		return MaskS
	case DownLeft:
		return MaskS | MaskA
	case Left:
		return MaskA
	case UpLeft:
		return MaskA | MaskW
	case Up:
		return MaskW
	case UpRight:
		return MaskW | MaskD
	default:
		return 0
	}
}

// neutralMagnitude is the magnitude at or below which the stick counts as
// centered regardless of angle.
const neutralMagnitude = 0.1

// DirectionFor classifies a post-processing magnitude and angle (degrees in
// [0,360)) into one of the nine directions. Sectors are 45 degrees wide and
// offset by 22.5 so boundaries fall between the compass directions:
// [337.5,22.5) is RIGHT, [22.5,67.5) DOWN-RIGHT, and so on clockwise.
func DirectionFor(magnitude, angle float64) Direction {
	if magnitude <= neutralMagnitude {
		return Neutral
	}
	sector := int((angle + 22.5) / 45)
	return Direction(sector%8 + 1)
}

// Mode is the top-level state of the control loop.
type Mode uint8

const (
	ModeRun Mode = iota
	ModeCalibrateCenter
	ModeCalibrateExtremes
	ModeViz
)

func (m Mode) String() string {
	switch m {
	case ModeCalibrateCenter:
		return "CalibrateCenter"
	case ModeCalibrateExtremes:
		return "CalibrateExtremes"
	case ModeViz:
		return "Viz"
	default:
		return "Run"
	}
}
