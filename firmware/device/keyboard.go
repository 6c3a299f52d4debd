//go:build tinygo

package device

import (
	"machine/usb/hid/keyboard"

	"github.com/calvinmclean/stickkeys"
)

// hidPort is the part of the USB keyboard port the device uses. The
// concrete type returned by keyboard.Port() is unexported.
type hidPort interface {
	Down(keyboard.Keycode) error
	Up(keyboard.Keycode) error
}

// Keyboard maps the four logical keys onto the USB HID keyboard.
type Keyboard struct {
	kb hidPort
}

func NewKeyboard() Keyboard {
	return Keyboard{kb: keyboard.Port()}
}

func keycode(k stickkeys.Key) keyboard.Keycode {
	switch k {
	case stickkeys.KeyW:
		return keyboard.KeyW
	case stickkeys.KeyA:
		return keyboard.KeyA
	case stickkeys.KeyS:
		return keyboard.KeyS
	default:
		return keyboard.KeyD
	}
}

func (k Keyboard) Press(key stickkeys.Key) {
	k.kb.Down(keycode(key))
}

func (k Keyboard) Release(key stickkeys.Key) {
	k.kb.Up(keycode(key))
}
