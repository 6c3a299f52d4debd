//go:build tinygo

package main

import (
	"machine"
	"time"

	"github.com/calvinmclean/stickkeys/controller"
	"github.com/calvinmclean/stickkeys/firmware/device"
	"github.com/calvinmclean/stickkeys/firmware/settings"
	"github.com/calvinmclean/stickkeys/joystick"
)

// enableDisplay wires up the optional SSD1306. Set to false for boards
// without the screen.
const enableDisplay = true

func main() {
	stickCfg := device.StickConfig{
		XPin: machine.A0,
		YPin: machine.A1,
	}
	loopCfg := device.LoopConfig{
		TickInterval: 20 * time.Millisecond,
		StartupDelay: 2 * time.Second,
	}

	stick := device.NewStick(stickCfg)
	kb := device.NewKeyboard()

	var display controller.Display
	if enableDisplay {
		machine.I2C0.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz})
		display = device.NewDisplay(device.DisplayConfig{
			Bus:     machine.I2C0,
			Address: 0x3C,
			Width:   128,
			Height:  64,
		})
	}

	// wait for USB enumeration before any key event can be sent
	time.Sleep(loopCfg.StartupDelay)

	ctrl := controller.New(controller.Config{
		Keyboard: kb,
		Store:    joystick.NewStore(settings.NewFlash()),
		Display:  display,
		Out:      machine.Serial,
	})

	for {
		// drain pending bytes without blocking the sample loop, but run
		// at most one command per tick so bursts cannot starve sampling
		for machine.Serial.Buffered() > 0 {
			b, err := machine.Serial.ReadByte()
			if err != nil {
				break
			}
			if ctrl.FeedByte(b) {
				break
			}
		}

		x, y := stick.Read()
		ctrl.Tick(x, y)

		time.Sleep(loopCfg.TickInterval)
	}
}
