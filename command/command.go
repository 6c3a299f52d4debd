// Package command implements the line-oriented serial protocol. Parsing
// and validation live here; every effect goes through the Controller
// interface so the table can be exercised without hardware.
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/calvinmclean/stickkeys/joystick"
)

type Command struct {
	Name        string
	Usage       string
	Run         func(Controller, []string) error
	Description string
}

// Controller is used to control the device. Responses are written back
// over the same link the commands arrived on.
type Controller interface {
	BeginCalibration()
	AdvanceCalibration() error
	EnterViz()
	EnterRun()
	ToggleDebug() bool
	Rotation() joystick.Rotation
	SetRotation(joystick.Rotation) error
	Mirror() bool
	SetMirror(on bool) error
	ToggleMirror() (bool, error)
	SetDeadzone(float64) error
	Version() string

	// I/O
	Write(p []byte) (int, error)
}

var (
	// HelpCommand iterates commands, so it stays out of that slice and is
	// added to commandMap separately.
	HelpCommand = &Command{
		Name: "help",
		Run: func(c Controller, args []string) error {
			fmt.Fprintln(c, "Available Commands:")
			fmt.Fprintln(c, "  help: Show all available commands and their descriptions.")
			for _, cmd := range commands {
				name := cmd.Name
				if cmd.Usage != "" {
					name += " " + cmd.Usage
				}
				fmt.Fprintln(c, "  "+name+": "+cmd.Description)
			}
			return nil
		},
		Description: "Show all available commands and their descriptions.",
	}
	CalCommand = &Command{
		Name: "cal",
		Run: func(c Controller, args []string) error {
			c.BeginCalibration()
			return nil
		},
		Description: "Start calibration: center the stick, then send 'next'.",
	}
	NextCommand = &Command{
		Name: "next",
		Run: func(c Controller, args []string) error {
			return c.AdvanceCalibration()
		},
		Description: "Advance calibration to the next step.",
	}
	VizCommand = &Command{
		Name: "viz",
		Run: func(c Controller, args []string) error {
			c.EnterViz()
			return nil
		},
		Description: "Stream stick telemetry without pressing any keys.",
	}
	RunCommand = &Command{
		Name: "run",
		Run: func(c Controller, args []string) error {
			c.EnterRun()
			return nil
		},
		Description: "Return to normal operation.",
	}
	DebugCommand = &Command{
		Name: "debug",
		Run: func(c Controller, args []string) error {
			if c.ToggleDebug() {
				fmt.Fprintln(c, "debug on")
			} else {
				fmt.Fprintln(c, "debug off")
			}
			return nil
		},
		Description: "Toggle telemetry output during normal operation.",
	}
	RotateCommand = &Command{
		Name:  "rotate",
		Usage: "[0|90|180|270]",
		Run: func(c Controller, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(c, "rotation "+c.Rotation().String())
				return nil
			}
			if len(args) != 1 {
				return errors.New("rotate takes at most one argument: 0, 90, 180 or 270")
			}
			degrees, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.New("invalid rotation: " + args[0])
			}
			rot, err := joystick.ParseRotation(degrees)
			if err != nil {
				return err
			}
			return c.SetRotation(rot)
		},
		Description: "Report or set the clockwise rotation of the stick axes.",
	}
	FlipCommand = &Command{
		Name:  "flip",
		Usage: "[toggle|h|none]",
		Run: func(c Controller, args []string) error {
			if len(args) == 0 {
				if c.Mirror() {
					fmt.Fprintln(c, "flip on")
				} else {
					fmt.Fprintln(c, "flip off")
				}
				return nil
			}
			switch args[0] {
			case "toggle":
				_, err := c.ToggleMirror()
				return err
			case "h":
				return c.SetMirror(true)
			case "none":
				return c.SetMirror(false)
			default:
				return errors.New("invalid flip argument: " + args[0])
			}
		},
		Description: "Report or set X-axis mirroring: 'toggle', 'h' (on) or 'none' (off).",
	}
	SetDeadzoneCommand = &Command{
		Name:  "set_deadzone",
		Usage: "<value>",
		Run: func(c Controller, args []string) error {
			if len(args) != 1 {
				return errors.New("set_deadzone needs one argument")
			}
			v, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return errors.New("invalid deadzone: " + args[0])
			}
			return c.SetDeadzone(v)
		},
		Description: "Set the radial deadzone, 0 up to (not including) 0.9.",
	}
	VersionCommand = &Command{
		Name: "version",
		Run: func(c Controller, args []string) error {
			fmt.Fprintln(c, "FW_VERSION "+c.Version())
			return nil
		},
		Description: "Report the firmware version.",
	}
)

var commands = []*Command{
	CalCommand,
	NextCommand,
	VizCommand,
	RunCommand,
	DebugCommand,
	RotateCommand,
	FlipCommand,
	SetDeadzoneCommand,
	VersionCommand,
}

var commandMap = func() map[string]*Command {
	m := map[string]*Command{
		HelpCommand.Name: HelpCommand,
	}
	for _, cmd := range commands {
		m[cmd.Name] = cmd
	}
	return m
}()

// Dispatch parses one line and runs the matching command. Verbs are
// case-insensitive; a blank line is ignored.
func Dispatch(c Controller, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, ok := commandMap[strings.ToLower(fields[0])]
	if !ok {
		return errors.New("unknown command " + fields[0] + "; send 'help'")
	}

	return cmd.Run(c, fields[1:])
}
