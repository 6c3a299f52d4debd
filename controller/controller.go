// Package controller runs the device's tick loop: sample, process,
// classify, press keys. It is hardware-free so the whole control flow can
// run in tests; the firmware supplies the keyboard, display and store.
package controller

import (
	"errors"
	"fmt"
	"io"

	"github.com/calvinmclean/stickkeys"
	"github.com/calvinmclean/stickkeys/command"
	"github.com/calvinmclean/stickkeys/joystick"
)

// Keyboard holds and releases the WASD keys over USB HID.
type Keyboard interface {
	Press(stickkeys.Key)
	Release(stickkeys.Key)
}

// Display mirrors the stick position on an attached screen. Optional.
type Display interface {
	Show(f joystick.Frame, d stickkeys.Direction, mode stickkeys.Mode)
}

// Config wires the controller to its hardware collaborators.
type Config struct {
	Keyboard Keyboard
	Store    *joystick.Store
	Display  Display

	// Out receives command responses and telemetry, normally the serial
	// port the commands arrive on.
	Out io.Writer
}

// Controller owns the mode state machine and the live calibration. It is
// single-threaded: FeedByte and Tick are called from the same loop, so no
// locking is needed.
type Controller struct {
	kb      Keyboard
	store   *joystick.Store
	display Display
	out     io.Writer

	mode   stickkeys.Mode
	debug  bool
	cal    joystick.Calibration
	wizard joystick.Wizard
	held   stickkeys.KeyMask
	reader command.LineReader

	// last raw sample, snapshotted by the calibration wizard on 'next'
	rawX, rawY int
}

// New loads the persisted calibration and starts in run mode.
func New(cfg Config) *Controller {
	return &Controller{
		kb:      cfg.Keyboard,
		store:   cfg.Store,
		display: cfg.Display,
		out:     cfg.Out,
		mode:    stickkeys.ModeRun,
		cal:     cfg.Store.Load(),
	}
}

func (c *Controller) Mode() stickkeys.Mode { return c.mode }

func (c *Controller) Calibration() joystick.Calibration { return c.cal }

// FeedByte consumes one serial byte, dispatching a command when it
// completes a line, and reports whether a line was dispatched so the
// caller can limit itself to one command per tick. Command errors are
// reported on the output and never stop the loop.
func (c *Controller) FeedByte(b byte) bool {
	line, ok := c.reader.Feed(b)
	if !ok {
		return false
	}
	if err := command.Dispatch(c, line); err != nil {
		fmt.Fprintln(c.out, "ERR "+err.Error())
	}
	return true
}

// Tick processes one raw sample according to the current mode.
func (c *Controller) Tick(rawX, rawY int) {
	c.rawX, c.rawY = rawX, rawY

	switch c.mode {
	case stickkeys.ModeCalibrateCenter:
		// waiting for 'next'; nothing to sample yet

	case stickkeys.ModeCalibrateExtremes:
		c.wizard.Observe(rawX, rawY)
		if c.debug {
			r := c.wizard.Range()
			fmt.Fprintf(c.out, "Range X: %d..%d | Y: %d..%d\n",
				r.X.Min, r.X.Max, r.Y.Min, r.Y.Max)
		}

	case stickkeys.ModeViz:
		f := joystick.Process(rawX, rawY, c.cal)
		d := stickkeys.DirectionFor(f.Magnitude, f.Angle)
		c.printTelemetry(f, d)
		c.show(f, d)

	default: // run
		f := joystick.Process(rawX, rawY, c.cal)
		d := stickkeys.DirectionFor(f.Magnitude, f.Angle)
		c.apply(d.Keys())
		if c.debug {
			c.printTelemetry(f, d)
		}
		c.show(f, d)
	}
}

// apply diffs the wanted key set against the held one so every key gets
// exactly one press and one release per hold.
func (c *Controller) apply(want stickkeys.KeyMask) {
	if want == c.held {
		return
	}
	for _, k := range stickkeys.Keys {
		switch {
		case want.Has(k) && !c.held.Has(k):
			c.kb.Press(k)
		case !want.Has(k) && c.held.Has(k):
			c.kb.Release(k)
		}
	}
	c.held = want
}

func (c *Controller) releaseAll() {
	c.apply(0)
}

func (c *Controller) show(f joystick.Frame, d stickkeys.Direction) {
	if c.display != nil {
		c.display.Show(f, d, c.mode)
	}
}

func (c *Controller) printTelemetry(f joystick.Frame, d stickkeys.Direction) {
	fmt.Fprintf(c.out, "Raw: %d,%d | Norm: %.2f,%.2f | Mag: %.2f | Angle: %.1f | %s\n",
		f.RawX, f.RawY, f.X, f.Y, f.Magnitude, f.Angle, d)
}

// persist writes the live calibration; on failure the in-memory values
// stay active so the device keeps working until the next attempt.
func (c *Controller) persist() error {
	if err := c.store.Save(c.cal); err != nil {
		return errors.New("save failed: " + err.Error())
	}
	return nil
}

// BeginCalibration starts the wizard at center capture. Keys are released
// so a half-held direction cannot stick through calibration.
func (c *Controller) BeginCalibration() {
	c.releaseAll()
	c.wizard.Begin(c.cal)
	c.mode = stickkeys.ModeCalibrateCenter
	fmt.Fprintln(c.out, "calibrating: center the stick, then send 'next'")
}

// AdvanceCalibration moves the wizard along using the latest raw sample.
// Completion persists before acknowledging so a reported success is
// always on flash.
func (c *Controller) AdvanceCalibration() error {
	cal, done, err := c.wizard.Advance(c.rawX, c.rawY)
	if err != nil {
		return err
	}

	if !done {
		c.mode = stickkeys.ModeCalibrateExtremes
		fmt.Fprintln(c.out, "center captured: sweep the stick to every extreme, then send 'next'")
		return nil
	}

	c.cal = cal
	c.mode = stickkeys.ModeRun
	if err := c.persist(); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "calibration saved")
	return nil
}

func (c *Controller) EnterViz() {
	c.releaseAll()
	c.mode = stickkeys.ModeViz
	fmt.Fprintln(c.out, "viz mode: streaming telemetry, keys disabled")
}

func (c *Controller) EnterRun() {
	c.mode = stickkeys.ModeRun
	fmt.Fprintln(c.out, "run mode")
}

func (c *Controller) ToggleDebug() bool {
	c.debug = !c.debug
	return c.debug
}

func (c *Controller) Rotation() joystick.Rotation { return c.cal.Rotation }

func (c *Controller) Mirror() bool { return c.cal.Mirror }

func (c *Controller) SetRotation(r joystick.Rotation) error {
	c.cal.Rotation = r
	if err := c.persist(); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "rotation "+r.String())
	return nil
}

func (c *Controller) SetMirror(on bool) error {
	c.cal.Mirror = on
	if err := c.persist(); err != nil {
		return err
	}
	if on {
		fmt.Fprintln(c.out, "flip on")
	} else {
		fmt.Fprintln(c.out, "flip off")
	}
	return nil
}

func (c *Controller) ToggleMirror() (bool, error) {
	err := c.SetMirror(!c.cal.Mirror)
	return c.cal.Mirror, err
}

func (c *Controller) SetDeadzone(v float64) error {
	if v < 0 || v >= joystick.MaxDeadzone {
		return fmt.Errorf("deadzone must be in [0, %.1f), got %v", joystick.MaxDeadzone, v)
	}
	c.cal.Deadzone = v
	if err := c.persist(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "deadzone %.2f\n", v)
	return nil
}

func (c *Controller) Version() string {
	return stickkeys.Version
}

// Write sends command responses to the configured output, satisfying the
// command package's Controller interface.
func (c *Controller) Write(p []byte) (int, error) {
	return c.out.Write(p)
}
