package command

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/calvinmclean/stickkeys/joystick"
)

// fakeController records every effect so dispatch can be checked without
// hardware.
type fakeController struct {
	bytes.Buffer

	calls    []string
	rotation joystick.Rotation
	mirror   bool
	debug    bool
	deadzone float64
	fail     error
}

func (f *fakeController) BeginCalibration() { f.calls = append(f.calls, "cal") }

func (f *fakeController) AdvanceCalibration() error {
	f.calls = append(f.calls, "next")
	return f.fail
}

func (f *fakeController) EnterViz() { f.calls = append(f.calls, "viz") }
func (f *fakeController) EnterRun() { f.calls = append(f.calls, "run") }

func (f *fakeController) ToggleDebug() bool {
	f.debug = !f.debug
	return f.debug
}

func (f *fakeController) Rotation() joystick.Rotation { return f.rotation }

func (f *fakeController) SetRotation(r joystick.Rotation) error {
	f.rotation = r
	return f.fail
}

func (f *fakeController) Mirror() bool { return f.mirror }

func (f *fakeController) SetMirror(on bool) error {
	f.mirror = on
	return f.fail
}

func (f *fakeController) ToggleMirror() (bool, error) {
	f.mirror = !f.mirror
	return f.mirror, f.fail
}

func (f *fakeController) SetDeadzone(v float64) error {
	f.deadzone = v
	return f.fail
}

func (f *fakeController) Version() string { return "1.2.0" }

func TestDispatchVerbs(t *testing.T) {
	tests := []struct {
		line     string
		expected string
	}{
		{"cal", "cal"},
		{"next", "next"},
		{"viz", "viz"},
		{"run", "run"},
		{"CAL", "cal"}, // verbs are case-insensitive
		{"  viz  ", "viz"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			c := &fakeController{}
			if err := Dispatch(c, tt.line); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(c.calls) != 1 || c.calls[0] != tt.expected {
				t.Errorf("expected call %q, got %v", tt.expected, c.calls)
			}
		})
	}
}

func TestDispatchBlankLine(t *testing.T) {
	c := &fakeController{}
	if err := Dispatch(c, "   "); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(c.calls) != 0 {
		t.Errorf("expected no calls, got %v", c.calls)
	}
}

func TestDispatchUnknown(t *testing.T) {
	c := &fakeController{}
	err := Dispatch(c, "launch")
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), "launch") {
		t.Errorf("expected error to name the command, got %v", err)
	}
}

func TestDispatchRotate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c := &fakeController{}
		if err := Dispatch(c, "rotate 270"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.rotation != joystick.Rotate270 {
			t.Errorf("expected Rotate270, got %v", c.rotation)
		}
	})

	t.Run("no argument reports", func(t *testing.T) {
		c := &fakeController{rotation: joystick.Rotate180}
		if err := Dispatch(c, "rotate"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := c.String(); got != "rotation 180deg\n" {
			t.Errorf("expected report, got %q", got)
		}
	})

	for _, line := range []string{"rotate 45", "rotate abc", "rotate 90 90"} {
		t.Run(line, func(t *testing.T) {
			c := &fakeController{}
			if err := Dispatch(c, line); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDispatchFlip(t *testing.T) {
	c := &fakeController{}

	if err := Dispatch(c, "flip"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.String(); got != "flip off\n" {
		t.Errorf("expected report, got %q", got)
	}
	if c.mirror {
		t.Error("expected report to leave mirror unchanged")
	}

	if err := Dispatch(c, "flip toggle"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.mirror {
		t.Error("expected toggle to enable mirror")
	}

	if err := Dispatch(c, "flip none"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.mirror {
		t.Error("expected 'flip none' to disable mirror")
	}

	if err := Dispatch(c, "flip h"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.mirror {
		t.Error("expected 'flip h' to enable mirror")
	}

	if err := Dispatch(c, "flip v"); err == nil {
		t.Error("expected error for invalid argument")
	}
}

func TestDispatchSetDeadzone(t *testing.T) {
	c := &fakeController{}
	if err := Dispatch(c, "set_deadzone 0.25"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.deadzone != 0.25 {
		t.Errorf("expected 0.25, got %v", c.deadzone)
	}

	if err := Dispatch(c, "set_deadzone nope"); err == nil {
		t.Error("expected error for non-numeric argument")
	}

	// range errors come back from the controller
	c.fail = errors.New("out of range")
	if err := Dispatch(c, "set_deadzone 0.95"); err == nil {
		t.Error("expected controller error to propagate")
	}
}

func TestDispatchVersion(t *testing.T) {
	c := &fakeController{}
	if err := Dispatch(c, "version"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.String(); got != "FW_VERSION 1.2.0\n" {
		t.Errorf("expected version line, got %q", got)
	}
}

func TestDispatchHelpListsEveryCommand(t *testing.T) {
	c := &fakeController{}
	if err := Dispatch(c, "help"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := c.String()
	// help lives outside the commands slice but must still dispatch and
	// list itself
	if !strings.Contains(out, "help:") {
		t.Errorf("help output missing its own entry: %q", out)
	}
	for _, cmd := range commands {
		if !strings.Contains(out, cmd.Name) {
			t.Errorf("help output missing %q", cmd.Name)
		}
	}
}

func TestLineReader(t *testing.T) {
	var r LineReader

	feed := func(s string) []string {
		var lines []string
		for i := 0; i < len(s); i++ {
			if line, ok := r.Feed(s[i]); ok {
				lines = append(lines, line)
			}
		}
		return lines
	}

	t.Run("newline terminated", func(t *testing.T) {
		lines := feed("viz\n")
		if len(lines) != 1 || lines[0] != "viz" {
			t.Errorf("expected [viz], got %v", lines)
		}
	})

	t.Run("crlf produces one line", func(t *testing.T) {
		lines := feed("run\r\n")
		if len(lines) != 1 || lines[0] != "run" {
			t.Errorf("expected [run], got %v", lines)
		}
	})

	t.Run("split across feeds", func(t *testing.T) {
		feed("rotate ")
		lines := feed("90\n")
		if len(lines) != 1 || lines[0] != "rotate 90" {
			t.Errorf("expected [rotate 90], got %v", lines)
		}
	})

	t.Run("oversized line truncates", func(t *testing.T) {
		lines := feed(strings.Repeat("x", 200) + "\n")
		if len(lines) != 1 || len(lines[0]) != maxLineLen {
			t.Errorf("expected one %d-byte line, got %v", maxLineLen, lines)
		}
	})
}
