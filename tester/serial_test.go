// Device-in-the-loop test: flash the firmware, plug the device in, and
// run with SERIAL_PORT set to its port. Skipped otherwise.
package main_test

import (
	"os"
	"strings"
	"testing"
	"time"

	"go.bug.st/serial"

	"github.com/calvinmclean/stickkeys"
)

func openPort(t *testing.T) serial.Port {
	t.Helper()

	portName := os.Getenv("SERIAL_PORT")
	if portName == "" {
		t.Skip("SERIAL_PORT not set")
	}

	mode := &serial.Mode{
		BaudRate: 115200,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		t.Fatalf("unexpected error opening serial connection: %v", err)
	}
	t.Cleanup(func() { port.Close() })

	return port
}

func sendSerial(t *testing.T, port serial.Port, in string) string {
	t.Helper()

	if in != "" {
		_, err := port.Write([]byte(in))
		if err != nil {
			t.Errorf("unexpected error writing serial: %v", err)
			return ""
		}
	}
	time.Sleep(100 * time.Millisecond)

	port.SetReadTimeout(200 * time.Millisecond)
	buf := make([]byte, 256)
	var out strings.Builder
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		n, err := port.Read(buf)
		if err != nil {
			t.Errorf("unexpected error reading serial: %v", err)
			return ""
		}
		if n == 0 {
			break
		}
		out.Write(buf[:n])
	}
	return out.String()
}

func TestVersion(t *testing.T) {
	port := openPort(t)

	out := sendSerial(t, port, "version\n")
	if !strings.Contains(out, "FW_VERSION "+stickkeys.Version) {
		t.Errorf("expected version banner, got %q", out)
	}
}

func TestModeSwitching(t *testing.T) {
	port := openPort(t)

	out := sendSerial(t, port, "viz\n")
	if !strings.Contains(out, "viz mode") {
		t.Errorf("expected viz acknowledgment, got %q", out)
	}

	// viz streams telemetry every tick
	out = sendSerial(t, port, "")
	if !strings.Contains(out, "Raw:") {
		t.Errorf("expected telemetry stream, got %q", out)
	}

	out = sendSerial(t, port, "run\n")
	if !strings.Contains(out, "run mode") {
		t.Errorf("expected run acknowledgment, got %q", out)
	}
}

func TestSettingsCommands(t *testing.T) {
	port := openPort(t)

	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"SetDeadzone", "set_deadzone 0.15\n", "deadzone 0.15"},
		{"RejectDeadzone", "set_deadzone 0.95\n", "ERR"},
		{"Rotate", "rotate 0\n", "rotation 0deg"},
		{"RejectRotate", "rotate 45\n", "ERR"},
		{"FlipOff", "flip none\n", "flip off"},
		{"Unknown", "bogus\n", "ERR unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := sendSerial(t, port, tt.in)
			if !strings.Contains(out, tt.expected) {
				t.Errorf("expected=%q, got=%q", tt.expected, out)
			}
		})
	}
}
