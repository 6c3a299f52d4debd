// Package host talks to the device over its USB serial port: raw
// command/response piping for the CLI, line-oriented streaming for the
// UI, and port auto-detection by probing for the firmware version banner.
package host

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"go.bug.st/serial"
)

// VersionPrefix starts the response to the 'version' command. Probing
// matches on it to tell the device apart from other serial hardware.
const VersionPrefix = "FW_VERSION"

const DefaultBaudRate = 115200

// Client wraps an open serial connection to the device.
type Client struct {
	port     serial.Port
	portName string
}

// New opens the named serial port. An empty name probes every available
// port for the device.
func New(portName string, baudRate int) (*Client, error) {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}

	if portName == "" {
		found, err := Probe(baudRate)
		if err != nil {
			return nil, err
		}
		portName = found
	}

	port, err := serial.Open(portName, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, err
	}

	return &Client{port: port, portName: portName}, nil
}

// NewFromEnv opens the port named by SERIAL_PORT, probing when unset.
func NewFromEnv() (*Client, error) {
	return New(os.Getenv("SERIAL_PORT"), DefaultBaudRate)
}

// ListPorts returns the system's serial port names.
func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}

// Probe finds the device by opening each serial port, sending 'version'
// and looking for the version banner in the reply.
func Probe(baudRate int) (string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return "", err
	}

	for _, name := range ports {
		if isDevice(name, baudRate) {
			return name, nil
		}
	}

	return "", errors.New("no device found; set SERIAL_PORT explicitly")
}

func isDevice(name string, baudRate int) bool {
	port, err := serial.Open(name, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return false
	}
	defer port.Close()

	if _, err := port.Write([]byte("version\n")); err != nil {
		return false
	}

	port.SetReadTimeout(500 * time.Millisecond)
	buf := make([]byte, 256)
	deadline := time.Now().Add(time.Second)
	var received strings.Builder
	for time.Now().Before(deadline) {
		n, err := port.Read(buf)
		if err != nil {
			return false
		}
		if n == 0 {
			break
		}
		received.Write(buf[:n])
		if strings.Contains(received.String(), VersionPrefix) {
			return true
		}
	}

	return false
}

// PortName returns the name of the connected port.
func (c *Client) PortName() string {
	return c.portName
}

// Send writes one command line to the device.
func (c *Client) Send(cmd string) error {
	_, err := c.port.Write([]byte(cmd + "\n"))
	return err
}

// Version asks the device for its firmware version and waits for the
// banner, discarding any telemetry lines arriving in between.
func (c *Client) Version(ctx context.Context) (string, error) {
	if err := c.Send("version"); err != nil {
		return "", err
	}

	c.port.SetReadTimeout(200 * time.Millisecond)
	buf := make([]byte, 256)
	var received strings.Builder
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, err := c.port.Read(buf)
		if err != nil {
			return "", err
		}
		received.Write(buf[:n])

		for _, line := range strings.Split(received.String(), "\n") {
			line = strings.TrimSpace(line)
			if v, ok := strings.CutPrefix(line, VersionPrefix+" "); ok {
				return v, nil
			}
		}
	}

	return "", errors.New("device did not report a version")
}

// Listen reads device output line by line and hands each line to fn
// until the context is canceled or the port fails.
func (c *Client) Listen(ctx context.Context, fn func(line string)) error {
	c.port.SetReadTimeout(200 * time.Millisecond)
	buf := make([]byte, 256)
	var pending strings.Builder

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		n, err := c.port.Read(buf)
		if err != nil {
			return err
		}
		pending.Write(buf[:n])

		text := pending.String()
		for {
			line, rest, found := strings.Cut(text, "\n")
			if !found {
				break
			}
			text = rest
			if line = strings.TrimRight(line, "\r"); line != "" {
				fn(line)
			}
		}
		pending.Reset()
		pending.WriteString(text)
	}
}

// Run pipes in to the device and device output to out until the context
// is canceled or either side fails. This is the CLI mode: stdin lines go
// to the device, everything it says comes back on stdout.
func (c *Client) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	// the copy goroutine blocks on in (stdin) and only exits when in or
	// the port closes; Run is the CLI's whole lifetime, so process exit
	// reclaims it
	go func() {
		io.Copy(c.port, in)
	}()

	c.port.SetReadTimeout(200 * time.Millisecond)
	buf := make([]byte, 256)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		n, err := c.port.Read(buf)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		if _, err := out.Write(buf[:n]); err != nil {
			return err
		}
	}
}

func (c *Client) Close() error {
	return c.port.Close()
}
