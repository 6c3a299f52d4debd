package ui

import (
	"context"
	"fmt"
	"log"

	"github.com/calvinmclean/stickkeys/host"
	"github.com/calvinmclean/stickkeys/joystick"
)

// session wraps the serial client for the UI: it translates widget
// actions into device commands and fans incoming lines out to the
// telemetry and log callbacks.
type session struct {
	client *host.Client
	cancel context.CancelFunc

	// OnTelemetry receives parsed viz/debug lines; OnLog receives
	// everything the device says. Both are called from the listener
	// goroutine and must hand off to fyne.Do themselves.
	OnTelemetry func(host.Telemetry)
	OnLog       func(line string)
}

func connect(cfg host.Config, portName string) (*session, error) {
	client, err := host.New(portName, cfg.Baud)
	if err != nil {
		return nil, err
	}

	return &session{client: client}, nil
}

// start launches the listener goroutine.
func (s *session) start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go func() {
		err := s.client.Listen(ctx, func(line string) {
			if s.OnLog != nil {
				s.OnLog(line)
			}
			if tel, ok := host.ParseTelemetry(line); ok && s.OnTelemetry != nil {
				s.OnTelemetry(tel)
			}
		})
		if err != nil {
			log.Println("serial listener stopped:", err)
		}
	}()
}

func (s *session) send(cmd string) {
	if err := s.client.Send(cmd); err != nil {
		log.Println("error sending command:", err)
	}
}

func (s *session) StartCalibration() { s.send("cal") }
func (s *session) Next()             { s.send("next") }
func (s *session) StartViz()         { s.send("viz") }
func (s *session) StartRun()         { s.send("run") }
func (s *session) ToggleDebug()      { s.send("debug") }

func (s *session) SetRotation(r joystick.Rotation) {
	s.send(fmt.Sprintf("rotate %d", uint16(r)))
}

func (s *session) SetMirror(on bool) {
	if on {
		s.send("flip h")
	} else {
		s.send("flip none")
	}
}

func (s *session) SetDeadzone(v float64) {
	s.send(fmt.Sprintf("set_deadzone %.3f", v))
}

// Version must be called before start(): it reads the port directly and
// would race with the listener goroutine.
func (s *session) Version(ctx context.Context) (string, error) {
	return s.client.Version(ctx)
}

func (s *session) PortName() string {
	return s.client.PortName()
}

func (s *session) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	s.client.Close()
}
