// Package ui is the graphical calibrator: connect to the device, run the
// calibration wizard, tune deadzone/rotation/flip, and watch the stick
// live through viz telemetry.
package ui

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/stickkeys/host"
	"github.com/calvinmclean/stickkeys/joystick"
)

type CalibratorUI struct {
	cfg host.Config

	app    fyne.App
	window fyne.Window

	session  *session
	profiles *host.ProfileStore

	// current control values, mirrored to the device on change and
	// captured into saved profiles
	deadzone float64
	rotation joystick.Rotation
	mirror   bool
}

func NewCalibratorUI(cfg host.Config) *CalibratorUI {
	return &CalibratorUI{
		cfg:      cfg,
		deadzone: joystick.DefaultCalibration().Deadzone,
	}
}

func (ui *CalibratorUI) Run() {
	ui.app = app.New()
	ui.window = ui.app.NewWindow("Stick Keys Calibrator")
	ui.window.Resize(fyne.NewSize(520, 480))

	profiles, err := host.OpenProfiles(ui.cfg.ProfilesFile)
	if err != nil {
		log.Println("error opening profile store:", err)
	} else {
		ui.profiles = profiles
		defer profiles.Close()
	}

	ui.showConnect()
	ui.window.ShowAndRun()

	if ui.session != nil {
		ui.session.Close()
	}
}

// showConnect renders the port picker shown before a device is open.
func (ui *CalibratorUI) showConnect() {
	const autoProbe = "auto-detect"

	ports, err := host.ListPorts()
	if err != nil {
		log.Println("error listing serial ports:", err)
	}
	options := append([]string{autoProbe}, ports...)

	selected := ui.cfg.Port
	if selected == "" {
		selected = autoProbe
	}

	portSelect := widget.NewSelect(options, func(s string) {
		selected = s
	})
	portSelect.SetSelected(selected)

	connectButton := widget.NewButton("Connect", func() {
		portName := selected
		if portName == autoProbe {
			portName = ""
		}

		s, err := connect(ui.cfg, portName)
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		version, err := s.Version(ctx)
		cancel()
		if err != nil {
			log.Println("error reading device version:", err)
			version = "unknown"
		}

		ui.session = s
		ui.showMain(version)
	})

	ui.window.SetContent(container.NewVBox(
		widget.NewCard("Connect", "", container.NewVBox(
			container.NewGridWithColumns(2,
				widget.NewLabel("Serial Port:"),
				portSelect,
			),
			connectButton,
		)),
	))
}

// showMain renders the calibrator after a successful connection.
func (ui *CalibratorUI) showMain(version string) {
	stick := newStickView()
	directionLabel := widget.NewLabel("NEUTRAL")

	logContent := widget.NewLabel("")
	logScroll := container.NewVScroll(logContent)
	logScroll.SetMinSize(fyne.NewSize(400, 120))
	logAccordion := widget.NewAccordion(
		widget.NewAccordionItem("Serial Log", logScroll),
	)

	ui.session.OnLog = func(line string) {
		fyne.Do(func() {
			logContent.SetText(logContent.Text + "\n" + line)
			logScroll.ScrollToBottom()
		})
	}
	ui.session.OnTelemetry = func(tel host.Telemetry) {
		fyne.Do(func() {
			stick.Update(tel.X, tel.Y)
			directionLabel.SetText(tel.Direction)
		})
	}
	ui.session.start()

	calibrateButton := widget.NewButton("Calibrate...", ui.runWizard)
	vizButton := widget.NewButton("Viz", ui.session.StartViz)
	runButton := widget.NewButton("Run", ui.session.StartRun)
	debugButton := widget.NewButton("Debug", ui.session.ToggleDebug)

	deadzoneEntry := widget.NewEntry()
	deadzoneEntry.SetText(fmt.Sprintf("%.2f", ui.deadzone))
	deadzoneEntry.OnSubmitted = func(s string) {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 || v >= joystick.MaxDeadzone {
			dialog.ShowError(fmt.Errorf("deadzone must be a number in [0, %.1f)", joystick.MaxDeadzone), ui.window)
			return
		}
		ui.deadzone = v
		ui.session.SetDeadzone(v)
	}
	deadzoneButton := widget.NewButton("Set", func() {
		deadzoneEntry.OnSubmitted(deadzoneEntry.Text)
	})

	rotationSelect := widget.NewSelect([]string{"0", "90", "180", "270"}, func(s string) {
		degrees, _ := strconv.Atoi(s)
		rot, err := joystick.ParseRotation(degrees)
		if err != nil {
			return
		}
		ui.rotation = rot
		ui.session.SetRotation(rot)
	})
	rotationSelect.SetSelectedIndex(0)

	flipCheck := widget.NewCheck("Mirror X axis", func(on bool) {
		ui.mirror = on
		ui.session.SetMirror(on)
	})

	firmwareLabel := "Firmware: " + version
	if outdated, err := host.UpdateAvailable(version); err == nil && outdated {
		firmwareLabel += " (update available: " + host.LatestVersion + ")"
	}

	content := container.NewVBox(
		container.NewHBox(
			widget.NewLabel("Port: "+ui.session.PortName()),
			widget.NewLabel(firmwareLabel),
		),
		container.NewHBox(calibrateButton, vizButton, runButton, debugButton),
		container.NewGridWithColumns(2,
			container.NewVBox(
				container.NewGridWithColumns(3,
					widget.NewLabel("Deadzone:"),
					deadzoneEntry,
					deadzoneButton,
				),
				container.NewGridWithColumns(2,
					widget.NewLabel("Rotation:"),
					rotationSelect,
				),
				flipCheck,
				ui.profileControls(),
			),
			container.NewVBox(
				stick.Widget(),
				directionLabel,
			),
		),
		logAccordion,
	)

	ui.window.SetContent(content)
}

// runWizard walks the two-step calibration through dialogs: center, then
// sweep, then done.
func (ui *CalibratorUI) runWizard() {
	ui.session.StartCalibration()

	dialog.ShowConfirm("Calibration",
		"Let the stick rest at its center, then press Continue.",
		func(ok bool) {
			if !ok {
				ui.session.StartRun()
				return
			}
			ui.session.Next()

			dialog.ShowConfirm("Calibration",
				"Sweep the stick slowly around its full range a few times, then press Finish.",
				func(ok bool) {
					if !ok {
						ui.session.StartRun()
						return
					}
					ui.session.Next()
					dialog.ShowInformation("Calibration", "Calibration saved to the device.", ui.window)
				}, ui.window)
		}, ui.window)
}

// profileControls builds the save/load UI for named setting profiles.
func (ui *CalibratorUI) profileControls() fyne.CanvasObject {
	if ui.profiles == nil {
		return widget.NewLabel("Profiles unavailable")
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("profile name")

	saveButton := widget.NewButton("Save", func() {
		name := nameEntry.Text
		if name == "" {
			return
		}

		// the protocol has no command reporting the device's calibrated
		// axis ranges, so profiles carry defaults for those and only the
		// three host-settable fields are meaningful
		cal := joystick.DefaultCalibration()
		cal.Deadzone = ui.deadzone
		cal.Rotation = ui.rotation
		cal.Mirror = ui.mirror

		if err := ui.profiles.Save(name, cal); err != nil {
			dialog.ShowError(err, ui.window)
		}
	})

	loadButton := widget.NewButton("Load", func() {
		name := nameEntry.Text
		if name == "" {
			return
		}

		cal, err := ui.profiles.Get(name)
		if err != nil {
			dialog.ShowError(err, ui.window)
			return
		}

		// push the profile's settings to the device
		ui.deadzone = cal.Deadzone
		ui.rotation = cal.Rotation
		ui.mirror = cal.Mirror
		ui.session.SetDeadzone(cal.Deadzone)
		ui.session.SetRotation(cal.Rotation)
		ui.session.SetMirror(cal.Mirror)
	})

	return container.NewVBox(
		widget.NewLabel("Profiles:"),
		nameEntry,
		container.NewHBox(saveButton, loadButton),
	)
}
