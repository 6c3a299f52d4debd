package joystick

import "errors"

// WizardState is the calibration wizard's position in its two-step flow.
type WizardState uint8

const (
	// WizardIdle means no calibration is in progress.
	WizardIdle WizardState = iota
	// WizardCenter waits for the user to center the stick and advance.
	WizardCenter
	// WizardExtremes folds every sample into the min/max range until the
	// user advances again.
	WizardExtremes
)

// ErrNotCalibrating is returned by Advance outside of a capture step.
var ErrNotCalibrating = errors.New("not calibrating; send 'cal' first")

// Wizard drives the two-step calibration: capture center, then sweep the
// stick while running extrema are tracked, then persist. It works on its
// own copy of the calibration and hands the result back on completion so
// an abandoned run never corrupts the live parameters.
type Wizard struct {
	state   WizardState
	working Calibration
}

// State returns the current wizard step.
func (w *Wizard) State() WizardState {
	return w.state
}

// Begin starts a calibration run from the current live parameters.
// Restarting mid-run just begins again at center capture.
func (w *Wizard) Begin(current Calibration) {
	w.working = current
	w.state = WizardCenter
}

// Observe folds one raw sample into the working range. It only has an
// effect during extremes capture: min can only shrink, max only grow.
func (w *Wizard) Observe(rawX, rawY int) {
	if w.state != WizardExtremes {
		return
	}
	w.working.X.Min = min(w.working.X.Min, rawX)
	w.working.X.Max = max(w.working.X.Max, rawX)
	w.working.Y.Min = min(w.working.Y.Min, rawY)
	w.working.Y.Max = max(w.working.Y.Max, rawY)
}

// Range exposes the working calibration for debug telemetry.
func (w *Wizard) Range() Calibration {
	return w.working
}

// Advance moves to the next step using the current raw sample.
//
// From center capture it snapshots the sample as both centers and
// collapses min=max=center so extremes capture starts from a point and
// only ever widens. From extremes capture it completes, returning
// done=true and the finished calibration for the caller to persist.
func (w *Wizard) Advance(rawX, rawY int) (cal Calibration, done bool, err error) {
	switch w.state {
	case WizardCenter:
		w.working.X.Center = rawX
		w.working.X.Min, w.working.X.Max = rawX, rawX
		w.working.Y.Center = rawY
		w.working.Y.Min, w.working.Y.Max = rawY, rawY
		w.state = WizardExtremes
		return w.working, false, nil
	case WizardExtremes:
		w.state = WizardIdle
		return w.working, true, nil
	default:
		return Calibration{}, false, ErrNotCalibrating
	}
}
