// Package tui runs a form wizard as a Bubble Tea terminal UI.
//
// Each step is rendered as a huh form bound to a shared form.State. The
// step transitions, validation and the final submit are delegated to a
// stepper.Sequencer.
package tui

// submitDoneMsg carries the result of the submit handler back to the
// event loop.
type submitDoneMsg struct {
	err error
}
