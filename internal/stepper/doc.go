// Package stepper implements the state machine behind a multi-step form.
//
// A Sequencer owns the index of the active step. Advance validates the
// active step's values against that step's schema only and moves forward;
// on the last step it requests a submit instead. Retreat moves back without
// validating. While a submit is pending both transitions are refused, so a
// second submit cannot start before the first one resolves.
//
// The Sequencer is not safe for concurrent use. RunSubmit is the exception:
// it only calls the submit handler and may run off the event loop, with the
// result fed back through ResolveSubmit.
package stepper
