package stepper

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/stepform/internal/form"
)

// Validator checks the values of a step. *schema.Schema implements it.
type Validator interface {
	Validate(values map[string]any) error
}

// Step is one page of the wizard.
type Step struct {
	Label  string
	Fields []form.Field
	// Schema is optional; a step without one always validates.
	Schema Validator
}

// FieldNames returns the names of the step's fields in order.
func (s Step) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// SubmitFunc receives the accumulated values when the last step is advanced.
type SubmitFunc func(ctx context.Context, values form.Values) error

// Transition is the outcome of a successful Advance.
type Transition int

const (
	// Advanced means the next step is now active.
	Advanced Transition = iota + 1
	// SubmitRequested means the last step validated and a submit is pending.
	SubmitRequested
)

func (t Transition) String() string {
	switch t {
	case Advanced:
		return "advanced"
	case SubmitRequested:
		return "submit-requested"
	}
	return fmt.Sprintf("transition(%d)", int(t))
}

// Observer is notified of every state change. Implementations must not
// call back into the Sequencer.
type Observer interface {
	Advanced(from, to int)
	Retreated(from, to int)
	ValidationFailed(step int, err error)
	SubmitResolved(elapsed time.Duration, err error)
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLogger sets the logger used for transition logs.
func WithLogger(log logr.Logger) Option {
	return func(s *Sequencer) {
		s.log = log
	}
}

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(s *Sequencer) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// Sequencer owns the active step index and the transitions between steps.
type Sequencer struct {
	steps  []Step
	submit SubmitFunc

	active        int
	completed     bool
	pending       bool
	submitStarted time.Time
	lastSubmitErr error

	log       logr.Logger
	observers []Observer
	now       func() time.Time
}

// New creates a Sequencer positioned on the first step.
func New(steps []Step, submit SubmitFunc, opts ...Option) (*Sequencer, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	if submit == nil {
		return nil, ErrNoSubmitHandler
	}

	s := &Sequencer{
		steps:  append([]Step(nil), steps...),
		submit: submit,
		log:    logr.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Steps returns a copy of the step list.
func (s *Sequencer) Steps() []Step {
	return append([]Step(nil), s.steps...)
}

// Len returns the number of steps.
func (s *Sequencer) Len() int { return len(s.steps) }

// Active returns the index of the active step.
func (s *Sequencer) Active() int { return s.active }

// ActiveStep returns the active step.
func (s *Sequencer) ActiveStep() Step { return s.steps[s.active] }

// IsLast reports whether the active step is the last one.
func (s *Sequencer) IsLast() bool { return s.active == len(s.steps)-1 }

// Completed reports whether the final submit succeeded.
func (s *Sequencer) Completed() bool { return s.completed }

// Pending reports whether a submit is in progress.
func (s *Sequencer) Pending() bool { return s.pending }

// LastSubmitErr returns the error of the most recent failed submit, if any.
func (s *Sequencer) LastSubmitErr() error { return s.lastSubmitErr }

// StepDone reports whether step i should be shown as done.
func (s *Sequencer) StepDone(i int) bool {
	return i < s.active || s.completed
}

// Advance validates values against the active step's schema. On success it
// activates the next step, or requests a submit when the active step is the
// last one. On failure it returns the validation error and keeps the state.
func (s *Sequencer) Advance(values form.Values) (Transition, error) {
	if err := s.guard(); err != nil {
		return 0, err
	}

	step := s.steps[s.active]
	if step.Schema != nil {
		if err := step.Schema.Validate(values); err != nil {
			s.log.V(1).Info("step validation failed", "step", step.Label, "index", s.active, "error", err.Error())
			for _, o := range s.observers {
				o.ValidationFailed(s.active, err)
			}
			return 0, err
		}
	}

	if s.IsLast() {
		s.pending = true
		s.lastSubmitErr = nil
		s.submitStarted = s.now()
		s.log.V(1).Info("submit requested", "step", step.Label)
		return SubmitRequested, nil
	}

	from := s.active
	s.active++
	s.log.V(1).Info("advanced", "from", step.Label, "to", s.steps[s.active].Label)
	for _, o := range s.observers {
		o.Advanced(from, s.active)
	}
	return Advanced, nil
}

// Retreat activates the previous step without validating.
func (s *Sequencer) Retreat() error {
	if err := s.guard(); err != nil {
		return err
	}
	if s.active == 0 {
		return ErrFirstStep
	}

	from := s.active
	s.active--
	s.log.V(1).Info("retreated", "from", s.steps[from].Label, "to", s.steps[s.active].Label)
	for _, o := range s.observers {
		o.Retreated(from, s.active)
	}
	return nil
}

// RunSubmit calls the submit handler. It reads and writes no sequencer
// state, so it can run outside the event loop.
func (s *Sequencer) RunSubmit(ctx context.Context, values form.Values) error {
	return s.submit(ctx, values)
}

// ResolveSubmit ends the pending submit with the handler's result. A nil
// err completes the wizard. A non-nil err leaves the wizard on the last
// step and is returned unchanged; the submit is not retried.
func (s *Sequencer) ResolveSubmit(err error) error {
	if !s.pending {
		return ErrNoSubmitPending
	}

	s.pending = false
	elapsed := s.now().Sub(s.submitStarted)
	for _, o := range s.observers {
		o.SubmitResolved(elapsed, err)
	}

	if err != nil {
		s.lastSubmitErr = err
		s.log.Error(err, "submit failed", "elapsed", elapsed.String())
		return err
	}

	s.completed = true
	s.log.V(1).Info("submit completed", "elapsed", elapsed.String())
	return nil
}

// Submit runs the handler and resolves the pending submit in one call.
func (s *Sequencer) Submit(ctx context.Context, values form.Values) error {
	if !s.pending {
		return ErrNoSubmitPending
	}
	return s.ResolveSubmit(s.RunSubmit(ctx, values))
}

func (s *Sequencer) guard() error {
	if s.completed {
		return ErrCompleted
	}
	if s.pending {
		return ErrSubmitPending
	}
	return nil
}
