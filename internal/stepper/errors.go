package stepper

import "errors"

// Transition errors.
var (
	ErrNoSteps         = errors.New("at least one step is required")
	ErrNoSubmitHandler = errors.New("submit handler is required")
	ErrFirstStep       = errors.New("already at the first step")
	ErrSubmitPending   = errors.New("submit already in progress")
	ErrNoSubmitPending = errors.New("no submit in progress")
	ErrCompleted       = errors.New("wizard already completed")
)
