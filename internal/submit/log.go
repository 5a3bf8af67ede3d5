package submit

import (
	"context"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/stepform/internal/form"
	"github.com/imamik/stepform/internal/stepper"
)

// Log returns a handler that waits for delay and then logs the values.
// Cancelling the context during the wait aborts the submit.
func Log(log logr.Logger, delay time.Duration) stepper.SubmitFunc {
	return func(ctx context.Context, values form.Values) error {
		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}

		log.Info("form submitted", "values", map[string]any(values))
		return nil
	}
}
