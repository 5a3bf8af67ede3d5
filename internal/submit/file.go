package submit

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/stepform/internal/form"
	"github.com/imamik/stepform/internal/stepper"
)

// Function variable for dependency injection in tests.
var now = time.Now

// File returns a handler that writes the values as YAML to path, replacing
// any previous submission.
func File(path string, log logr.Logger) stepper.SubmitFunc {
	return func(ctx context.Context, values form.Values) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := encode(values, now())
		if err != nil {
			return err
		}

		if err := os.WriteFile(path, data, 0600); err != nil {
			return fmt.Errorf("failed to write submission: %w", err)
		}

		log.Info("submission written", "path", path)
		return nil
	}
}
