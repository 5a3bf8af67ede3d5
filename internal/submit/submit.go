package submit

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/imamik/stepform/internal/config"
	objstore "github.com/imamik/stepform/internal/platform/s3"
	"github.com/imamik/stepform/internal/stepper"
)

// Function variable for dependency injection in tests.
var newObjectStore = func(ctx context.Context, opts objstore.Options) (ObjectPutter, error) {
	return objstore.NewClient(ctx, opts)
}

// New returns the handler selected by settings.Mode.
func New(ctx context.Context, settings config.SubmitSettings, log logr.Logger) (stepper.SubmitFunc, error) {
	switch settings.Mode {
	case config.SubmitLog:
		return Log(log, settings.Delay), nil
	case config.SubmitFile:
		return File(settings.Output, log), nil
	case config.SubmitS3:
		s := settings.S3
		store, err := newObjectStore(ctx, objstore.Options{
			Endpoint:  s.Endpoint,
			Region:    s.Region,
			AccessKey: s.AccessKey,
			SecretKey: s.SecretKey,
			PathStyle: s.PathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create object store client: %w", err)
		}
		return S3(store, s, log), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, settings.Mode)
}
