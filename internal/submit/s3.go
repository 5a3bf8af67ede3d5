package submit

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/stepform/internal/config"
	"github.com/imamik/stepform/internal/form"
	objstore "github.com/imamik/stepform/internal/platform/s3"
	"github.com/imamik/stepform/internal/stepper"
	"github.com/imamik/stepform/internal/util/retry"
)

// ObjectPutter is the part of the object store client the s3 handler uses.
// *s3.Client from internal/platform/s3 implements it.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucket, key, contentType string, data []byte) error
	EnsureBucket(ctx context.Context, bucket string) error
}

// S3 returns a handler that uploads the values as a YAML object. Transient
// failures are retried with backoff; permanent ones fail immediately.
func S3(store ObjectPutter, settings config.S3Settings, log logr.Logger, opts ...retry.Option) stepper.SubmitFunc {
	return func(ctx context.Context, values form.Values) error {
		at := now()
		data, err := encode(values, at)
		if err != nil {
			return err
		}
		key := objectKey(settings.Prefix, at)

		retryOpts := append([]retry.Option{
			retry.WithOnRetry(func(attempt int, err error, wait time.Duration) {
				log.V(1).Info("upload failed, retrying", "attempt", attempt, "wait", wait.String(), "error", err.Error())
			}),
		}, opts...)

		err = retry.Do(ctx, func(ctx context.Context) error {
			if settings.CreateBucket {
				if err := store.EnsureBucket(ctx, settings.Bucket); err != nil {
					return classify(err)
				}
			}
			return classify(store.PutObject(ctx, settings.Bucket, key, contentType, data))
		}, retryOpts...)
		if err != nil {
			return fmt.Errorf("failed to upload submission: %w", err)
		}

		log.Info("submission uploaded", "bucket", settings.Bucket, "key", key)
		return nil
	}
}

// objectKey returns prefix/submission-<UTC timestamp>.yaml.
func objectKey(prefix string, at time.Time) string {
	return path.Join(prefix, "submission-"+at.UTC().Format("20060102T150405Z")+".yaml")
}

func classify(err error) error {
	if err == nil || objstore.IsRetryable(err) {
		return err
	}
	return retry.Fatal(err)
}
