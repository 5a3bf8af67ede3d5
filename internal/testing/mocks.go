package testing

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockObjectPutter is a mock of the object store used by the s3 submit
// handler.
type MockObjectPutter struct {
	mock.Mock
}

// PutObject records the upload.
func (m *MockObjectPutter) PutObject(ctx context.Context, bucket, key, contentType string, data []byte) error {
	args := m.Called(ctx, bucket, key, contentType, data)
	return args.Error(0)
}

// EnsureBucket records the bucket check.
func (m *MockObjectPutter) EnsureBucket(ctx context.Context, bucket string) error {
	args := m.Called(ctx, bucket)
	return args.Error(0)
}
