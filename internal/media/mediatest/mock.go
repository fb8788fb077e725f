// Package mediatest provides a testify mock of media.Transformer.
package mediatest

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"reelvault/internal/media"
)

type MockTransformer struct {
	mock.Mock
}

func (m *MockTransformer) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

// Upload drains r so callers see the same read behaviour as a real upload.
func (m *MockTransformer) Upload(ctx context.Context, r io.Reader, opts media.UploadOptions) (*media.UploadResult, error) {
	if r != nil {
		_, _ = io.Copy(io.Discard, r)
	}
	args := m.Called(ctx, opts)
	if res, ok := args.Get(0).(*media.UploadResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}
