// Package media talks to the external media service: it uploads raw bytes for
// processing and derives delivery URLs from the returned public ids.
package media

import (
	"context"
	"errors"
	"io"
)

const (
	ResourceVideo = "video"
	ResourceImage = "image"

	// VideoTransformation asks the service for automatic quality and mp4 output.
	VideoTransformation = "q_auto,f_mp4"
)

var ErrNotConfigured = errors.New("media service credentials are not configured")

// UploadOptions is the processing profile sent with an upload.
type UploadOptions struct {
	ResourceType   string
	Folder         string
	Transformation string
}

// UploadResult is what the media service reports for a stored asset.
type UploadResult struct {
	PublicID string
	Bytes    int64
	Duration float64 // seconds; zero for images or when not reported
}

// Transformer is the Media Transform Client.
type Transformer interface {
	// Configured reports whether credentials are present. Callers check it
	// before doing any per-request work.
	Configured() bool
	Upload(ctx context.Context, r io.Reader, opts UploadOptions) (*UploadResult, error)
}

// RemoteError is a failure reported by the media service. Message is safe to
// show to the caller.
type RemoteError struct {
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return "media service: " + e.Message
	}
	if e.Err != nil {
		return "media service: " + e.Err.Error()
	}
	return "media service: upload failed"
}

func (e *RemoteError) Unwrap() error { return e.Err }

// RemoteMessage returns the remote failure message carried by err, if any.
func RemoteMessage(err error) string {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Message
	}
	return ""
}
