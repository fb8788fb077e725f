package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Credentials identify the Cloudinary account.
type Credentials struct {
	CloudName string
	APIKey    string
	APISecret string
}

func (c Credentials) complete() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Cloudinary uploads through the Cloudinary upload API.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

type CloudinaryOption func(*cloudinary.Cloudinary)

// WithUploadPrefix points uploads at another API host. The uploader holds its
// own copy of the configuration, so both are updated.
func WithUploadPrefix(prefix string) CloudinaryOption {
	return func(c *cloudinary.Cloudinary) {
		c.Config.API.UploadPrefix = prefix
		c.Upload.Config.API.UploadPrefix = prefix
	}
}

// NewCloudinary returns an adapter. Incomplete credentials are not an error:
// the adapter reports Configured() == false and refuses uploads.
func NewCloudinary(creds Credentials, opts ...CloudinaryOption) (*Cloudinary, error) {
	if !creds.complete() {
		return &Cloudinary{}, nil
	}
	cld, err := cloudinary.NewFromParams(creds.CloudName, creds.APIKey, creds.APISecret)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	for _, opt := range opts {
		opt(cld)
	}
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Configured() bool {
	return c != nil && c.cld != nil
}

func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, opts UploadOptions) (*UploadResult, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		ResourceType:   opts.ResourceType,
		Folder:         opts.Folder,
		Transformation: opts.Transformation,
	})
	if res != nil && res.Error.Message != "" {
		return nil, &RemoteError{Message: res.Error.Message, Err: err}
	}
	if err != nil {
		return nil, &RemoteError{Message: err.Error(), Err: err}
	}
	if res == nil || res.PublicID == "" {
		return nil, &RemoteError{Err: errors.New("response carried no public id")}
	}

	return &UploadResult{
		PublicID: res.PublicID,
		Bytes:    int64(res.Bytes),
		Duration: reportedDuration(res),
	}, nil
}

// reportedDuration reads "duration" from an upload result. Video durations are
// only present in the raw payload kept on the result, so the lookup goes
// through its JSON form and accepts either a top-level or a nested value.
func reportedDuration(res any) float64 {
	raw, err := json.Marshal(res)
	if err != nil {
		return 0
	}
	var probe struct {
		Duration *float64       `json:"duration"`
		Response json.RawMessage `json:"Response"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0
	}
	if probe.Duration != nil && *probe.Duration > 0 {
		return *probe.Duration
	}
	var nested struct {
		Duration *float64 `json:"duration"`
	}
	if len(probe.Response) == 0 || json.Unmarshal(probe.Response, &nested) != nil {
		return 0
	}
	if nested.Duration != nil && *nested.Duration > 0 {
		return *nested.Duration
	}
	return 0
}
