package media

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudinary_NotConfigured(t *testing.T) {
	c, err := NewCloudinary(Credentials{CloudName: "demo"})
	require.NoError(t, err)
	assert.False(t, c.Configured())

	_, err = c.Upload(context.Background(), strings.NewReader("x"), UploadOptions{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCloudinary_Upload(t *testing.T) {
	var gotPath, gotResourceType, gotFolder string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			gotResourceType = r.FormValue("resource_type")
			gotFolder = r.FormValue("folder")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"public_id":"video-uploader/abc","bytes":2048,"resource_type":"video","duration":12.5}`))
	}))
	defer srv.Close()

	c, err := NewCloudinary(Credentials{CloudName: "demo", APIKey: "key", APISecret: "secret"}, WithUploadPrefix(srv.URL))
	require.NoError(t, err)
	require.True(t, c.Configured())

	res, err := c.Upload(context.Background(), bytes.NewReader([]byte("fake mp4 bytes")), UploadOptions{
		ResourceType:   ResourceVideo,
		Folder:         "video-uploader",
		Transformation: VideoTransformation,
	})
	require.NoError(t, err)
	assert.Equal(t, "video-uploader/abc", res.PublicID)
	assert.Equal(t, int64(2048), res.Bytes)
	assert.Equal(t, 12.5, res.Duration)
	assert.Equal(t, "/v1_1/demo/auto/upload", gotPath)
	assert.Equal(t, "video", gotResourceType)
	assert.Equal(t, "video-uploader", gotFolder)
}

func TestCloudinary_UploadRemoteError(t *testing.T) {
	var hit bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid Signature"}}`))
	}))
	defer srv.Close()

	c, err := NewCloudinary(Credentials{CloudName: "demo", APIKey: "key", APISecret: "secret"}, WithUploadPrefix(srv.URL))
	require.NoError(t, err)

	_, err = c.Upload(context.Background(), strings.NewReader("x"), UploadOptions{ResourceType: ResourceVideo})
	require.Error(t, err)
	assert.True(t, hit)

	var remote *RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, "Invalid Signature", remote.Message)
}

func TestReportedDuration(t *testing.T) {
	type topLevel struct {
		Duration float64 `json:"duration"`
	}
	type nested struct {
		Response any
	}

	assert.Equal(t, 12.5, reportedDuration(topLevel{Duration: 12.5}))
	assert.Equal(t, 7.25, reportedDuration(nested{Response: map[string]any{"duration": 7.25}}))
	assert.Equal(t, 0.0, reportedDuration(nested{Response: "not an object"}))
	assert.Equal(t, 0.0, reportedDuration(nested{}))
	assert.Equal(t, 0.0, reportedDuration(func() {}))
}

func TestRemoteMessage(t *testing.T) {
	err := &RemoteError{Message: "File size too large"}
	assert.Equal(t, "File size too large", RemoteMessage(err))
	assert.Equal(t, "", RemoteMessage(errors.New("plain")))
	assert.Contains(t, (&RemoteError{Err: errors.New("eof")}).Error(), "eof")
}
