package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func galleryServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/videos", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestListVideos_Normalizes(t *testing.T) {
	srv := galleryServer(t, http.StatusOK, `[
		{"id":"1","title":"New","publicId":"p1","originalSize":"100","compressedSize":"40","duration":61.2,"createdAt":"2024-05-31T12:00:00Z"},
		{"id":"2","title":"Legacy","publicId":"p2","originalsize":"200","compressedsize":"50"}
	]`)

	videos, err := New(srv.URL, WithClock(func() time.Time { return fixedNow })).ListVideos(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 2)

	assert.Equal(t, "100", videos[0].OriginalSize)
	require.NotNil(t, videos[0].Duration)
	assert.Equal(t, 61.2, *videos[0].Duration)
	assert.Equal(t, time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC), videos[0].CreatedAt)

	legacy := videos[1]
	assert.Equal(t, "200", legacy.OriginalSize)
	assert.Equal(t, "50", legacy.CompressedSize)
	assert.Equal(t, "", legacy.Description)
	assert.Equal(t, "", legacy.Utility)
	assert.Nil(t, legacy.Duration)
	assert.Equal(t, fixedNow, legacy.CreatedAt)
	assert.Equal(t, fixedNow, legacy.UpdatedAt)
}

func TestListVideos_Empty(t *testing.T) {
	srv := galleryServer(t, http.StatusOK, `[]`)

	videos, err := New(srv.URL).ListVideos(context.Background())
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestListVideos_NotSequence(t *testing.T) {
	srv := galleryServer(t, http.StatusOK, `{"videos":[]}`)

	_, err := New(srv.URL).ListVideos(context.Background())
	assert.ErrorIs(t, err, ErrNotSequence)
	assert.EqualError(t, err, "error 404")
}

func TestListVideos_ServerError(t *testing.T) {
	srv := galleryServer(t, http.StatusInternalServerError, `{"error":"boom"}`)

	_, err := New(srv.URL).ListVideos(context.Background())
	assert.True(t, errors.Is(err, ErrNotSequence))
}

func TestNormalize_NilRecord(t *testing.T) {
	v := Normalize(nil, fixedNow)
	assert.Equal(t, "", v.PublicID)
	assert.Equal(t, "", v.OriginalSize)
	assert.Nil(t, v.Duration)
	assert.Equal(t, fixedNow, v.CreatedAt)
}

func TestNormalize_NumericSizes(t *testing.T) {
	v := Normalize(map[string]any{"originalSize": float64(1024), "duration": "7.5"}, fixedNow)
	assert.Equal(t, "1024", v.OriginalSize)
	require.NotNil(t, v.Duration)
	assert.Equal(t, 7.5, *v.Duration)
}

func TestListVideos_SignInRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/videos" {
			t.Errorf("redirect followed to %s", r.URL.Path)
		}
		http.Redirect(w, r, "/sign-in", http.StatusTemporaryRedirect)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListVideos(context.Background())
	assert.ErrorIs(t, err, ErrSignInRequired)
	assert.ErrorIs(t, err, ErrNotSequence)
}
