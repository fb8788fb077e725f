package image

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reelvault/internal/media"
	"reelvault/internal/media/mediatest"
	"reelvault/internal/pkg/logger"
	"reelvault/internal/pkg/metrics"
)

func setupRouter(t *testing.T, tr media.Transformer, maxBytes int64, userID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	delivery, err := media.NewDelivery("demo")
	require.NoError(t, err)
	svc := NewService(tr, delivery, "next-cloudinary-uploads", metrics.NewUploadMetrics(nil), logger.Nop())

	r := gin.New()
	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	})
	RegisterRoutes(api, NewHandler(svc, maxBytes))
	return r
}

func postImage(t *testing.T, r http.Handler, content []byte, withFile bool) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if withFile {
		part, err := w.CreateFormFile("file", "photo.png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, w.WriteField("note", "nothing here"))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/image-upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestImageUpload_Success(t *testing.T) {
	tr := new(mediatest.MockTransformer)
	tr.On("Configured").Return(true)
	tr.On("Upload", mock.Anything, media.UploadOptions{
		ResourceType: media.ResourceImage,
		Folder:       "next-cloudinary-uploads",
	}).Return(&media.UploadResult{PublicID: "next-cloudinary-uploads/pic"}, nil).Once()

	r := setupRouter(t, tr, 0, "user_1")
	w := postImage(t, r, []byte("png bytes"), true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"publicId":"next-cloudinary-uploads/pic"}`, w.Body.String())
	tr.AssertExpectations(t)
}

func TestImageUpload_NoFile(t *testing.T) {
	tr := new(mediatest.MockTransformer)
	tr.On("Configured").Return(true)

	r := setupRouter(t, tr, 0, "user_1")
	w := postImage(t, r, nil, false)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No file provided")
	tr.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestImageUpload_TooLarge(t *testing.T) {
	tr := new(mediatest.MockTransformer)
	tr.On("Configured").Return(true)

	r := setupRouter(t, tr, 8, "user_1")
	w := postImage(t, r, bytes.Repeat([]byte("x"), 32), true)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestImageUpload_Unauthorized(t *testing.T) {
	tr := new(mediatest.MockTransformer)
	tr.On("Configured").Return(true)

	r := setupRouter(t, tr, 0, "")
	w := postImage(t, r, []byte("x"), true)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestImageUpload_NotConfigured(t *testing.T) {
	tr := new(mediatest.MockTransformer)
	tr.On("Configured").Return(false)

	r := setupRouter(t, tr, 0, "user_1")
	w := postImage(t, r, []byte("x"), true)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "CONFIGURATION_MISSING")
}

func TestImageUpload_RemoteFailure(t *testing.T) {
	tr := new(mediatest.MockTransformer)
	tr.On("Configured").Return(true)
	tr.On("Upload", mock.Anything, mock.Anything).Return(nil, &media.RemoteError{}).Once()

	r := setupRouter(t, tr, 0, "user_1")
	w := postImage(t, r, []byte("x"), true)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Upload image failed")
}

func TestSocialFormats(t *testing.T) {
	r := setupRouter(t, new(mediatest.MockTransformer), 0, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/social-formats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var plain []FormatLink
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plain))
	require.Len(t, plain, len(media.SocialFormats))
	assert.Empty(t, plain[0].URL)
	assert.Equal(t, "instagram_square_(1:1).png", plain[0].Filename)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/social-formats?publicId=next-cloudinary-uploads/pic", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var linked []FormatLink
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &linked))
	for _, l := range linked {
		assert.Contains(t, l.URL, "next-cloudinary-uploads/pic")
		assert.NotZero(t, l.Width)
	}
}
