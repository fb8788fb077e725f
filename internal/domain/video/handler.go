package video

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"reelvault/internal/media"
	"reelvault/internal/pkg/metrics"
	"reelvault/internal/pkg/response"
	"reelvault/internal/pkg/validator"
)

const (
	// Room for multipart boundaries and the text fields on top of the file limit.
	multipartOverhead = 1 << 20
	multipartMemory   = 32 << 20

	DefaultMaxUploadBytes = 70 * 1024 * 1024
)

type Handler struct {
	service  *Service
	maxBytes int64
}

func NewHandler(service *Service, maxBytes int64) *Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &Handler{service: service, maxBytes: maxBytes}
}

// Upload godoc
// @Summary Upload a video
// @Description Sends the video to the media service for compression and stores the resulting record.
// @Tags Videos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Video file"
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param originalsize formData string true "Original size in bytes"
// @Success 201 {object} Record
// @Failure 400,401,409,413,500 {object} map[string]interface{}
// @Router /video-upload [post]
func (h *Handler) Upload(c *gin.Context) {
	if !h.service.Configured() {
		h.service.Reject(metrics.OutcomeNotConfigured)
		response.Error(c, http.StatusInternalServerError, response.CodeConfigurationMissing, "Cloudinary credentials not found")
		return
	}

	userID := c.GetString("user_id")
	if userID == "" {
		h.service.Reject(metrics.OutcomeRejected)
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Unauthorized")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil && isTooLarge(err) {
		h.rejectTooLarge(c)
		return
	}

	form := readForm(c.Request)
	if form.File != nil && form.File.Size > h.maxBytes {
		h.rejectTooLarge(c)
		return
	}

	if errs := validator.Validate(form); len(errs) > 0 {
		h.service.Reject(metrics.OutcomeRejected)
		missing := make([]string, 0, len(errs))
		for _, field := range validator.Fields(errs) {
			missing = append(missing, formFieldNames[field])
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, response.CodeValidation, "Missing required fields", gin.H{"missing": missing})
		return
	}

	originalSize, err := ParseOriginalSize(form.OriginalSize)
	if err != nil {
		h.service.Reject(metrics.OutcomeRejected)
		response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
		return
	}

	file, err := form.File.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	v, err := h.service.Upload(c.Request.Context(), UploadInput{
		UserID:       userID,
		Title:        form.Title,
		Description:  form.Description,
		OriginalSize: originalSize,
		File:         file,
	})
	if err != nil {
		h.writeUploadError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ToRecord(v))
}

// List godoc
// @Summary List uploaded videos
// @Tags Videos
// @Produce json
// @Success 200 {array} Record
// @Failure 500 {object} map[string]interface{}
// @Router /videos [get]
func (h *Handler) List(c *gin.Context) {
	videos, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodePersistence, "Failed to fetch videos")
		return
	}
	c.JSON(http.StatusOK, ToRecords(videos))
}

func (h *Handler) writeUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, media.ErrNotConfigured):
		response.Error(c, http.StatusInternalServerError, response.CodeConfigurationMissing, "Cloudinary credentials not found")
	case errors.Is(err, ErrDuplicatePublicID):
		response.Error(c, http.StatusConflict, response.CodeConflict, err.Error())
	case errors.Is(err, ErrPersistence):
		response.Error(c, http.StatusInternalServerError, response.CodePersistence, "Failed to save video")
	default:
		msg := media.RemoteMessage(err)
		if msg == "" {
			msg = "Internal Server Error"
		}
		response.Error(c, http.StatusInternalServerError, response.CodeRemoteService, msg)
	}
}

func (h *Handler) rejectTooLarge(c *gin.Context) {
	h.service.Reject(metrics.OutcomeRejected)
	response.Error(c, http.StatusRequestEntityTooLarge, response.CodeFileTooLarge,
		fmt.Sprintf("File exceeds the maximum size of %s", humanize.IBytes(uint64(h.maxBytes))))
}

func readForm(r *http.Request) UploadForm {
	var form UploadForm
	mf := r.MultipartForm
	if mf == nil {
		return form
	}
	// A zero-byte file counts as missing.
	if files := mf.File["file"]; len(files) > 0 && files[0].Size > 0 {
		form.File = files[0]
	}
	form.Title = firstValue(mf.Value, "title")
	form.Description = firstValue(mf.Value, "description")
	form.OriginalSize = firstValue(mf.Value, "originalsize", "originalSize")
	return form
}

func firstValue(values map[string][]string, keys ...string) string {
	for _, key := range keys {
		if v := values[key]; len(v) > 0 {
			if trimmed := strings.TrimSpace(v[0]); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
