package image

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
)

const (
	multipartOverhead     = 1 << 20
	DefaultMaxUploadBytes = 10 * 1024 * 1024
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
// @Summary Upload an image for social formatting
// @Tags Images
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 200 {object} map[string]interface{}
// @Failure 400,401,413,500 {object} map[string]interface{}
// @Router /image-upload [post]
func (h *Handler) Upload(c *gin.Context) {
	if !h.service.Configured() {
		h.service.Reject(metrics.OutcomeNotConfigured)
		response.Error(c, http.StatusInternalServerError, response.CodeConfigurationMissing, "Cloudinary credentials not found")
		return
	}
	if c.GetString("user_id") == "" {
		h.service.Reject(metrics.OutcomeRejected)
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Unauthorized")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			h.tooLarge(c)
			return
		}
		h.service.Reject(metrics.OutcomeRejected)
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "No file provided")
		return
	}
	if fileHeader.Size == 0 {
		h.service.Reject(metrics.OutcomeRejected)
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "No file provided")
		return
	}
	if fileHeader.Size > h.maxBytes {
		h.tooLarge(c)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	publicID, err := h.service.Upload(c.Request.Context(), file)
	if err != nil {
		if errors.Is(err, media.ErrNotConfigured) {
			response.Error(c, http.StatusInternalServerError, response.CodeConfigurationMissing, "Cloudinary credentials not found")
			return
		}
		msg := media.RemoteMessage(err)
		if msg == "" {
			msg = "Upload image failed"
		}
		response.Error(c, http.StatusInternalServerError, response.CodeRemoteService, msg)
		return
	}

	c.JSON(http.StatusOK, gin.H{"publicId": publicID})
}

// SocialFormats godoc
// @Summary List social media presets
// @Tags Images
// @Produce json
// @Param publicId query string false "Uploaded image public id"
// @Success 200 {array} FormatLink
// @Router /social-formats [get]
func (h *Handler) SocialFormats(c *gin.Context) {
	formats, err := h.service.Formats(strings.TrimSpace(c.Query("publicId")))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, "Failed to build format links")
		return
	}
	c.JSON(http.StatusOK, formats)
}

func (h *Handler) tooLarge(c *gin.Context) {
	h.service.Reject(metrics.OutcomeRejected)
	response.Error(c, http.StatusRequestEntityTooLarge, response.CodeFileTooLarge,
		fmt.Sprintf("File exceeds the maximum size of %s", humanize.IBytes(uint64(h.maxBytes))))
}
