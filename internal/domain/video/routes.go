package video

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the upload and listing endpoints under /api.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/video-upload", h.Upload)
	r.GET("/videos", h.List)
}
