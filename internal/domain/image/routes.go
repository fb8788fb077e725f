package image

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/image-upload", h.Upload)
	r.GET("/social-formats", h.SocialFormats)
}
