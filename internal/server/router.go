// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"reelvault/internal/config"
	"reelvault/internal/domain/image"
	"reelvault/internal/domain/video"
	"reelvault/internal/media"
	"reelvault/internal/middleware"
	"reelvault/internal/pkg/logger"
	"reelvault/internal/pkg/metrics"
	"reelvault/internal/pkg/response"
)

type Deps struct {
	Config      *config.Config
	DB          *gorm.DB
	Transformer media.Transformer
	// Delivery is optional; without it social format links carry no URLs.
	Delivery *media.Delivery
	Tokens   middleware.TokenVerifier
	Metrics  *metrics.UploadMetrics
	Gatherer prometheus.Gatherer
	Log      *logger.Logger
}

func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	if d.Log == nil {
		d.Log = logger.Nop()
	}

	r := gin.New()
	r.Use(
		middleware.ErrorLogger(d.Log),
		middleware.RequestID(d.Log),
		middleware.AccessLog(d.Log),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Identify(d.Tokens),
		middleware.NewGate(middleware.GateConfig{
			PublicRoutes:    cfg.Gate.PublicRoutes,
			PublicAPIRoutes: cfg.Gate.PublicAPIRoutes,
			LandingPath:     cfg.Gate.LandingPath,
			SignInPath:      cfg.Gate.SignInPath,
			Bypass:          cfg.Gate.Bypass,
		}).Handler(),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	videoService := video.NewService(video.NewRepository(d.DB), d.Transformer, cfg.Cloudinary.VideoFolder, d.Metrics, d.Log)
	imageService := image.NewService(d.Transformer, d.Delivery, cfg.Cloudinary.ImageFolder, d.Metrics, d.Log)

	api := r.Group("/api")
	{
		video.RegisterRoutes(api, video.NewHandler(videoService, cfg.Upload.MaxVideoBytes))
		image.RegisterRoutes(api, image.NewHandler(imageService, cfg.Upload.MaxImageBytes))
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})
	return r
}
