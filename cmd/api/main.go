package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"reelvault/internal/config"
	"reelvault/internal/database"
	"reelvault/internal/domain/video"
	"reelvault/internal/media"
	"reelvault/internal/pkg/jwt"
	"reelvault/internal/pkg/logger"
	"reelvault/internal/pkg/metrics"
	"reelvault/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{ServiceName: "reelvault-api"}).Error(context.Background(), "config load failed", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		ServiceName: "reelvault-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   !cfg.App.IsProd(),
	})
	ctx := context.Background()

	if cfg.App.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DB.URL)
	if err != nil {
		log.Error(ctx, "database connect failed", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := db.AutoMigrate(&video.Video{}); err != nil {
		log.Error(ctx, "auto migrate failed", err)
		os.Exit(1)
	}

	transformer, err := media.NewCloudinary(media.Credentials{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
	})
	if err != nil {
		log.Error(ctx, "cloudinary init failed", err)
		os.Exit(1)
	}
	if !transformer.Configured() {
		log.Warn(ctx, "cloudinary credentials missing, uploads will fail")
	}

	var delivery *media.Delivery
	if cfg.Cloudinary.CloudName != "" {
		if delivery, err = media.NewDelivery(cfg.Cloudinary.CloudName); err != nil {
			log.Error(ctx, "delivery init failed", err)
			os.Exit(1)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := server.NewRouter(server.Deps{
		Config:      cfg,
		DB:          db,
		Transformer: transformer,
		Delivery:    delivery,
		Tokens:      jwt.New(cfg.JWT.Secret, 24*time.Hour),
		Metrics:     metrics.NewUploadMetrics(registry),
		Gatherer:    registry,
		Log:         log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Event(ctx, logger.LevelInfo).Str("addr", srv.Addr).Str("db", database.Dialect(db)).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "server stopped", err)
			os.Exit(1)
		}
	}()

	stop, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	shutdownCtx, cancelShutdown := context.WithTimeout(ctx, 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "graceful shutdown failed", err)
	}
	log.Info(ctx, "server stopped")
}
