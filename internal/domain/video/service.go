package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"reelvault/internal/media"
	"reelvault/internal/pkg/logger"
	"reelvault/internal/pkg/metrics"
)

const metricsKind = "video"

// UploadInput is a validated submission ready for processing.
type UploadInput struct {
	UserID       string
	Title        string
	Description  string
	OriginalSize int64
	File         io.Reader
}

// Service sends the file to the media service, then records the result.
type Service struct {
	repo        Repository
	transformer media.Transformer
	folder      string
	metrics     *metrics.UploadMetrics
	log         *logger.Logger
}

func NewService(repo Repository, transformer media.Transformer, folder string, m *metrics.UploadMetrics, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:        repo,
		transformer: transformer,
		folder:      folder,
		metrics:     m,
		log:         log,
	}
}

// Configured reports whether the media service can be reached at all.
func (s *Service) Configured() bool {
	return s.transformer != nil && s.transformer.Configured()
}

// Upload performs exactly one remote upload and, only if it succeeded, exactly
// one store write. Remote failures come back as *media.RemoteError; store
// failures as ErrDuplicatePublicID or wrapping ErrPersistence.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*Video, error) {
	if !s.Configured() {
		s.metrics.Observe(metricsKind, metrics.OutcomeNotConfigured)
		return nil, media.ErrNotConfigured
	}

	started := time.Now()
	res, err := s.transformer.Upload(ctx, in.File, media.UploadOptions{
		ResourceType:   media.ResourceVideo,
		Folder:         s.folder,
		Transformation: media.VideoTransformation,
	})
	s.metrics.ObserveRemote(metricsKind, time.Since(started))
	if err == nil && (res == nil || res.PublicID == "") {
		err = &media.RemoteError{Message: "upload returned no public id"}
	}
	if err != nil {
		s.metrics.Observe(metricsKind, metrics.OutcomeRemoteFailed)
		s.log.Error(ctx, "video upload to media service failed", err)
		var remote *media.RemoteError
		if !errors.As(err, &remote) {
			err = &media.RemoteError{Err: err}
		}
		return nil, err
	}

	v := &Video{
		Title:          in.Title,
		Description:    in.Description,
		PublicID:       res.PublicID,
		OriginalSize:   in.OriginalSize,
		CompressedSize: res.Bytes,
		Duration:       res.Duration,
		UserID:         in.UserID,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		s.metrics.Observe(metricsKind, metrics.OutcomeStoreFailed)
		s.log.Event(ctx, logger.LevelError).
			Err(err).
			Str("public_id", res.PublicID).
			Msg("failed to store video record")
		if errors.Is(err, ErrDuplicatePublicID) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.metrics.Observe(metricsKind, metrics.OutcomeCreated)
	s.log.Event(ctx, logger.LevelInfo).
		Str("video_id", v.ID).
		Str("public_id", v.PublicID).
		Int64("original_size", v.OriginalSize).
		Int64("compressed_size", v.CompressedSize).
		Msg("video uploaded")
	return v, nil
}

// List returns all records newest first.
func (s *Service) List(ctx context.Context) ([]*Video, error) {
	videos, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return videos, nil
}

// Reject counts a submission turned away before any remote work.
func (s *Service) Reject(outcome string) {
	s.metrics.Observe(metricsKind, outcome)
}
