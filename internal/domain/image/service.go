package image

import (
	"context"
	"errors"
	"io"
	"time"

	"reelvault/internal/media"
	"reelvault/internal/pkg/logger"
	"reelvault/internal/pkg/metrics"
	"reelvault/internal/pkg/utils"
)

const metricsKind = "image"

// FormatLink is a social preset rendered for one uploaded image.
type FormatLink struct {
	media.SocialFormat
	URL      string `json:"url,omitempty"`
	Filename string `json:"filename"`
}

type Service struct {
	transformer media.Transformer
	delivery    *media.Delivery
	folder      string
	metrics     *metrics.UploadMetrics
	log         *logger.Logger
}

// NewService builds the image service. delivery may be nil when no cloud name
// is configured; preset listings then omit URLs.
func NewService(transformer media.Transformer, delivery *media.Delivery, folder string, m *metrics.UploadMetrics, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		transformer: transformer,
		delivery:    delivery,
		folder:      folder,
		metrics:     m,
		log:         log,
	}
}

func (s *Service) Configured() bool {
	return s.transformer != nil && s.transformer.Configured()
}

// Upload stores the image with the media service and returns its public id.
// Nothing is persisted locally.
func (s *Service) Upload(ctx context.Context, r io.Reader) (string, error) {
	if !s.Configured() {
		s.metrics.Observe(metricsKind, metrics.OutcomeNotConfigured)
		return "", media.ErrNotConfigured
	}

	started := time.Now()
	res, err := s.transformer.Upload(ctx, r, media.UploadOptions{
		ResourceType: media.ResourceImage,
		Folder:       s.folder,
	})
	s.metrics.ObserveRemote(metricsKind, time.Since(started))
	if err == nil && (res == nil || res.PublicID == "") {
		err = &media.RemoteError{Message: "upload returned no public id"}
	}
	if err != nil {
		s.metrics.Observe(metricsKind, metrics.OutcomeRemoteFailed)
		s.log.Error(ctx, "image upload to media service failed", err)
		var remote *media.RemoteError
		if !errors.As(err, &remote) {
			err = &media.RemoteError{Err: err}
		}
		return "", err
	}

	s.metrics.Observe(metricsKind, metrics.OutcomeCreated)
	s.log.Event(ctx, logger.LevelInfo).Str("public_id", res.PublicID).Msg("image uploaded")
	return res.PublicID, nil
}

// Formats lists every social preset. With a public id each entry carries its
// rendered URL.
func (s *Service) Formats(publicID string) ([]FormatLink, error) {
	out := make([]FormatLink, 0, len(media.SocialFormats))
	for _, f := range media.SocialFormats {
		link := FormatLink{SocialFormat: f, Filename: utils.DownloadFilename(f.Name, "png")}
		if publicID != "" && s.delivery != nil {
			u, err := s.delivery.ImageURL(publicID, f)
			if err != nil {
				return nil, err
			}
			link.URL = u
		}
		out = append(out, link)
	}
	return out, nil
}

func (s *Service) Reject(outcome string) {
	s.metrics.Observe(metricsKind, outcome)
}
