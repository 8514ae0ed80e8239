package video

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/ytget/yt-downloader-web/internal/auth"
	"github.com/ytget/yt-downloader-web/internal/model"
)

// Extractor fetches single-video metadata from the engine
type Extractor interface {
	Extract(ctx context.Context, url string) (*model.VideoMetadata, error)
}

// Service answers metadata lookups for the UI
type Service struct {
	extractor Extractor
	policy    TierPolicy
}

// NewService creates a metadata service using policy to build quality tiers
func NewService(extractor Extractor, policy TierPolicy) *Service {
	if policy == nil {
		policy = LadderPolicy{}
	}
	return &Service{extractor: extractor, policy: policy}
}

// Info canonicalizes rawURL, asks the engine for metadata and derives the
// payload shown by the UI. Engine failures matching the auth phrases come back
// as *model.AuthRequiredError.
func (s *Service) Info(ctx context.Context, rawURL string) (*model.VideoInfo, error) {
	ref := Reference(rawURL)
	log := logrus.WithFields(logrus.Fields{"url": ref.CanonicalURL, "policy": s.policy.Name()})

	meta, err := s.extractor.Extract(ctx, ref.CanonicalURL)
	if err != nil {
		err = auth.Classify(err)
		log.WithError(err).Warn("metadata lookup failed")
		return nil, err
	}

	info := &model.VideoInfo{
		Title:       meta.Title,
		Description: meta.Description,
		Uploader:    meta.Uploader,
		Duration:    meta.Duration,
		Formats:     s.policy.Resolve(meta),
		Thumbnail:   PickThumbnail(meta),
		Languages:   LanguageOptions(meta),
	}
	log.WithField("tiers", len(info.Formats)).Debug("metadata resolved")
	return info, nil
}
