package service

import (
	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/digest"
	"github.com/selah-content-api/internal/models"
)

// digestService is the concrete implementation of DigestService
type digestService struct {
	builder *digest.Builder
	cache   *digest.Cache
	log     zerolog.Logger
}

func newDigestService(builder *digest.Builder, log zerolog.Logger) *digestService {
	return &digestService{
		builder: builder,
		cache:   digest.NewCache(digestCacheSize, digestCacheTTL),
		log:     log.With().Str("service", "digest").Logger(),
	}
}

func (s *digestService) Build(kind models.DigestKind, dateISO string) (*models.Digest, error) {
	return s.builder.Build(kind, dateISO)
}

// Rendered returns both mail bodies for a digest, building and caching
// on first request.
func (s *digestService) Rendered(kind models.DigestKind, dateISO, baseURL string) (digest.Rendered, error) {
	if r, ok := s.cache.Get(kind, dateISO, baseURL); ok {
		return r, nil
	}

	d, err := s.builder.Build(kind, dateISO)
	if err != nil {
		return digest.Rendered{}, err
	}

	r := digest.Rendered{
		Kind:    kind,
		DateISO: dateISO,
		Subject: d.Subject,
		Text:    digest.RenderText(d, baseURL),
		HTML:    digest.RenderHTML(d, baseURL),
	}
	s.cache.Add(kind, dateISO, baseURL, r)
	return r, nil
}

func (s *digestService) CacheLen() int {
	return s.cache.Len()
}
