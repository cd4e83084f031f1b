package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/models"
	"github.com/selah-content-api/internal/overlay"
	"github.com/selah-content-api/internal/remote"
)

// overrideService is the concrete implementation of OverrideService
type overrideService struct {
	stores    *overlay.Stores
	resolver  *overlay.Resolver
	fetcher   *remote.Fetcher
	writeBack *remote.WriteBack
	log       zerolog.Logger
}

func newOverrideService(stores *overlay.Stores, resolver *overlay.Resolver, fetcher *remote.Fetcher, writeBack *remote.WriteBack, log zerolog.Logger) *overrideService {
	return &overrideService{
		stores:    stores,
		resolver:  resolver,
		fetcher:   fetcher,
		writeBack: writeBack,
		log:       log.With().Str("service", "override").Logger(),
	}
}

func (s *overrideService) ContentOverride(articleID string) (models.ContentOverride, bool) {
	return s.stores.Content.Get(articleID)
}

func (s *overrideService) SaveContentOverride(articleID string, o models.ContentOverride) {
	s.stores.Content.Save(articleID, o)
}

func (s *overrideService) ClearContentOverride(articleID string) {
	s.stores.Content.Clear(articleID)
}

// Image writes go through the resolver so the public-mode no-op rule
// lives in exactly one place.

func (s *overrideService) SetTopicImage(topic, url string) bool {
	return s.resolver.SetTopicImage(topic, url)
}

func (s *overrideService) ClearTopicImage(topic string) bool {
	return s.resolver.ClearTopicImage(topic)
}

func (s *overrideService) SetArticleImage(articleID, url string) bool {
	return s.resolver.SetArticleImage(articleID, url)
}

func (s *overrideService) ClearArticleImage(articleID string) bool {
	return s.resolver.ClearArticleImage(articleID)
}

func (s *overrideService) SiteWide() string {
	return s.stores.Images.SiteWide()
}

func (s *overrideService) SetSiteWide(url string) {
	s.stores.Images.SetSiteWide(url)
}

func (s *overrideService) ClearSiteWide() {
	s.stores.Images.ClearSiteWide()
}

func (s *overrideService) Prefs() models.Prefs {
	return s.stores.Prefs.Get()
}

func (s *overrideService) SetPrefs(p models.Prefs) {
	s.stores.Prefs.Set(p)
}

func (s *overrideService) Mappings() MappingsView {
	return MappingsView{
		Remote:    s.fetcher.Current(),
		Overlay:   s.stores.Overlay.Get(),
		Effective: s.Effective(),
	}
}

// Effective merges the fetched remote tables with the local overlay,
// overlay entries winning key by key. This is the table the editor sees
// and the one write-back publishes.
func (s *overrideService) Effective() models.MappingSet {
	eff := s.fetcher.Current().Clone()
	ov := s.stores.Overlay.Get()
	for k, v := range ov.Topics {
		eff.Topics[k] = v
	}
	for k, v := range ov.Articles {
		eff.Articles[k] = v
	}
	return eff
}

// ImportMappings parses an uploaded CSV or JSON payload and replaces the
// whole overlay with it. A payload that parses to zero rows is rejected
// so a stray paste cannot silently wipe an edited overlay.
func (s *overrideService) ImportMappings(data []byte) (models.MappingSet, error) {
	m := remote.Parse(data, s.log)
	if m.Len() == 0 {
		return m, fmt.Errorf("no mapping rows found in payload")
	}
	s.stores.Overlay.Replace(m)
	s.log.Info().Int("topics", len(m.Topics)).Int("articles", len(m.Articles)).Msg("Mapping overlay imported")
	return m, nil
}

func (s *overrideService) ExportMappings(format remote.Format) string {
	if format == remote.FormatJSON {
		return remote.ToJSON(s.Effective())
	}
	return remote.ToCSV(s.Effective())
}

func (s *overrideService) RefreshRemote(ctx context.Context) error {
	return s.fetcher.Refresh(ctx)
}

func (s *overrideService) WriteBackEnabled() bool {
	return s.writeBack.Enabled()
}

func (s *overrideService) WriteBack(ctx context.Context) bool {
	return s.writeBack.Send(ctx, s.Effective())
}

func (s *overrideService) RemoteStats() remote.FetcherStats {
	return s.fetcher.Stats()
}
