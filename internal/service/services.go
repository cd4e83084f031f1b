package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/content"
	"github.com/selah-content-api/internal/digest"
	"github.com/selah-content-api/internal/models"
	"github.com/selah-content-api/internal/overlay"
	"github.com/selah-content-api/internal/remote"
)

// Rendered digests are small and fully deterministic; the cache exists
// to skip pool sampling on hot dates, not to bound correctness.
const (
	digestCacheSize = 64
	digestCacheTTL  = time.Hour
)

// ContentService serves generated content with content overrides and
// image resolution already applied.
type ContentService interface {
	Topics() []models.TopicSummary
	Themes() []models.ThemeSummary
	ArticlesForDate(dateISO string, count int) []*models.GeneratedArticle
	ArticleByID(id string) *models.GeneratedArticle
	ReflectionForDate(dateISO, theme string) *models.GeneratedReflection
	ResolveArticleImage(articleID string) (models.ResolvedImage, bool)
	ResolveTopicImage(topic string) (models.ResolvedImage, bool)
}

// OverrideService manages the local override stores and the remote
// mapping lifecycle.
type OverrideService interface {
	ContentOverride(articleID string) (models.ContentOverride, bool)
	SaveContentOverride(articleID string, o models.ContentOverride)
	ClearContentOverride(articleID string)

	SetTopicImage(topic, url string) bool
	ClearTopicImage(topic string) bool
	SetArticleImage(articleID, url string) bool
	ClearArticleImage(articleID string) bool

	SiteWide() string
	SetSiteWide(url string)
	ClearSiteWide()

	Prefs() models.Prefs
	SetPrefs(p models.Prefs)

	Mappings() MappingsView
	Effective() models.MappingSet
	ImportMappings(data []byte) (models.MappingSet, error)
	ExportMappings(format remote.Format) string
	RefreshRemote(ctx context.Context) error
	WriteBackEnabled() bool
	WriteBack(ctx context.Context) bool
	RemoteStats() remote.FetcherStats
}

// DigestService builds and renders dated newsletter bundles.
type DigestService interface {
	Build(kind models.DigestKind, dateISO string) (*models.Digest, error)
	Rendered(kind models.DigestKind, dateISO, baseURL string) (digest.Rendered, error)
	CacheLen() int
}

// MappingsView is the three mapping tables the editor shows side by side.
type MappingsView struct {
	Remote    models.MappingSet `json:"remote"`
	Overlay   models.MappingSet `json:"overlay"`
	Effective models.MappingSet `json:"effective"`
}

// Services holds all service interfaces
type Services struct {
	Content  ContentService
	Override OverrideService
	Digest   DigestService
}

// NewServices creates all services
func NewServices(
	engine *content.Engine,
	stores *overlay.Stores,
	resolver *overlay.Resolver,
	fetcher *remote.Fetcher,
	writeBack *remote.WriteBack,
	log zerolog.Logger,
) *Services {
	return &Services{
		Content:  newContentService(engine, stores.Content, resolver, log),
		Override: newOverrideService(stores, resolver, fetcher, writeBack, log),
		Digest:   newDigestService(digest.NewBuilder(engine, log), log),
	}
}
