package service

import (
	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/content"
	"github.com/selah-content-api/internal/models"
	"github.com/selah-content-api/internal/overlay"
)

// contentService is the concrete implementation of ContentService
type contentService struct {
	engine    *content.Engine
	overrides *overlay.ContentStore
	resolver  *overlay.Resolver
	log       zerolog.Logger
}

func newContentService(engine *content.Engine, overrides *overlay.ContentStore, resolver *overlay.Resolver, log zerolog.Logger) *contentService {
	return &contentService{
		engine:    engine,
		overrides: overrides,
		resolver:  resolver,
		log:       log.With().Str("service", "content").Logger(),
	}
}

func (s *contentService) Topics() []models.TopicSummary {
	reg := s.engine.Registry()
	keys := reg.Topics()
	out := make([]models.TopicSummary, 0, len(keys))
	for _, key := range keys {
		t, _ := reg.Topic(key)
		resolved := s.resolver.ResolveTopicImage(key, s.engine.TopicImage(key))
		out = append(out, models.TopicSummary{
			Key:     key,
			Display: t.Display,
			Image:   resolved.URL,
		})
	}
	return out
}

func (s *contentService) Themes() []models.ThemeSummary {
	reg := s.engine.Registry()
	keys := reg.Themes()
	out := make([]models.ThemeSummary, 0, len(keys))
	for _, key := range keys {
		th, _ := reg.Theme(key)
		out = append(out, models.ThemeSummary{Key: key, Display: th.Display})
	}
	return out
}

func (s *contentService) ArticlesForDate(dateISO string, count int) []*models.GeneratedArticle {
	articles := s.engine.ArticlesForDate(dateISO, count)
	for i, a := range articles {
		articles[i] = s.decorate(a)
	}
	return articles
}

func (s *contentService) ArticleByID(id string) *models.GeneratedArticle {
	return s.decorate(s.engine.ArticleByID(id))
}

func (s *contentService) ReflectionForDate(dateISO, theme string) *models.GeneratedReflection {
	return s.engine.ReflectionForDate(dateISO, theme)
}

func (s *contentService) ResolveArticleImage(articleID string) (models.ResolvedImage, bool) {
	a := s.engine.ArticleByID(articleID)
	if a == nil {
		return models.ResolvedImage{}, false
	}
	return s.resolver.ResolveArticleImage(a.ID, a.Topic, a.Image), true
}

func (s *contentService) ResolveTopicImage(topic string) (models.ResolvedImage, bool) {
	generated := s.engine.TopicImage(topic)
	if generated == "" {
		return models.ResolvedImage{}, false
	}
	return s.resolver.ResolveTopicImage(topic, generated), true
}

// decorate layers the display substitutions onto a freshly generated
// article: saved content overrides first, then the image chain. The
// engine builds a new object per call, so writing Image back is safe.
func (s *contentService) decorate(a *models.GeneratedArticle) *models.GeneratedArticle {
	if a == nil {
		return nil
	}
	a = s.overrides.Apply(a)
	a.Image = s.resolver.ResolveArticleImage(a.ID, a.Topic, a.Image).URL
	return a
}
