package overlay

import (
	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/bus"
	"github.com/selah-content-api/internal/models"
	"github.com/selah-content-api/internal/store"
)

// ContentStore persists sparse content overrides keyed by article ID.
// Content overrides carry no public/local distinction: any session may
// save them, and they only ever affect the store they were saved into.
type ContentStore struct {
	store store.Store
	bus   *bus.Bus
	log   zerolog.Logger
}

func NewContentStore(st store.Store, b *bus.Bus, log zerolog.Logger) *ContentStore {
	return &ContentStore{
		store: st,
		bus:   b,
		log:   log.With().Str("component", "overlay.content").Logger(),
	}
}

// All returns the full override table.
func (s *ContentStore) All() map[string]models.ContentOverride {
	return s.read()
}

// Get returns the override for an article, if one is saved.
func (s *ContentStore) Get(articleID string) (models.ContentOverride, bool) {
	o, ok := s.read()[articleID]
	return o, ok
}

// Save stores an override and announces the change.
func (s *ContentStore) Save(articleID string, o models.ContentOverride) {
	m := s.read()
	m[articleID] = o
	if saveJSON(s.store, store.KeyContent, m, s.log) {
		s.bus.Publish(bus.Event{Topic: bus.TopicContentChanged, Key: articleID})
	}
}

// Clear removes an article's override. Clearing an absent key is a no-op
// and publishes nothing.
func (s *ContentStore) Clear(articleID string) {
	m := s.read()
	if _, ok := m[articleID]; !ok {
		return
	}
	delete(m, articleID)
	if saveJSON(s.store, store.KeyContent, m, s.log) {
		s.bus.Publish(bus.Event{Topic: bus.TopicContentChanged, Key: articleID})
	}
}

// Apply substitutes a saved override into the article, if any. Articles
// without overrides pass through untouched.
func (s *ContentStore) Apply(a *models.GeneratedArticle) *models.GeneratedArticle {
	if a == nil {
		return nil
	}
	o, ok := s.Get(a.ID)
	if !ok {
		return a
	}
	return o.Apply(a)
}

func (s *ContentStore) read() map[string]models.ContentOverride {
	m := make(map[string]models.ContentOverride)
	loadJSON(s.store, store.KeyContent, &m, s.log)
	if m == nil {
		m = make(map[string]models.ContentOverride)
	}
	return m
}
