package overlay

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/bus"
	"github.com/selah-content-api/internal/store"
)

// ImageStore persists per-topic and per-article image overrides plus the
// site-wide hard override. Reads go to the backing store every time so a
// write from another session is picked up on the next request; nothing
// is cached here.
type ImageStore struct {
	store store.Store
	bus   *bus.Bus
	log   zerolog.Logger
}

func NewImageStore(st store.Store, b *bus.Bus, log zerolog.Logger) *ImageStore {
	return &ImageStore{
		store: st,
		bus:   b,
		log:   log.With().Str("component", "overlay.images").Logger(),
	}
}

// TopicImages returns the topic override table. Missing or corrupt
// storage yields an empty map, never an error.
func (s *ImageStore) TopicImages() map[string]string {
	return s.readMap(store.KeyTopicImages)
}

// ArticleImages returns the article override table.
func (s *ImageStore) ArticleImages() map[string]string {
	return s.readMap(store.KeyArticleImages)
}

func (s *ImageStore) SetTopicImage(topic, url string) {
	m := s.readMap(store.KeyTopicImages)
	m[topic] = url
	if s.writeMap(store.KeyTopicImages, m) {
		s.bus.Publish(bus.Event{Topic: bus.TopicImagesChanged, Key: topic})
	}
}

func (s *ImageStore) RemoveTopicImage(topic string) {
	m := s.readMap(store.KeyTopicImages)
	if _, ok := m[topic]; !ok {
		return
	}
	delete(m, topic)
	if s.writeMap(store.KeyTopicImages, m) {
		s.bus.Publish(bus.Event{Topic: bus.TopicImagesChanged, Key: topic})
	}
}

func (s *ImageStore) SetArticleImage(articleID, url string) {
	m := s.readMap(store.KeyArticleImages)
	m[articleID] = url
	if s.writeMap(store.KeyArticleImages, m) {
		s.bus.Publish(bus.Event{Topic: bus.TopicImagesChanged, Key: articleID})
	}
}

func (s *ImageStore) RemoveArticleImage(articleID string) {
	m := s.readMap(store.KeyArticleImages)
	if _, ok := m[articleID]; !ok {
		return
	}
	delete(m, articleID)
	if s.writeMap(store.KeyArticleImages, m) {
		s.bus.Publish(bus.Event{Topic: bus.TopicImagesChanged, Key: articleID})
	}
}

// SiteWide returns the site-wide hard override URL, empty when unset.
func (s *ImageStore) SiteWide() string {
	raw, ok := s.store.Get(store.KeySiteWideImage)
	if !ok {
		return ""
	}
	return raw
}

func (s *ImageStore) SetSiteWide(url string) {
	if err := s.store.Set(store.KeySiteWideImage, url); err != nil {
		s.log.Warn().Err(err).Msg("dropped site-wide image write")
		return
	}
	s.bus.Publish(bus.Event{Topic: bus.TopicSiteWideChanged})
}

func (s *ImageStore) ClearSiteWide() {
	if err := s.store.Remove(store.KeySiteWideImage); err != nil {
		s.log.Warn().Err(err).Msg("dropped site-wide image clear")
		return
	}
	s.bus.Publish(bus.Event{Topic: bus.TopicSiteWideChanged})
}

func (s *ImageStore) readMap(key string) map[string]string {
	m := make(map[string]string)
	loadJSON(s.store, key, &m, s.log)
	if m == nil {
		m = make(map[string]string)
	}
	return m
}

func (s *ImageStore) writeMap(key string, m map[string]string) bool {
	return saveJSON(s.store, key, m, s.log)
}

// loadJSON reads and decodes a stored JSON value. Absent keys and corrupt
// payloads both report false so every caller falls back to its default.
func loadJSON(st store.Store, key string, out any, log zerolog.Logger) bool {
	raw, ok := st.Get(key)
	if !ok || raw == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding corrupt stored value")
		return false
	}
	return true
}

// saveJSON encodes and writes a value. Failures are logged and swallowed;
// override persistence is best-effort by contract. The return reports
// whether the write stuck, so callers only announce persisted changes.
func saveJSON(st store.Store, key string, v any, log zerolog.Logger) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to encode stored value")
		return false
	}
	if err := st.Set(key, string(raw)); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("dropped write")
		return false
	}
	return true
}
