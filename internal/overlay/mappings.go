package overlay

import (
	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/bus"
	"github.com/selah-content-api/internal/models"
	"github.com/selah-content-api/internal/store"
)

// MappingOverlayStore persists the local overlay of the remote mapping:
// a same-shape table whose entries supersede the fetched remote entries,
// key by key, without touching them.
type MappingOverlayStore struct {
	store store.Store
	bus   *bus.Bus
	log   zerolog.Logger
}

func NewMappingOverlayStore(st store.Store, b *bus.Bus, log zerolog.Logger) *MappingOverlayStore {
	return &MappingOverlayStore{
		store: st,
		bus:   b,
		log:   log.With().Str("component", "overlay.mappings").Logger(),
	}
}

// Get returns the overlay table, empty when unset or corrupt.
func (s *MappingOverlayStore) Get() models.MappingSet {
	m := models.NewMappingSet()
	loadJSON(s.store, store.KeyOverlay, &m, s.log)
	if m.Topics == nil {
		m.Topics = make(map[string]string)
	}
	if m.Articles == nil {
		m.Articles = make(map[string]string)
	}
	return m
}

// Replace swaps the whole overlay, the import-from-file operation.
func (s *MappingOverlayStore) Replace(m models.MappingSet) {
	if saveJSON(s.store, store.KeyOverlay, m, s.log) {
		s.bus.Publish(bus.Event{Topic: bus.TopicOverlayChanged})
	}
}

func (s *MappingOverlayStore) SetTopic(key, url string) {
	m := s.Get()
	m.Topics[key] = url
	if saveJSON(s.store, store.KeyOverlay, m, s.log) {
		s.bus.Publish(bus.Event{Topic: bus.TopicOverlayChanged, Key: key})
	}
}

func (s *MappingOverlayStore) SetArticle(key, url string) {
	m := s.Get()
	m.Articles[key] = url
	if saveJSON(s.store, store.KeyOverlay, m, s.log) {
		s.bus.Publish(bus.Event{Topic: bus.TopicOverlayChanged, Key: key})
	}
}

func (s *MappingOverlayStore) RemoveTopic(key string) {
	m := s.Get()
	if _, ok := m.Topics[key]; !ok {
		return
	}
	delete(m.Topics, key)
	if saveJSON(s.store, store.KeyOverlay, m, s.log) {
		s.bus.Publish(bus.Event{Topic: bus.TopicOverlayChanged, Key: key})
	}
}

func (s *MappingOverlayStore) RemoveArticle(key string) {
	m := s.Get()
	if _, ok := m.Articles[key]; !ok {
		return
	}
	delete(m.Articles, key)
	if saveJSON(s.store, store.KeyOverlay, m, s.log) {
		s.bus.Publish(bus.Event{Topic: bus.TopicOverlayChanged, Key: key})
	}
}

// Clear drops the whole overlay.
func (s *MappingOverlayStore) Clear() {
	if err := s.store.Remove(store.KeyOverlay); err != nil {
		s.log.Warn().Err(err).Msg("dropped overlay clear")
		return
	}
	s.bus.Publish(bus.Event{Topic: bus.TopicOverlayChanged})
}
