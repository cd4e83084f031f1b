package overlay

import (
	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/bus"
	"github.com/selah-content-api/internal/models"
	"github.com/selah-content-api/internal/store"
)

// PrefsStore persists the display preference toggles.
type PrefsStore struct {
	store store.Store
	bus   *bus.Bus
	log   zerolog.Logger
}

func NewPrefsStore(st store.Store, b *bus.Bus, log zerolog.Logger) *PrefsStore {
	return &PrefsStore{
		store: st,
		bus:   b,
		log:   log.With().Str("component", "overlay.prefs").Logger(),
	}
}

// Get returns stored preferences, or the defaults when nothing valid is
// stored.
func (s *PrefsStore) Get() models.Prefs {
	p := models.DefaultPrefs()
	loadJSON(s.store, store.KeyPrefs, &p, s.log)
	return p
}

func (s *PrefsStore) Set(p models.Prefs) {
	if saveJSON(s.store, store.KeyPrefs, p, s.log) {
		s.bus.Publish(bus.Event{Topic: bus.TopicPrefsChanged})
	}
}
