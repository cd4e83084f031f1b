package content

import (
	"encoding/json"

	"github.com/selah-content-api/internal/models"
	"github.com/selah-content-api/internal/store"
)

// GenerateReflection produces the reflection for (date, theme) without
// consulting the cache. Unknown themes return nil.
func (e *Engine) GenerateReflection(dateISO, theme string) *models.GeneratedReflection {
	th, ok := e.reg.Theme(theme)
	if !ok {
		return nil
	}
	seed := Hash(dateISO + "|" + theme)

	return &models.GeneratedReflection{
		DateISO:   dateISO,
		Theme:     theme,
		Title:     pickAt(th.Titles, seed+offTitle),
		Scripture: th.Scriptures[poolIndex(seed+offScripture, len(th.Scriptures))],
		Quote:     th.Quotes[poolIndex(seed+offQuote, len(th.Quotes))],
		Body:      pickAt(th.Bodies, seed+offBody),
		Prayer:    pickAt(th.Prayers, seed+offPrayer),
		Questions: SampleDeterministic(th.Questions, seed+offQuestions, 3),
		Tags:      appendUnique([]string{theme}, th.Tags...),
	}
}

// ReflectionForDate is the cached variant. The first call for a
// (date, theme) pair persists the generated reflection; every later call
// returns the stored object verbatim, even if the pools have since
// changed. A reflection never changes once a reader has seen it.
func (e *Engine) ReflectionForDate(dateISO, theme string) *models.GeneratedReflection {
	if _, ok := e.reg.Theme(theme); !ok {
		return nil
	}

	key := store.ReflectionKey(dateISO, theme)
	if raw, ok := e.store.Get(key); ok {
		var cached models.GeneratedReflection
		if err := json.Unmarshal([]byte(raw), &cached); err == nil && cached.Theme != "" {
			return &cached
		}
		e.log.Warn().Str("key", key).Msg("discarding corrupt cached reflection")
	}

	r := e.GenerateReflection(dateISO, theme)
	raw, err := json.Marshal(r)
	if err == nil {
		if err := e.store.Set(key, string(raw)); err != nil {
			e.log.Warn().Err(err).Str("key", key).Msg("failed to cache reflection")
		}
	}
	return r
}
