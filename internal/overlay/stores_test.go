package overlay

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selah-content-api/internal/bus"
	"github.com/selah-content-api/internal/models"
	"github.com/selah-content-api/internal/store"
)

func TestImageStore_RoundTrip(t *testing.T) {
	st := store.NewMemoryStore()
	s := NewImageStore(st, bus.New(), zerolog.Nop())

	s.SetTopicImage("ethics", "https://img/a")
	s.SetArticleImage("ethics-20250811-1", "https://img/b")

	assert.Equal(t, "https://img/a", s.TopicImages()["ethics"])
	assert.Equal(t, "https://img/b", s.ArticleImages()["ethics-20250811-1"])

	s.RemoveTopicImage("ethics")
	assert.Empty(t, s.TopicImages())
	// article table untouched by topic removal
	assert.Len(t, s.ArticleImages(), 1)
}

func TestImageStore_CorruptStorageDegradesToEmpty(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(store.KeyTopicImages, "also not json{"))

	s := NewImageStore(st, bus.New(), zerolog.Nop())
	assert.Empty(t, s.TopicImages())

	// a write recovers the key
	s.SetTopicImage("prayer", "https://img/p")
	assert.Equal(t, "https://img/p", s.TopicImages()["prayer"])
}

func TestImageStore_SiteWide(t *testing.T) {
	st := store.NewMemoryStore()
	b := bus.New()
	s := NewImageStore(st, b, zerolog.Nop())

	var events int
	b.Subscribe(bus.TopicSiteWideChanged, func(bus.Event) { events++ })

	assert.Equal(t, "", s.SiteWide())
	s.SetSiteWide("https://img/everything")
	assert.Equal(t, "https://img/everything", s.SiteWide())
	s.ClearSiteWide()
	assert.Equal(t, "", s.SiteWide())
	assert.Equal(t, 2, events)
}

func TestContentStore_SaveGetClear(t *testing.T) {
	st := store.NewMemoryStore()
	b := bus.New()
	s := NewContentStore(st, b, zerolog.Nop())

	var keys []string
	b.Subscribe(bus.TopicContentChanged, func(e bus.Event) { keys = append(keys, e.Key) })

	o := models.ContentOverride{Title: "A Better Title", Tags: []string{"edited"}}
	s.Save("ethics-20250811-1", o)

	got, ok := s.Get("ethics-20250811-1")
	require.True(t, ok)
	assert.Equal(t, "A Better Title", got.Title)
	assert.Equal(t, []string{"edited"}, got.Tags)

	s.Clear("ethics-20250811-1")
	_, ok = s.Get("ethics-20250811-1")
	assert.False(t, ok)

	assert.Equal(t, []string{"ethics-20250811-1", "ethics-20250811-1"}, keys)
}

func TestContentStore_ClearAbsentPublishesNothing(t *testing.T) {
	b := bus.New()
	s := NewContentStore(store.NewMemoryStore(), b, zerolog.Nop())

	var events int
	b.Subscribe(bus.TopicContentChanged, func(bus.Event) { events++ })

	s.Clear("never-saved")
	assert.Zero(t, events)
}

func TestContentStore_Apply(t *testing.T) {
	s := NewContentStore(store.NewMemoryStore(), bus.New(), zerolog.Nop())

	article := &models.GeneratedArticle{
		ID:      "ethics-20250811-1",
		Title:   "Generated Title",
		Excerpt: "Generated excerpt.",
		Quote:   models.Quote{Text: "q", Author: "a"},
	}

	// no override saved: pass through the same pointer
	assert.Same(t, article, s.Apply(article))

	s.Save("ethics-20250811-1", models.ContentOverride{
		Title: "Edited Title",
		Quote: &models.Quote{Text: "edited", Author: "editor"},
	})

	got := s.Apply(article)
	require.NotSame(t, article, got)
	assert.Equal(t, "Edited Title", got.Title)
	assert.Equal(t, "Generated excerpt.", got.Excerpt, "unset fields keep generated values")
	assert.Equal(t, "edited", got.Quote.Text)
	assert.Equal(t, "Generated Title", article.Title, "input article must not be mutated")
}

func TestMappingOverlayStore_RoundTrip(t *testing.T) {
	st := store.NewMemoryStore()
	b := bus.New()
	s := NewMappingOverlayStore(st, b, zerolog.Nop())

	var events int
	b.Subscribe(bus.TopicOverlayChanged, func(bus.Event) { events++ })

	s.SetTopic("ethics", "https://img/t")
	s.SetArticle("ethics-20250811-1", "https://img/a")

	got := s.Get()
	assert.Equal(t, "https://img/t", got.Topics["ethics"])
	assert.Equal(t, "https://img/a", got.Articles["ethics-20250811-1"])

	s.RemoveTopic("ethics")
	assert.Empty(t, s.Get().Topics)
	assert.Len(t, s.Get().Articles, 1)

	s.Clear()
	assert.Zero(t, s.Get().Len())
	assert.Equal(t, 4, events)
}

func TestMappingOverlayStore_Replace(t *testing.T) {
	s := NewMappingOverlayStore(store.NewMemoryStore(), bus.New(), zerolog.Nop())
	s.SetTopic("old", "https://img/old")

	s.Replace(models.MappingSet{
		Topics:   map[string]string{"prayer": "https://img/new"},
		Articles: map[string]string{},
	})

	got := s.Get()
	assert.NotContains(t, got.Topics, "old")
	assert.Equal(t, "https://img/new", got.Topics["prayer"])
}

func TestMappingOverlayStore_CorruptDegradesToEmpty(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(store.KeyOverlay, "[1,2,3]"))

	s := NewMappingOverlayStore(st, bus.New(), zerolog.Nop())
	got := s.Get()
	assert.NotNil(t, got.Topics)
	assert.NotNil(t, got.Articles)
	assert.Zero(t, got.Len())
}

func TestPrefsStore_DefaultsWhenMissing(t *testing.T) {
	s := NewPrefsStore(store.NewMemoryStore(), bus.New(), zerolog.Nop())
	got := s.Get()
	assert.True(t, got.HoverEffects)
	assert.True(t, got.Images)
}

func TestPrefsStore_RoundTrip(t *testing.T) {
	st := store.NewMemoryStore()
	b := bus.New()
	s := NewPrefsStore(st, b, zerolog.Nop())

	var events int
	b.Subscribe(bus.TopicPrefsChanged, func(bus.Event) { events++ })

	s.Set(models.Prefs{HoverEffects: false, Images: true})
	got := s.Get()
	assert.False(t, got.HoverEffects)
	assert.True(t, got.Images)
	assert.Equal(t, 1, events)
}

func TestPrefsStore_CorruptFallsBackToDefaults(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.Set(store.KeyPrefs, "???"))

	s := NewPrefsStore(st, bus.New(), zerolog.Nop())
	assert.Equal(t, models.DefaultPrefs(), s.Get())
}
