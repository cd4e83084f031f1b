package overlay_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/selah-content-api/internal/bus"
	"github.com/selah-content-api/internal/mocks"
	"github.com/selah-content-api/internal/models"
	"github.com/selah-content-api/internal/overlay"
)

// The stores treat the backing store as best-effort: a failing write must
// never reach the caller, it just does not stick.

func TestImageStore_WriteFailureIsSwallowed(t *testing.T) {
	st := mocks.NewMockStore()
	st.SetFunc = func(key, value string) error { return errors.New("disk full") }

	s := overlay.NewImageStore(st, bus.New(), zerolog.Nop())
	s.SetTopicImage("ethics", "https://img/a")

	assert.Empty(t, s.TopicImages())
}

func TestImageStore_MapWriteFailurePublishesNothing(t *testing.T) {
	st := mocks.NewMockStore()
	st.SetFunc = func(key, value string) error { return errors.New("disk full") }

	b := bus.New()
	events := 0
	b.Subscribe(bus.TopicImagesChanged, func(bus.Event) { events++ })

	s := overlay.NewImageStore(st, b, zerolog.Nop())
	s.SetTopicImage("ethics", "https://img/a")
	s.SetArticleImage("ethics-20250811-1", "https://img/b")

	assert.Empty(t, s.TopicImages())
	assert.Zero(t, events, "a dropped write must not be announced")
}

func TestImageStore_SiteWideWriteFailurePublishesNothing(t *testing.T) {
	st := mocks.NewMockStore()
	st.SetFunc = func(key, value string) error { return errors.New("disk full") }

	b := bus.New()
	events := 0
	token := b.Subscribe(bus.TopicSiteWideChanged, func(bus.Event) { events++ })
	defer b.Unsubscribe(token)

	s := overlay.NewImageStore(st, b, zerolog.Nop())
	s.SetSiteWide("https://img/all")

	assert.Equal(t, "", s.SiteWide())
	assert.Zero(t, events)
}

func TestContentStore_ReadFailureDegradesToEmpty(t *testing.T) {
	st := mocks.NewMockStore()
	st.GetFunc = func(key string) (string, bool) { return "", false }

	s := overlay.NewContentStore(st, bus.New(), zerolog.Nop())
	_, ok := s.Get("ethics-20250811-1")

	assert.False(t, ok)
}

func TestContentStore_WriteFailurePublishesNothing(t *testing.T) {
	st := mocks.NewMockStore()
	st.SetFunc = func(key, value string) error { return errors.New("disk full") }

	b := bus.New()
	events := 0
	b.Subscribe(bus.TopicContentChanged, func(bus.Event) { events++ })

	s := overlay.NewContentStore(st, b, zerolog.Nop())
	s.Save("ethics-20250811-1", models.ContentOverride{Title: "Edited"})

	_, ok := s.Get("ethics-20250811-1")
	assert.False(t, ok)
	assert.Zero(t, events)
}

func TestMappingOverlayStore_WriteFailurePublishesNothing(t *testing.T) {
	st := mocks.NewMockStore()
	st.SetFunc = func(key, value string) error { return errors.New("disk full") }

	b := bus.New()
	events := 0
	b.Subscribe(bus.TopicOverlayChanged, func(bus.Event) { events++ })

	s := overlay.NewMappingOverlayStore(st, b, zerolog.Nop())
	s.SetTopic("ethics", "https://img/e")
	s.Replace(models.MappingSet{
		Topics:   map[string]string{"prayer": "https://img/p"},
		Articles: map[string]string{},
	})

	assert.Zero(t, s.Get().Len())
	assert.Zero(t, events)
}

func TestPrefsStore_WriteFailureKeepsDefaults(t *testing.T) {
	st := mocks.NewMockStore()
	st.SetFunc = func(key, value string) error { return errors.New("read-only store") }

	s := overlay.NewPrefsStore(st, bus.New(), zerolog.Nop())
	p := s.Get()
	p.Images = false
	s.Set(p)

	assert.True(t, s.Get().Images)
}
