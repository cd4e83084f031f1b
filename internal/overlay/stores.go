package overlay

import (
	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/bus"
	"github.com/selah-content-api/internal/store"
)

// Stores bundles the override stores that share one KV backend and one
// event bus.
type Stores struct {
	Images  *ImageStore
	Content *ContentStore
	Overlay *MappingOverlayStore
	Prefs   *PrefsStore
}

// NewStores creates all override stores.
func NewStores(st store.Store, b *bus.Bus, log zerolog.Logger) *Stores {
	return &Stores{
		Images:  NewImageStore(st, b, log),
		Content: NewContentStore(st, b, log),
		Overlay: NewMappingOverlayStore(st, b, log),
		Prefs:   NewPrefsStore(st, b, log),
	}
}
