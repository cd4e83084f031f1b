package store

// Store is the key/value persistence boundary. The backend is injectable
// so tests and the CLI run on memory while a deployment can point at a
// file.
//
// Reads that fail report absence, and writes are best-effort. Callers
// treat the store as a cache, never as a source of truth that can halt a
// request.
type Store interface {
	// Get returns the stored value and whether it was present.
	Get(key string) (string, bool)

	// Set stores the value. Errors are surfaced for logging only; callers
	// must proceed as if the write simply did not stick.
	Set(key, value string) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(key string) error
}

// Well-known keys used by the override chain and the reflection cache.
const (
	KeyTopicImages   = "images:topics"
	KeyArticleImages = "images:articles"
	KeySiteWideImage = "images:sitewide"
	KeyOverlay       = "mappings:overlay"
	KeyContent       = "content:overrides"
	KeyPrefs         = "prefs"
)

// ReflectionKey builds the cache key for a (date, theme) reflection.
func ReflectionKey(dateISO, theme string) string {
	return "reflection:" + dateISO + ":" + theme
}
