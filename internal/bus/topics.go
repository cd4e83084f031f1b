package bus

// Topics published by the override and mapping layers. Subscribers use
// these rather than retyping the strings.
const (
	TopicContentChanged  = "overrides.content.changed"
	TopicImagesChanged   = "overrides.images.changed"
	TopicSiteWideChanged = "overrides.sitewide.changed"
	TopicRemoteChanged   = "mappings.remote.changed"
	TopicOverlayChanged  = "mappings.overlay.changed"
	TopicPrefsChanged    = "prefs.changed"
)
