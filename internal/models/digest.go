package models

// DigestKind distinguishes the two newsletter bundles.
type DigestKind string

const (
	DigestDaily  DigestKind = "daily"
	DigestWeekly DigestKind = "weekly"
)

// Digest is a dated newsletter bundle: one reflection plus the articles
// chosen for the period. Digests are built from generated defaults only;
// overrides and remote mappings are not consulted, so a scheduled send is
// reproducible from its date alone.
type Digest struct {
	Kind       DigestKind           `json:"kind"`
	DateISO    string               `json:"date"`
	Subject    string               `json:"subject"`
	Reflection *GeneratedReflection `json:"reflection"`
	Articles   []*GeneratedArticle  `json:"articles"`
}

// ResolvedImage is an image URL plus the resolution layer that supplied
// it, for diagnostics and the editor UI.
type ResolvedImage struct {
	URL   string `json:"url"`
	Layer string `json:"layer"`
}

// Resolution layer names, in precedence order for the local mode chain.
// Public mode skips the local-* and overlay-* layers entirely.
const (
	LayerSiteWide       = "site-wide"
	LayerLocalArticle   = "local-article"
	LayerLocalTopic     = "local-topic"
	LayerOverlayArticle = "overlay-article"
	LayerOverlayTopic   = "overlay-topic"
	LayerRemoteArticle  = "remote-article"
	LayerRemoteTopic    = "remote-topic"
	LayerDefaultArticle = "default-article"
	LayerDefaultTopic   = "default-topic"
	LayerGenerated      = "generated"
)
