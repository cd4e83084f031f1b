package models

// ContentOverride is a sparse partial record layered over a generated
// article. Zero-valued fields mean "keep the generated value". Overrides
// live only in the local override store; they are never synced anywhere.
type ContentOverride struct {
	Title   string   `json:"title,omitempty"`
	Excerpt string   `json:"excerpt,omitempty"`
	Body    []string `json:"body,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Quote   *Quote   `json:"quote,omitempty"`
}

// Empty reports whether the override carries no replacement values.
func (o *ContentOverride) Empty() bool {
	return o.Title == "" && o.Excerpt == "" && len(o.Body) == 0 &&
		len(o.Tags) == 0 && o.Quote == nil
}

// Apply returns a copy of the article with the override's non-empty
// fields substituted.
func (o *ContentOverride) Apply(a *GeneratedArticle) *GeneratedArticle {
	if a == nil {
		return nil
	}
	out := *a
	if o.Title != "" {
		out.Title = o.Title
	}
	if o.Excerpt != "" {
		out.Excerpt = o.Excerpt
	}
	if len(o.Body) > 0 {
		out.Body = append([]string(nil), o.Body...)
	}
	if len(o.Tags) > 0 {
		out.Tags = append([]string(nil), o.Tags...)
	}
	if o.Quote != nil {
		out.Quote = *o.Quote
	}
	return &out
}

// MappingSet is a pair of key→URL image tables, one keyed by topic and
// one by article ID. It is the shape of the remote mapping file, the
// local overlay, and the write-back payload.
type MappingSet struct {
	Topics   map[string]string `json:"topics"`
	Articles map[string]string `json:"articles"`
}

// NewMappingSet returns an empty set with both tables allocated.
func NewMappingSet() MappingSet {
	return MappingSet{
		Topics:   make(map[string]string),
		Articles: make(map[string]string),
	}
}

// Clone deep-copies the set so callers can hand out snapshots.
func (m MappingSet) Clone() MappingSet {
	out := NewMappingSet()
	for k, v := range m.Topics {
		out.Topics[k] = v
	}
	for k, v := range m.Articles {
		out.Articles[k] = v
	}
	return out
}

// Len returns the total number of entries across both tables.
func (m MappingSet) Len() int {
	return len(m.Topics) + len(m.Articles)
}

// Prefs are editor display preferences persisted across sessions.
type Prefs struct {
	HoverEffects bool `json:"hover_effects"`
	Images       bool `json:"images"`
}

// DefaultPrefs is what a fresh session sees.
func DefaultPrefs() Prefs {
	return Prefs{HoverEffects: true, Images: true}
}
