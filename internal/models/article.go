package models

// Quote is an attributed saying attached to generated content.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// Scripture is a passage plus its reference.
type Scripture struct {
	Text string `json:"text"`
	Ref  string `json:"ref"`
}

// GeneratedArticle is one synthesized piece for a (topic, date, index)
// triple. It is recomputed on every request, never persisted; two calls
// with identical inputs produce identical output.
type GeneratedArticle struct {
	ID      string   `json:"id"`
	Topic   string   `json:"topic"`
	DateISO string   `json:"date"`
	Title   string   `json:"title"`
	Excerpt string   `json:"excerpt"`
	Body    []string `json:"body"`
	Quote   Quote    `json:"quote"`
	Tags    []string `json:"tags"`
	Image   string   `json:"image"`
}

// TopicSummary is the list-view shape of a registry topic, image already
// resolved through the override chain.
type TopicSummary struct {
	Key     string `json:"key"`
	Display string `json:"display"`
	Image   string `json:"image"`
}

// ThemeSummary is the list-view shape of a reflection theme.
type ThemeSummary struct {
	Key     string `json:"key"`
	Display string `json:"display"`
}

// GeneratedReflection is the daily reflection for a (date, theme) pair.
// Unlike articles, the first generation is cached in the override store
// and later requests return the cached object verbatim.
type GeneratedReflection struct {
	DateISO   string    `json:"date"`
	Theme     string    `json:"theme"`
	Title     string    `json:"title"`
	Scripture Scripture `json:"scripture"`
	Quote     Quote     `json:"quote"`
	Body      string    `json:"body"`
	Prayer    string    `json:"prayer"`
	Questions []string  `json:"questions"`
	Tags      []string  `json:"tags"`
}
