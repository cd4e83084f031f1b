package content

import (
	"strings"
	"unicode"
)

const imageBaseURL = "https://source.unsplash.com/1600x900/?"

// TopicImage returns the generated image query for a topic page. Topic
// pages have no title to mine, so the query is keyword plus style words,
// seeded by the topic key alone and therefore stable across dates.
func (e *Engine) TopicImage(topic string) string {
	t, ok := e.reg.Topic(topic)
	if !ok {
		return ""
	}
	return e.buildImageQuery("", t.ImageKeyword, Hash(topic))
}

// buildImageQuery synthesizes the illustrative image URL for a piece:
// up to two significant terms from the title, the topic keyword, four
// seeded style words, and two seeded palette colors. When the title
// yields no terms the query degrades to keyword plus style words.
func (e *Engine) buildImageQuery(title, keyword string, seed int) string {
	terms := e.titleTerms(title, seed)
	sh := e.reg.shared

	parts := make([]string, 0, len(terms)+7)
	parts = append(parts, terms...)
	parts = append(parts, keyword)
	parts = append(parts, SampleDeterministic(sh.StyleWords, seed+offStyle, 4)...)
	if len(terms) > 0 {
		parts = append(parts, SampleDeterministic(sh.PaletteColors, seed+offPalette, 2)...)
	}
	return imageBaseURL + strings.Join(parts, ",")
}

// titleTerms extracts at most two lowercased title words of four or more
// letters that are not stopwords, deterministically sampled when more
// than two qualify.
func (e *Engine) titleTerms(title string, seed int) []string {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	var terms []string
	for _, w := range words {
		if len(w) >= 4 && !e.reg.IsStopword(w) {
			terms = append(terms, w)
		}
	}
	if len(terms) > 2 {
		terms = SampleDeterministic(terms, seed+offKeyword, 2)
	}
	return terms
}
