package content

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/models"
	"github.com/selah-content-api/internal/store"
)

// Seed offsets, one per content slot. Adding a distinct offset before
// each pick keeps the slots independent: changing the title pool cannot
// shift which quote an existing article shows. These values are part of
// the output contract; changing any of them regenerates the entire site.
const (
	offTitle      = 1
	offExcerpt    = 7
	offQuote      = 13
	offScripture  = 17
	offBody       = 23
	offPractice   = 29
	offConnective = 31
	offStyle      = 37
	offPalette    = 41
	offKeyword    = 43
	offTags       = 47
	offPrayer     = 53
	offQuestions  = 59
)

const isoDate = "2006-01-02"

// DateISO normalizes a time to the canonical calendar date string.
// Always UTC, so the same instant never maps to two different dates.
func DateISO(t time.Time) string {
	return t.UTC().Format(isoDate)
}

// Engine synthesizes articles and reflections from the pool registry.
// Generation is pure; the only state the engine touches is the KV store
// backing the reflection cache.
type Engine struct {
	reg   *Registry
	store store.Store
	now   func() time.Time
	log   zerolog.Logger
}

// NewEngine creates an engine over a validated registry.
func NewEngine(reg *Registry, st store.Store, log zerolog.Logger) *Engine {
	return &Engine{
		reg:   reg,
		store: st,
		now:   func() time.Time { return time.Now().UTC() },
		log:   log.With().Str("component", "content").Logger(),
	}
}

// Registry exposes the pool registry the engine draws from.
func (e *Engine) Registry() *Registry {
	return e.reg
}

// GenerateArticle produces the article for (topic, date, index). The
// same triple always yields the same article. Unknown topics return nil;
// callers are expected to validate against the registry first.
func (e *Engine) GenerateArticle(topic, dateISO string, index int) *models.GeneratedArticle {
	t, ok := e.reg.Topic(topic)
	if !ok {
		return nil
	}
	seed := Hash(topic + "|" + dateISO + "|" + strconv.Itoa(index))

	title := pickAt(t.Titles, seed+offTitle)
	return &models.GeneratedArticle{
		ID:      articleID(topic, dateISO, index),
		Topic:   topic,
		DateISO: dateISO,
		Title:   title,
		Excerpt: pickAt(t.Excerpts, seed+offExcerpt),
		Body:    e.buildBody(t, seed),
		Quote:   t.Quotes[poolIndex(seed+offQuote, len(t.Quotes))],
		Tags:    appendUnique([]string{topic}, SampleDeterministic(t.Tags, seed+offTags, 2)...),
		Image:   e.buildImageQuery(title, t.ImageKeyword, seed),
	}
}

// ArticlesForDate returns count articles for a date. Topic order is
// itself seeded by the date, so each day leads with a different subject;
// indexes start at 1 and wrap through the topic list if count exceeds it.
func (e *Engine) ArticlesForDate(dateISO string, count int) []*models.GeneratedArticle {
	if count <= 0 {
		return nil
	}
	order := Rotate(e.reg.Topics(), Hash(dateISO))
	out := make([]*models.GeneratedArticle, 0, count)
	for i := 0; i < count; i++ {
		if a := e.GenerateArticle(order[i%len(order)], dateISO, i+1); a != nil {
			out = append(out, a)
		}
	}
	return out
}

// buildBody assembles 3 or 4 sampled paragraphs with a connective after
// the opening paragraph and a practice paragraph closing the piece.
func (e *Engine) buildBody(t *TopicPools, seed int) []string {
	n := 3 + seed%2
	paras := SampleDeterministic(t.Paragraphs, seed+offBody, n)

	body := make([]string, 0, n+2)
	body = append(body, paras[0])
	body = append(body, pickAt(e.reg.shared.Connectives, seed+offConnective))
	body = append(body, paras[1:]...)
	body = append(body, pickAt(t.Practices, seed+offPractice))
	return body
}

func articleID(topic, dateISO string, index int) string {
	return fmt.Sprintf("%s-%s-%d", topic, strings.ReplaceAll(dateISO, "-", ""), index)
}

// pickAt is Pick for pools the registry has already validated non-empty.
func pickAt(pool []string, seed int) string {
	s, _ := Pick(pool, seed)
	return s
}

func appendUnique(dst []string, items ...string) []string {
	for _, item := range items {
		seen := false
		for _, have := range dst {
			if have == item {
				seen = true
				break
			}
		}
		if !seen {
			dst = append(dst, item)
		}
	}
	return dst
}
