package content

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/selah-content-api/internal/models"
)

var articleIDPattern = regexp.MustCompile(`^([a-z][a-z-]*)-(\d{8})-(\d+)$`)

const primerToken = "primer"

// ParseArticleID inverts articleID. It accepts only the dated grammar
// with a topic the registry knows; everything else reports !ok so the
// caller can try the fallback-slug path.
func (e *Engine) ParseArticleID(id string) (topic, dateISO string, index int, ok bool) {
	m := articleIDPattern.FindStringSubmatch(id)
	if m == nil {
		return "", "", 0, false
	}
	if _, known := e.reg.Topic(m[1]); !known {
		return "", "", 0, false
	}
	idx, err := strconv.Atoi(m[3])
	if err != nil {
		return "", "", 0, false
	}
	d := m[2]
	return m[1], d[:4] + "-" + d[4:6] + "-" + d[6:], idx, true
}

// ArticleByID resolves any article URL slug. Dated IDs regenerate the
// exact original article. Non-dated slugs fall back to a substring match
// against the topic registry, seeded by slug plus the current date: the
// same slug can therefore render differently on different days. That
// quirk is long-standing and preserved on purpose; fallback pages were
// never meant to be stable bookmarks. Returns nil when no topic matches.
func (e *Engine) ArticleByID(id string) *models.GeneratedArticle {
	if topic, dateISO, index, ok := e.ParseArticleID(id); ok {
		return e.GenerateArticle(topic, dateISO, index)
	}
	return e.fallbackArticle(id)
}

func (e *Engine) fallbackArticle(id string) *models.GeneratedArticle {
	slug := strings.ToLower(id)

	var topic string
	for _, key := range e.reg.Topics() {
		if strings.Contains(slug, key) {
			topic = key
			break
		}
	}
	if topic == "" {
		return nil
	}

	t, _ := e.reg.Topic(topic)
	todayISO := DateISO(e.now())
	seed := Hash(id + "|" + todayISO)

	var body []string
	if strings.Contains(slug, primerToken) {
		body = e.buildPrimerBody(t, seed)
	} else {
		body = e.buildBody(t, seed)
	}

	title := pickAt(t.Titles, seed+offTitle)
	return &models.GeneratedArticle{
		ID:      id,
		Topic:   topic,
		DateISO: todayISO,
		Title:   title,
		Excerpt: pickAt(t.Excerpts, seed+offExcerpt),
		Body:    body,
		Quote:   t.Quotes[poolIndex(seed+offQuote, len(t.Quotes))],
		Tags:    appendUnique([]string{topic}, SampleDeterministic(t.Tags, seed+offTags, 2)...),
		Image:   e.buildImageQuery(title, t.ImageKeyword, seed),
	}
}

// buildPrimerBody is the introductory variant served for slugs carrying
// the primer token: fixed opening, three sampled paragraphs, a scripture,
// and a practice.
func (e *Engine) buildPrimerBody(t *TopicPools, seed int) []string {
	s := t.Scriptures[poolIndex(seed+offScripture, len(t.Scriptures))]

	body := make([]string, 0, 6)
	body = append(body, fmt.Sprintf("Begin here. This primer gathers the first steps of %s: what the tradition asks, why it matters, and where to go next.", strings.ToLower(t.Display)))
	body = append(body, SampleDeterministic(t.Paragraphs, seed+offBody, 3)...)
	body = append(body, s.Text+" ("+s.Ref+")")
	body = append(body, pickAt(t.Practices, seed+offPractice))
	return body
}
