package digest

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/content"
	"github.com/selah-content-api/internal/models"
)

// Fixed digest themes. The daily email always carries a mindfulness
// reflection and the weekly roundup a faith-reason one, so subscribers
// can tell the two apart at a glance.
const (
	DailyTheme  = "mindfulness"
	WeeklyTheme = "faith-reason"
)

const dailyArticleCount = 3

// Builder composes dated newsletter bundles from the content engine.
// It never consults image or content overrides: a digest rebuilt months
// later from the same date must byte-match the one that was sent.
type Builder struct {
	engine *content.Engine
	log    zerolog.Logger
}

func NewBuilder(engine *content.Engine, log zerolog.Logger) *Builder {
	return &Builder{
		engine: engine,
		log:    log.With().Str("component", "digest").Logger(),
	}
}

// BuildDaily bundles the date's mindfulness reflection with its first
// three articles.
func (b *Builder) BuildDaily(dateISO string) (*models.Digest, error) {
	day, err := parseISODate(dateISO)
	if err != nil {
		return nil, err
	}

	return &models.Digest{
		Kind:       models.DigestDaily,
		DateISO:    dateISO,
		Subject:    fmt.Sprintf("Daily Reflection — %s", humanDate(day)),
		Reflection: b.engine.ReflectionForDate(dateISO, DailyTheme),
		Articles:   b.engine.ArticlesForDate(dateISO, dailyArticleCount),
	}, nil
}

// BuildWeekly bundles the faith-reason reflection anchored to the end
// date with one representative article from each of the seven days
// ending there, ordered oldest first. Days that yield no article are
// skipped rather than padded.
func (b *Builder) BuildWeekly(endISO string) (*models.Digest, error) {
	end, err := parseISODate(endISO)
	if err != nil {
		return nil, err
	}

	var articles []*models.GeneratedArticle
	for i := 6; i >= 0; i-- {
		day := content.DateISO(end.AddDate(0, 0, -i))
		if picks := b.engine.ArticlesForDate(day, 1); len(picks) > 0 {
			articles = append(articles, picks[0])
		}
	}

	return &models.Digest{
		Kind:       models.DigestWeekly,
		DateISO:    endISO,
		Subject:    fmt.Sprintf("Weekly Digest — week ending %s", humanDate(end)),
		Reflection: b.engine.ReflectionForDate(endISO, WeeklyTheme),
		Articles:   articles,
	}, nil
}

// Build dispatches on kind, the shape the send endpoint and the CLI use.
func (b *Builder) Build(kind models.DigestKind, dateISO string) (*models.Digest, error) {
	switch kind {
	case models.DigestDaily:
		return b.BuildDaily(dateISO)
	case models.DigestWeekly:
		return b.BuildWeekly(dateISO)
	default:
		return nil, fmt.Errorf("unknown digest kind %q", kind)
	}
}

func parseISODate(dateISO string) (time.Time, error) {
	day, err := time.Parse("2006-01-02", dateISO)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid digest date %q: %w", dateISO, err)
	}
	return day.UTC(), nil
}

// humanDate renders the date the way it appears in subject lines.
func humanDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
