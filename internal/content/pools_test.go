package content

import (
	"testing"

	"github.com/selah-content-api/internal/models"
)

func TestLoadRegistry(t *testing.T) {
	reg, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	wantTopics := []string{"ethics", "theology", "metaphysics", "scripture", "prayer", "virtue", "suffering", "gratitude"}
	gotTopics := reg.Topics()
	if len(gotTopics) != len(wantTopics) {
		t.Fatalf("got %d topics, want %d", len(gotTopics), len(wantTopics))
	}
	for i, want := range wantTopics {
		if gotTopics[i] != want {
			t.Errorf("topic[%d] = %q, want %q", i, gotTopics[i], want)
		}
	}

	wantThemes := []string{"mindfulness", "faith-reason", "hope", "gratitude", "forgiveness", "stillness"}
	gotThemes := reg.Themes()
	if len(gotThemes) != len(wantThemes) {
		t.Fatalf("got %d themes, want %d", len(gotThemes), len(wantThemes))
	}
	for i, want := range wantThemes {
		if gotThemes[i] != want {
			t.Errorf("theme[%d] = %q, want %q", i, gotThemes[i], want)
		}
	}
}

func TestDefault_SingleInstance(t *testing.T) {
	if Default() != Default() {
		t.Error("Default returned different registry instances")
	}
}

func TestRegistry_Lookups(t *testing.T) {
	reg := Default()

	eth, ok := reg.Topic("ethics")
	if !ok {
		t.Fatal("ethics topic missing")
	}
	if eth.Display == "" || eth.ImageKeyword == "" {
		t.Error("ethics topic missing display or imageKeyword")
	}
	if _, ok := reg.Topic("astrology"); ok {
		t.Error("unknown topic reported as present")
	}

	if _, ok := reg.Theme("mindfulness"); !ok {
		t.Error("mindfulness theme missing")
	}
	if _, ok := reg.Theme("nope"); ok {
		t.Error("unknown theme reported as present")
	}
}

func TestRegistry_Stopwords(t *testing.T) {
	reg := Default()
	if !reg.IsStopword("that") {
		t.Error("expected that to be a stopword")
	}
	if reg.IsStopword("mercy") {
		t.Error("mercy should not be a stopword")
	}
}

func TestRegistry_ValidateRejectsThinPools(t *testing.T) {
	full := Default()
	eth, _ := full.Topic("ethics")

	thin := *eth
	thin.Titles = []string{"only one"}

	r := &Registry{
		topics:     map[string]*TopicPools{"ethics": &thin},
		topicOrder: []string{"ethics"},
		themes:     full.themes,
		themeOrder: full.themeOrder,
		shared:     full.shared,
	}
	if err := r.validate(); err == nil {
		t.Error("expected validation error for one-title topic")
	}
}

func TestRegistry_ValidateRejectsEmpty(t *testing.T) {
	r := &Registry{
		topics: map[string]*TopicPools{},
		themes: map[string]*ThemePools{},
	}
	if err := r.validate(); err == nil {
		t.Error("expected validation error for empty registry")
	}
}

// Pool entries must be non-empty strings; an accidental blank line in the
// YAML would otherwise surface as a blank paragraph in articles.
func TestRegistry_NoBlankEntries(t *testing.T) {
	reg := Default()
	for _, key := range reg.Topics() {
		tp, _ := reg.Topic(key)
		checkNoBlank(t, key+" titles", tp.Titles)
		checkNoBlank(t, key+" excerpts", tp.Excerpts)
		checkNoBlank(t, key+" paragraphs", tp.Paragraphs)
		checkNoBlank(t, key+" practices", tp.Practices)
		checkNoBlank(t, key+" tags", tp.Tags)
		checkNoBlankQuotes(t, key, tp.Quotes)
		for i, s := range tp.Scriptures {
			if s.Text == "" || s.Ref == "" {
				t.Errorf("%s scripture[%d] has empty field", key, i)
			}
		}
	}
	for _, key := range reg.Themes() {
		th, _ := reg.Theme(key)
		checkNoBlank(t, key+" titles", th.Titles)
		checkNoBlank(t, key+" bodies", th.Bodies)
		checkNoBlank(t, key+" prayers", th.Prayers)
		checkNoBlank(t, key+" questions", th.Questions)
		checkNoBlankQuotes(t, key, th.Quotes)
	}
	sh := reg.Shared()
	checkNoBlank(t, "connectives", sh.Connectives)
	checkNoBlank(t, "styleWords", sh.StyleWords)
	checkNoBlank(t, "paletteColors", sh.PaletteColors)
}

func checkNoBlank(t *testing.T, label string, pool []string) {
	t.Helper()
	for i, s := range pool {
		if s == "" {
			t.Errorf("%s[%d] is empty", label, i)
		}
	}
}

func checkNoBlankQuotes(t *testing.T, label string, quotes []models.Quote) {
	t.Helper()
	for i, q := range quotes {
		if q.Text == "" || q.Author == "" {
			t.Errorf("%s quote[%d] has empty field", label, i)
		}
	}
}
