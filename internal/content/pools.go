package content

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/selah-content-api/internal/models"
)

//go:embed pools/*.yaml
var poolFiles embed.FS

// TopicPools holds the curated fragments for one article topic. Pools
// are loaded once at startup and never mutated afterward; every
// generated article is assembled from these tables.
type TopicPools struct {
	Key          string             `yaml:"key"`
	Display      string             `yaml:"display"`
	ImageKeyword string             `yaml:"imageKeyword"`
	Titles       []string           `yaml:"titles"`
	Excerpts     []string           `yaml:"excerpts"`
	Paragraphs   []string           `yaml:"paragraphs"`
	Quotes       []models.Quote     `yaml:"quotes"`
	Scriptures   []models.Scripture `yaml:"scriptures"`
	Practices    []string           `yaml:"practices"`
	Tags         []string           `yaml:"tags"`
}

// ThemePools holds the curated fragments for one reflection theme.
type ThemePools struct {
	Key        string             `yaml:"key"`
	Display    string             `yaml:"display"`
	Titles     []string           `yaml:"titles"`
	Scriptures []models.Scripture `yaml:"scriptures"`
	Quotes     []models.Quote     `yaml:"quotes"`
	Bodies     []string           `yaml:"bodies"`
	Prayers    []string           `yaml:"prayers"`
	Questions  []string           `yaml:"questions"`
	Tags       []string           `yaml:"tags"`
}

// SharedPools holds fragments used across all topics and themes.
type SharedPools struct {
	Connectives   []string `yaml:"connectives"`
	StyleWords    []string `yaml:"styleWords"`
	PaletteColors []string `yaml:"paletteColors"`
	Stopwords     []string `yaml:"stopwords"`
}

type topicsFile struct {
	Topics []*TopicPools `yaml:"topics"`
}

type themesFile struct {
	Themes []*ThemePools `yaml:"themes"`
}

// Registry is the full set of content pools, keyed by topic and theme.
// Order follows the YAML documents and is stable across runs, which the
// fallback-slug matcher and the per-date topic rotation both rely on.
type Registry struct {
	topics     map[string]*TopicPools
	topicOrder []string
	themes     map[string]*ThemePools
	themeOrder []string
	shared     SharedPools
	stopwords  map[string]struct{}
}

// LoadRegistry parses the embedded pool tables and validates them.
// Structural problems (missing pools, duplicate keys, pools too small
// to sample from) are configuration errors and fail loading outright.
func LoadRegistry() (*Registry, error) {
	var tf topicsFile
	if err := decodePool("pools/topics.yaml", &tf); err != nil {
		return nil, err
	}
	var hf themesFile
	if err := decodePool("pools/themes.yaml", &hf); err != nil {
		return nil, err
	}
	var sh SharedPools
	if err := decodePool("pools/shared.yaml", &sh); err != nil {
		return nil, err
	}

	r := &Registry{
		topics:    make(map[string]*TopicPools, len(tf.Topics)),
		themes:    make(map[string]*ThemePools, len(hf.Themes)),
		shared:    sh,
		stopwords: make(map[string]struct{}, len(sh.Stopwords)),
	}
	for _, t := range tf.Topics {
		if _, dup := r.topics[t.Key]; dup {
			return nil, fmt.Errorf("content: duplicate topic key %q", t.Key)
		}
		r.topics[t.Key] = t
		r.topicOrder = append(r.topicOrder, t.Key)
	}
	for _, th := range hf.Themes {
		if _, dup := r.themes[th.Key]; dup {
			return nil, fmt.Errorf("content: duplicate theme key %q", th.Key)
		}
		r.themes[th.Key] = th
		r.themeOrder = append(r.themeOrder, th.Key)
	}
	for _, w := range sh.Stopwords {
		r.stopwords[w] = struct{}{}
	}

	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func decodePool(name string, out any) error {
	raw, err := poolFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("content: read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("content: parse %s: %w", name, err)
	}
	return nil
}

func (r *Registry) validate() error {
	if len(r.topicOrder) == 0 {
		return fmt.Errorf("content: no topics defined")
	}
	if len(r.themeOrder) == 0 {
		return fmt.Errorf("content: no themes defined")
	}
	for _, key := range r.topicOrder {
		t := r.topics[key]
		if t.Key == "" || t.Display == "" || t.ImageKeyword == "" {
			return fmt.Errorf("content: topic %q missing key/display/imageKeyword", key)
		}
		if err := minLen(key, "titles", len(t.Titles), 2); err != nil {
			return err
		}
		if err := minLen(key, "excerpts", len(t.Excerpts), 1); err != nil {
			return err
		}
		// Body sampling draws up to four paragraphs without repeats.
		if err := minLen(key, "paragraphs", len(t.Paragraphs), 4); err != nil {
			return err
		}
		if err := minLen(key, "quotes", len(t.Quotes), 1); err != nil {
			return err
		}
		if err := minLen(key, "scriptures", len(t.Scriptures), 1); err != nil {
			return err
		}
		if err := minLen(key, "practices", len(t.Practices), 1); err != nil {
			return err
		}
		if err := minLen(key, "tags", len(t.Tags), 2); err != nil {
			return err
		}
	}
	for _, key := range r.themeOrder {
		th := r.themes[key]
		if th.Key == "" || th.Display == "" {
			return fmt.Errorf("content: theme %q missing key/display", key)
		}
		if err := minLen(key, "titles", len(th.Titles), 2); err != nil {
			return err
		}
		if err := minLen(key, "scriptures", len(th.Scriptures), 1); err != nil {
			return err
		}
		if err := minLen(key, "quotes", len(th.Quotes), 1); err != nil {
			return err
		}
		if err := minLen(key, "bodies", len(th.Bodies), 2); err != nil {
			return err
		}
		if err := minLen(key, "prayers", len(th.Prayers), 1); err != nil {
			return err
		}
		if err := minLen(key, "questions", len(th.Questions), 3); err != nil {
			return err
		}
		if err := minLen(key, "tags", len(th.Tags), 1); err != nil {
			return err
		}
	}
	if err := minLen("shared", "connectives", len(r.shared.Connectives), 1); err != nil {
		return err
	}
	if err := minLen("shared", "styleWords", len(r.shared.StyleWords), 4); err != nil {
		return err
	}
	if err := minLen("shared", "paletteColors", len(r.shared.PaletteColors), 2); err != nil {
		return err
	}
	return nil
}

func minLen(key, pool string, got, want int) error {
	if got < want {
		return fmt.Errorf("content: %s pool %q has %d entries, need at least %d", key, pool, got, want)
	}
	return nil
}

// Topic returns the pools for a topic key.
func (r *Registry) Topic(key string) (*TopicPools, bool) {
	t, ok := r.topics[key]
	return t, ok
}

// Topics returns topic keys in registration order.
func (r *Registry) Topics() []string {
	out := make([]string, len(r.topicOrder))
	copy(out, r.topicOrder)
	return out
}

// Theme returns the pools for a theme key.
func (r *Registry) Theme(key string) (*ThemePools, bool) {
	th, ok := r.themes[key]
	return th, ok
}

// Themes returns theme keys in registration order.
func (r *Registry) Themes() []string {
	out := make([]string, len(r.themeOrder))
	copy(out, r.themeOrder)
	return out
}

// Shared returns the cross-topic pools.
func (r *Registry) Shared() SharedPools {
	return r.shared
}

// IsStopword reports whether a lowercased title term is excluded from
// image query extraction.
func (r *Registry) IsStopword(w string) bool {
	_, ok := r.stopwords[w]
	return ok
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the registry built from the embedded pool tables.
// The tables ship with the binary, so a load failure here is a build
// defect and panics rather than limping along with no content.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		r, err := LoadRegistry()
		if err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}
