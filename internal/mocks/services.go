package mocks

import (
	"context"

	"github.com/selah-content-api/internal/digest"
	"github.com/selah-content-api/internal/models"
	"github.com/selah-content-api/internal/remote"
	"github.com/selah-content-api/internal/service"
)

// MockContentService is a mock implementation of ContentService
type MockContentService struct {
	TopicsFunc            func() []models.TopicSummary
	ThemesFunc            func() []models.ThemeSummary
	ArticlesForDateFunc   func(dateISO string, count int) []*models.GeneratedArticle
	ArticleByIDFunc       func(id string) *models.GeneratedArticle
	ReflectionForDateFunc func(dateISO, theme string) *models.GeneratedReflection
	ResolveArticleFunc    func(articleID string) (models.ResolvedImage, bool)
	ResolveTopicFunc      func(topic string) (models.ResolvedImage, bool)

	TopicList   []models.TopicSummary
	ThemeList   []models.ThemeSummary
	ArticleList []*models.GeneratedArticle
	Reflection  *models.GeneratedReflection
}

// Verify interface compliance
var _ service.ContentService = (*MockContentService)(nil)

func NewMockContentService() *MockContentService {
	return &MockContentService{
		TopicList: []models.TopicSummary{
			{Key: "ethics", Display: "Ethics", Image: "https://img/topics/ethics"},
			{Key: "prayer", Display: "Prayer", Image: "https://img/topics/prayer"},
		},
		ThemeList: []models.ThemeSummary{
			{Key: "mindfulness", Display: "Mindfulness"},
			{Key: "hope", Display: "Hope"},
		},
		ArticleList: []*models.GeneratedArticle{
			{
				ID:      "ethics-20250811-1",
				Topic:   "ethics",
				DateISO: "2025-08-11",
				Title:   "Test Article",
				Excerpt: "A test excerpt.",
				Body:    []string{"First paragraph.", "Second paragraph."},
				Quote:   models.Quote{Text: "Test quote", Author: "Test Author"},
				Tags:    []string{"ethics", "conscience"},
				Image:   "https://img/articles/ethics-20250811-1",
			},
		},
		Reflection: &models.GeneratedReflection{
			DateISO:   "2025-08-11",
			Theme:     "mindfulness",
			Title:     "Test Reflection",
			Scripture: models.Scripture{Text: "Be still.", Ref: "Psalm 46:10"},
			Quote:     models.Quote{Text: "Test quote", Author: "Test Author"},
			Body:      "Reflection body.",
			Prayer:    "A short prayer.",
			Questions: []string{"One question?"},
			Tags:      []string{"mindfulness"},
		},
	}
}

func (m *MockContentService) Topics() []models.TopicSummary {
	if m.TopicsFunc != nil {
		return m.TopicsFunc()
	}
	return m.TopicList
}

func (m *MockContentService) Themes() []models.ThemeSummary {
	if m.ThemesFunc != nil {
		return m.ThemesFunc()
	}
	return m.ThemeList
}

func (m *MockContentService) ArticlesForDate(dateISO string, count int) []*models.GeneratedArticle {
	if m.ArticlesForDateFunc != nil {
		return m.ArticlesForDateFunc(dateISO, count)
	}
	if count > len(m.ArticleList) {
		count = len(m.ArticleList)
	}
	return m.ArticleList[:count]
}

func (m *MockContentService) ArticleByID(id string) *models.GeneratedArticle {
	if m.ArticleByIDFunc != nil {
		return m.ArticleByIDFunc(id)
	}
	for _, a := range m.ArticleList {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (m *MockContentService) ReflectionForDate(dateISO, theme string) *models.GeneratedReflection {
	if m.ReflectionForDateFunc != nil {
		return m.ReflectionForDateFunc(dateISO, theme)
	}
	return m.Reflection
}

func (m *MockContentService) ResolveArticleImage(articleID string) (models.ResolvedImage, bool) {
	if m.ResolveArticleFunc != nil {
		return m.ResolveArticleFunc(articleID)
	}
	if a := m.ArticleByID(articleID); a != nil {
		return models.ResolvedImage{URL: a.Image, Layer: models.LayerGenerated}, true
	}
	return models.ResolvedImage{}, false
}

func (m *MockContentService) ResolveTopicImage(topic string) (models.ResolvedImage, bool) {
	if m.ResolveTopicFunc != nil {
		return m.ResolveTopicFunc(topic)
	}
	for _, t := range m.TopicList {
		if t.Key == topic {
			return models.ResolvedImage{URL: t.Image, Layer: models.LayerGenerated}, true
		}
	}
	return models.ResolvedImage{}, false
}

// MockOverrideService is a mock implementation of OverrideService
type MockOverrideService struct {
	ImportFunc    func(data []byte) (models.MappingSet, error)
	ExportFunc    func(format remote.Format) string
	RefreshFunc   func(ctx context.Context) error
	WriteBackFunc func(ctx context.Context) bool

	Overrides     map[string]models.ContentOverride
	TopicImages   map[string]string
	ArticleImages map[string]string
	SiteWideURL   string
	Preferences   models.Prefs
	ImageWritesOK bool
	Remote        models.MappingSet
	Overlay       models.MappingSet
	WriteBackOn   bool
	Stats         remote.FetcherStats

	ImportedPayloads [][]byte
	RefreshCalls     int
	WriteBackCalls   int
}

// Verify interface compliance
var _ service.OverrideService = (*MockOverrideService)(nil)

func NewMockOverrideService() *MockOverrideService {
	return &MockOverrideService{
		Overrides:     make(map[string]models.ContentOverride),
		TopicImages:   make(map[string]string),
		ArticleImages: make(map[string]string),
		Preferences:   models.DefaultPrefs(),
		ImageWritesOK: true,
		Remote:        models.NewMappingSet(),
		Overlay:       models.NewMappingSet(),
	}
}

func (m *MockOverrideService) ContentOverride(articleID string) (models.ContentOverride, bool) {
	o, ok := m.Overrides[articleID]
	return o, ok
}

func (m *MockOverrideService) SaveContentOverride(articleID string, o models.ContentOverride) {
	m.Overrides[articleID] = o
}

func (m *MockOverrideService) ClearContentOverride(articleID string) {
	delete(m.Overrides, articleID)
}

func (m *MockOverrideService) SetTopicImage(topic, url string) bool {
	if !m.ImageWritesOK {
		return false
	}
	m.TopicImages[topic] = url
	return true
}

func (m *MockOverrideService) ClearTopicImage(topic string) bool {
	if !m.ImageWritesOK {
		return false
	}
	delete(m.TopicImages, topic)
	return true
}

func (m *MockOverrideService) SetArticleImage(articleID, url string) bool {
	if !m.ImageWritesOK {
		return false
	}
	m.ArticleImages[articleID] = url
	return true
}

func (m *MockOverrideService) ClearArticleImage(articleID string) bool {
	if !m.ImageWritesOK {
		return false
	}
	delete(m.ArticleImages, articleID)
	return true
}

func (m *MockOverrideService) SiteWide() string {
	return m.SiteWideURL
}

func (m *MockOverrideService) SetSiteWide(url string) {
	m.SiteWideURL = url
}

func (m *MockOverrideService) ClearSiteWide() {
	m.SiteWideURL = ""
}

func (m *MockOverrideService) Prefs() models.Prefs {
	return m.Preferences
}

func (m *MockOverrideService) SetPrefs(p models.Prefs) {
	m.Preferences = p
}

func (m *MockOverrideService) Mappings() service.MappingsView {
	return service.MappingsView{
		Remote:    m.Remote,
		Overlay:   m.Overlay,
		Effective: m.Effective(),
	}
}

func (m *MockOverrideService) Effective() models.MappingSet {
	eff := m.Remote.Clone()
	for k, v := range m.Overlay.Topics {
		eff.Topics[k] = v
	}
	for k, v := range m.Overlay.Articles {
		eff.Articles[k] = v
	}
	return eff
}

func (m *MockOverrideService) ImportMappings(data []byte) (models.MappingSet, error) {
	if m.ImportFunc != nil {
		return m.ImportFunc(data)
	}
	m.ImportedPayloads = append(m.ImportedPayloads, data)
	return m.Overlay.Clone(), nil
}

func (m *MockOverrideService) ExportMappings(format remote.Format) string {
	if m.ExportFunc != nil {
		return m.ExportFunc(format)
	}
	if format == remote.FormatJSON {
		return remote.ToJSON(m.Effective())
	}
	return remote.ToCSV(m.Effective())
}

func (m *MockOverrideService) RefreshRemote(ctx context.Context) error {
	m.RefreshCalls++
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx)
	}
	return nil
}

func (m *MockOverrideService) WriteBackEnabled() bool {
	return m.WriteBackOn
}

func (m *MockOverrideService) WriteBack(ctx context.Context) bool {
	m.WriteBackCalls++
	if m.WriteBackFunc != nil {
		return m.WriteBackFunc(ctx)
	}
	return true
}

func (m *MockOverrideService) RemoteStats() remote.FetcherStats {
	return m.Stats
}

// MockDigestService is a mock implementation of DigestService
type MockDigestService struct {
	BuildFunc    func(kind models.DigestKind, dateISO string) (*models.Digest, error)
	RenderedFunc func(kind models.DigestKind, dateISO, baseURL string) (digest.Rendered, error)

	Digest    *models.Digest
	Render    digest.Rendered
	CacheSize int
}

// Verify interface compliance
var _ service.DigestService = (*MockDigestService)(nil)

func NewMockDigestService() *MockDigestService {
	reflection := &models.GeneratedReflection{
		DateISO: "2025-08-11",
		Theme:   "mindfulness",
		Title:   "Test Reflection",
		Body:    "Reflection body.",
	}
	article := &models.GeneratedArticle{
		ID:      "ethics-20250811-1",
		Topic:   "ethics",
		DateISO: "2025-08-11",
		Title:   "Test Article",
		Excerpt: "A test excerpt.",
	}
	return &MockDigestService{
		Digest: &models.Digest{
			Kind:       models.DigestDaily,
			DateISO:    "2025-08-11",
			Subject:    "Daily Reflection — August 11, 2025",
			Reflection: reflection,
			Articles:   []*models.GeneratedArticle{article},
		},
		Render: digest.Rendered{
			Kind:    models.DigestDaily,
			DateISO: "2025-08-11",
			Subject: "Daily Reflection — August 11, 2025",
			Text:    "Daily Reflection — August 11, 2025\n",
			HTML:    "<!DOCTYPE html><html><body>Daily</body></html>",
		},
	}
}

func (m *MockDigestService) Build(kind models.DigestKind, dateISO string) (*models.Digest, error) {
	if m.BuildFunc != nil {
		return m.BuildFunc(kind, dateISO)
	}
	return m.Digest, nil
}

func (m *MockDigestService) Rendered(kind models.DigestKind, dateISO, baseURL string) (digest.Rendered, error) {
	if m.RenderedFunc != nil {
		return m.RenderedFunc(kind, dateISO, baseURL)
	}
	return m.Render, nil
}

func (m *MockDigestService) CacheLen() int {
	return m.CacheSize
}
