package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selah-content-api/internal/models"
)

func buildFixtureDigest(t *testing.T) *models.Digest {
	t.Helper()
	d, err := newTestBuilder().BuildDaily("2025-08-11")
	require.NoError(t, err)
	return d
}

func TestArticleLink(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
	}{
		{"no base url", "", "#/articles/ethics-20250811-1"},
		{"base url", "https://selah.example", "https://selah.example/#/articles/ethics-20250811-1"},
		{"trailing slash trimmed", "https://selah.example/", "https://selah.example/#/articles/ethics-20250811-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, articleLink(tt.baseURL, "ethics-20250811-1"))
		})
	}
}

func TestRenderText(t *testing.T) {
	d := buildFixtureDigest(t)
	out := RenderText(d, "")

	assert.True(t, strings.HasPrefix(out, d.Subject+"\n"+textRule), "missing subject header")
	assert.Contains(t, out, d.Reflection.Title)
	assert.Contains(t, out, d.Reflection.Scripture.Text+" ("+d.Reflection.Scripture.Ref+")")
	assert.Contains(t, out, "Prayer: "+d.Reflection.Prayer)
	for _, q := range d.Reflection.Questions {
		assert.Contains(t, out, "  - "+q)
	}
	for _, a := range d.Articles {
		assert.Contains(t, out, "* "+a.Title)
		assert.Contains(t, out, "  "+a.Excerpt)
		assert.Contains(t, out, "  #/articles/"+a.ID)
	}
	assert.Contains(t, out, "\""+d.Reflection.Quote.Text+"\"")

	assert.Equal(t, out, RenderText(d, ""), "rendering is not stable")
}

func TestRenderText_BaseURL(t *testing.T) {
	d := buildFixtureDigest(t)
	out := RenderText(d, "https://selah.example")

	for _, a := range d.Articles {
		assert.Contains(t, out, "https://selah.example/#/articles/"+a.ID)
	}
	assert.NotContains(t, out, "  #/articles/")
}

func TestRenderHTML_SingleTableDocument(t *testing.T) {
	d := buildFixtureDigest(t)
	out := RenderHTML(d, "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, 1, doc.Find("table").Length(), "email layout must be a single table")
	assert.Equal(t, d.Subject, doc.Find("h1").Text())
	assert.Equal(t, d.Reflection.Title, doc.Find("h2").Text())

	links := doc.Find("h3 a")
	require.Equal(t, len(d.Articles), links.Length())
	links.Each(func(i int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		require.True(t, ok)
		assert.Equal(t, articleLink("", d.Articles[i].ID), href)
		assert.Equal(t, d.Articles[i].Title, s.Text())
	})
}

func TestRenderHTML_BaseURLMakesLinksAbsolute(t *testing.T) {
	d := buildFixtureDigest(t)
	out := RenderHTML(d, "https://selah.example/")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	doc.Find("h3 a").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		assert.True(t, strings.HasPrefix(href, "https://selah.example/#/articles/"), "href %q", href)
	})
}

func TestRenderHTML_PreservesLiteralText(t *testing.T) {
	d := buildFixtureDigest(t)
	out := RenderHTML(d, "")

	assert.Contains(t, out, d.Reflection.Body)
	assert.Contains(t, out, d.Reflection.Scripture.Text)
	for _, a := range d.Articles {
		assert.Contains(t, out, a.Excerpt)
	}
	assert.Equal(t, out, RenderHTML(d, ""), "rendering is not stable")
}

func TestCache(t *testing.T) {
	c := NewCache(8, time.Minute)

	r := Rendered{
		Kind:    models.DigestDaily,
		DateISO: "2025-08-11",
		Subject: "Daily Reflection — August 11, 2025",
		Text:    "text",
		HTML:    "<html></html>",
	}
	c.Add(models.DigestDaily, "2025-08-11", "", r)

	got, ok := c.Get(models.DigestDaily, "2025-08-11", "")
	require.True(t, ok)
	assert.Equal(t, r, got)

	_, ok = c.Get(models.DigestDaily, "2025-08-11", "https://selah.example")
	assert.False(t, ok, "base URL is part of the cache key")
	_, ok = c.Get(models.DigestWeekly, "2025-08-11", "")
	assert.False(t, ok, "kind is part of the cache key")
	assert.Equal(t, 1, c.Len())
}
