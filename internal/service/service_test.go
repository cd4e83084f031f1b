package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/bus"
	"github.com/selah-content-api/internal/config"
	"github.com/selah-content-api/internal/content"
	"github.com/selah-content-api/internal/models"
	"github.com/selah-content-api/internal/overlay"
	"github.com/selah-content-api/internal/remote"
	"github.com/selah-content-api/internal/service"
	"github.com/selah-content-api/internal/store"
)

func newTestServices(mode config.ExecutionMode, mappingURL string) (*service.Services, *overlay.Stores) {
	st := store.NewMemoryStore()
	b := bus.New()
	engine := content.NewEngine(content.Default(), st, zerolog.Nop())
	stores := overlay.NewStores(st, b, zerolog.Nop())
	fetcher := remote.NewFetcher(config.RemoteConfig{MappingURL: mappingURL}, b, zerolog.Nop())
	resolver := overlay.NewResolver(mode, stores.Images, stores.Overlay, fetcher, zerolog.Nop())
	writeBack := remote.NewWriteBack(config.RemoteConfig{}, zerolog.Nop())

	return service.NewServices(engine, stores, resolver, fetcher, writeBack, zerolog.Nop()), stores
}

func TestContentService_ArticlesApplyOverridesAndResolution(t *testing.T) {
	svcs, _ := newTestServices(config.ModeLocal, "")

	first := svcs.Content.ArticlesForDate("2025-08-11", 1)
	if len(first) != 1 {
		t.Fatalf("expected 1 article, got %d", len(first))
	}
	id := first[0].ID

	svcs.Override.SaveContentOverride(id, models.ContentOverride{Title: "An Edited Title"})
	if !svcs.Override.SetArticleImage(id, "https://img/edited") {
		t.Fatal("image write rejected in local mode")
	}

	again := svcs.Content.ArticlesForDate("2025-08-11", 1)
	if again[0].Title != "An Edited Title" {
		t.Errorf("Title = %q, want override applied", again[0].Title)
	}
	if again[0].Image != "https://img/edited" {
		t.Errorf("Image = %q, want local override", again[0].Image)
	}
	if again[0].Excerpt != first[0].Excerpt {
		t.Errorf("Excerpt changed: %q -> %q", first[0].Excerpt, again[0].Excerpt)
	}
}

func TestContentService_ArticleByID(t *testing.T) {
	svcs, _ := newTestServices(config.ModeLocal, "")

	a := svcs.Content.ArticleByID("ethics-20250811-1")
	if a == nil {
		t.Fatal("dated ID should resolve")
	}
	if a.Topic != "ethics" || a.DateISO != "2025-08-11" {
		t.Errorf("got topic %q date %q", a.Topic, a.DateISO)
	}

	if svcs.Content.ArticleByID("zzz-nothing-matches-zzz") != nil {
		t.Error("unmatched ID should be nil")
	}
}

func TestContentService_Topics(t *testing.T) {
	svcs, _ := newTestServices(config.ModePublic, "")

	topics := svcs.Content.Topics()
	if len(topics) != 8 {
		t.Fatalf("expected 8 topics, got %d", len(topics))
	}
	if topics[0].Key != "ethics" || topics[0].Display != "Ethics" {
		t.Errorf("first topic = %+v", topics[0])
	}
	for _, tp := range topics {
		if tp.Image == "" {
			t.Errorf("topic %s has no resolved image", tp.Key)
		}
	}
}

func TestContentService_Themes(t *testing.T) {
	svcs, _ := newTestServices(config.ModePublic, "")

	themes := svcs.Content.Themes()
	if len(themes) != 6 {
		t.Fatalf("expected 6 themes, got %d", len(themes))
	}
	if themes[0].Key != "mindfulness" || themes[0].Display != "Mindfulness" {
		t.Errorf("first theme = %+v", themes[0])
	}
}

func TestContentService_ResolveImages(t *testing.T) {
	svcs, _ := newTestServices(config.ModeLocal, "")

	resolved, ok := svcs.Content.ResolveTopicImage("metaphysics")
	if !ok {
		t.Fatal("known topic must resolve")
	}
	if resolved.Layer != models.LayerGenerated {
		t.Errorf("untouched topic resolved at layer %q", resolved.Layer)
	}

	svcs.Override.SetTopicImage("metaphysics", "https://img/m")
	resolved, _ = svcs.Content.ResolveTopicImage("metaphysics")
	if resolved.Layer != models.LayerLocalTopic || resolved.URL != "https://img/m" {
		t.Errorf("after write: %+v", resolved)
	}

	if _, ok := svcs.Content.ResolveTopicImage("no-such-topic"); ok {
		t.Error("unknown topic must not resolve")
	}
	if _, ok := svcs.Content.ResolveArticleImage("zzz-nothing-matches-zzz"); ok {
		t.Error("unmatched article ID must not resolve")
	}
}

func TestOverrideService_EffectiveMerge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("type,key,url\ntopic,ethics,https://remote/e\narticle,ethics-primer,https://remote/p"))
	}))
	defer srv.Close()

	svcs, _ := newTestServices(config.ModeLocal, srv.URL)
	if err := svcs.Override.RefreshRemote(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	imported, err := svcs.Override.ImportMappings([]byte("type,key,url\ntopic,ethics,https://overlay/e"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported.Len() != 1 {
		t.Fatalf("imported %d rows, want 1", imported.Len())
	}

	eff := svcs.Override.Effective()
	if eff.Topics["ethics"] != "https://overlay/e" {
		t.Errorf("overlay must win per key, got %q", eff.Topics["ethics"])
	}
	if eff.Articles["ethics-primer"] != "https://remote/p" {
		t.Errorf("remote entries without overlay must survive, got %q", eff.Articles["ethics-primer"])
	}

	view := svcs.Override.Mappings()
	if view.Remote.Topics["ethics"] != "https://remote/e" {
		t.Errorf("remote view = %v", view.Remote)
	}
	if view.Overlay.Topics["ethics"] != "https://overlay/e" {
		t.Errorf("overlay view = %v", view.Overlay)
	}
}

func TestOverrideService_ImportRejectsEmptyPayload(t *testing.T) {
	svcs, stores := newTestServices(config.ModeLocal, "")
	stores.Overlay.SetTopic("ethics", "https://keep/me")

	if _, err := svcs.Override.ImportMappings([]byte("complete garbage")); err == nil {
		t.Fatal("garbage import must fail")
	}
	if stores.Overlay.Get().Topics["ethics"] != "https://keep/me" {
		t.Error("failed import must not touch the overlay")
	}
}

func TestOverrideService_ExportFormats(t *testing.T) {
	svcs, stores := newTestServices(config.ModeLocal, "")
	stores.Overlay.SetTopic("ethics", "https://img/e")

	csvOut := svcs.Override.ExportMappings(remote.FormatCSV)
	if !strings.HasPrefix(csvOut, "type,key,url\n") || !strings.Contains(csvOut, "topic,ethics,https://img/e") {
		t.Errorf("CSV export:\n%s", csvOut)
	}

	jsonOut := svcs.Override.ExportMappings(remote.FormatJSON)
	if !strings.HasPrefix(jsonOut, "{") || !strings.Contains(jsonOut, `"ethics": "https://img/e"`) {
		t.Errorf("JSON export:\n%s", jsonOut)
	}
}

func TestOverrideService_ImageWritesRespectMode(t *testing.T) {
	public, stores := newTestServices(config.ModePublic, "")
	if public.Override.SetTopicImage("ethics", "https://img/e") {
		t.Error("public mode must reject image writes")
	}
	if len(stores.Images.TopicImages()) != 0 {
		t.Error("public mode write leaked into the store")
	}

	local, _ := newTestServices(config.ModeLocal, "")
	if !local.Override.SetTopicImage("ethics", "https://img/e") {
		t.Error("local mode must accept image writes")
	}
	if !local.Override.ClearTopicImage("ethics") {
		t.Error("local mode must accept image clears")
	}
}

func TestOverrideService_SiteWideAndPrefs(t *testing.T) {
	svcs, _ := newTestServices(config.ModePublic, "")

	if svcs.Override.SiteWide() != "" {
		t.Error("site-wide should start empty")
	}
	svcs.Override.SetSiteWide("https://img/all")
	if svcs.Override.SiteWide() != "https://img/all" {
		t.Error("site-wide set did not stick")
	}
	svcs.Override.ClearSiteWide()
	if svcs.Override.SiteWide() != "" {
		t.Error("site-wide clear did not stick")
	}

	p := svcs.Override.Prefs()
	if !p.HoverEffects || !p.Images {
		t.Errorf("default prefs = %+v", p)
	}
	svcs.Override.SetPrefs(models.Prefs{HoverEffects: false, Images: true})
	if p = svcs.Override.Prefs(); p.HoverEffects {
		t.Errorf("prefs update did not stick: %+v", p)
	}
}

func TestDigestService_RenderedCaches(t *testing.T) {
	svcs, _ := newTestServices(config.ModePublic, "")

	if svcs.Digest.CacheLen() != 0 {
		t.Fatalf("cache should start empty, len %d", svcs.Digest.CacheLen())
	}

	first, err := svcs.Digest.Rendered(models.DigestDaily, "2025-08-11", "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if first.Subject == "" || first.Text == "" || first.HTML == "" {
		t.Fatalf("incomplete render: %+v", first)
	}
	if svcs.Digest.CacheLen() != 1 {
		t.Errorf("cache len = %d, want 1", svcs.Digest.CacheLen())
	}

	second, err := svcs.Digest.Rendered(models.DigestDaily, "2025-08-11", "")
	if err != nil {
		t.Fatalf("cached render: %v", err)
	}
	if second != first {
		t.Error("cache hit differs from first render")
	}

	if _, err := svcs.Digest.Rendered(models.DigestDaily, "not-a-date", ""); err == nil {
		t.Error("bad date must error")
	}
	if _, err := svcs.Digest.Rendered("monthly", "2025-08-11", ""); err == nil {
		t.Error("unknown kind must error")
	}
}

func TestDigestService_BuildIgnoresOverrides(t *testing.T) {
	svcs, _ := newTestServices(config.ModeLocal, "")

	plain, err := svcs.Digest.Build(models.DigestDaily, "2025-08-11")
	if err != nil {
		t.Fatal(err)
	}
	svcs.Override.SaveContentOverride(plain.Articles[0].ID, models.ContentOverride{Title: "Edited"})
	svcs.Override.SetArticleImage(plain.Articles[0].ID, "https://img/e")

	again, err := svcs.Digest.Build(models.DigestDaily, "2025-08-11")
	if err != nil {
		t.Fatal(err)
	}
	if again.Articles[0].Title != plain.Articles[0].Title {
		t.Error("digest picked up a content override")
	}
	if again.Articles[0].Image != plain.Articles[0].Image {
		t.Error("digest picked up an image override")
	}
}
