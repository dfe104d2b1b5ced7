package render

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"folio/internal/models"
)

func testSettings() models.SiteSettings {
	return models.SiteSettings{
		En:     models.LocaleSettings{SiteName: "Folio", AuthorName: "Sara", MetaTitle: "Sara | Folio", MetaDescription: "Engineer"},
		Fa:     models.LocaleSettings{SiteName: "فولیو", AuthorName: "سارا", MetaTitle: "سارا", MetaDescription: "مهندس"},
		SEO:    models.SEOSettings{SiteURL: "https://example.com/"},
		Social: models.SocialLinks{Email: "me@example.com"},
	}
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

var now = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

func TestNewPageData(t *testing.T) {
	d := NewPageData(models.LangFa, testSettings(), "/fa/blog/hello", now)

	if d.Canonical != "https://example.com/fa/blog/hello" {
		t.Errorf("Canonical = %q", d.Canonical)
	}
	if d.Title != "سارا" || d.Site.SiteName != "فولیو" {
		t.Errorf("locale not applied: %+v", d.Site)
	}
	if len(d.Alternates) != 2 || d.Alternates[1].Path != "/en/blog/hello" {
		t.Errorf("Alternates = %+v", d.Alternates)
	}
	if d.Year != 2026 {
		t.Errorf("Year = %d", d.Year)
	}
}

func TestRenderDirection(t *testing.T) {
	r := newRenderer(t)
	tests := []struct {
		lang models.Lang
		want []string
	}{
		{models.LangFa, []string{`lang="fa"`, `dir="rtl"`, "پروژه‌ها", `href="/en"`}},
		{models.LangEn, []string{`lang="en"`, `dir="ltr"`, "Projects", `href="/fa"`}},
	}
	for _, tt := range tests {
		t.Run(string(tt.lang), func(t *testing.T) {
			d := NewPageData(tt.lang, testSettings(), "/"+string(tt.lang), now)
			d.Data = HomeData{}
			out, err := r.Render(PageHome, d)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			for _, s := range tt.want {
				if !strings.Contains(string(out), s) {
					t.Errorf("output missing %q", s)
				}
			}
		})
	}
}

func TestRenderHome(t *testing.T) {
	r := newRenderer(t)
	p := models.Project{Slug: "p1", Title: "Folio", TitleFa: "فولیو", Description: "A site", Category: []string{"Backend"}}
	post := models.BlogPost{Slug: "hello", Title: "Hello", Date: "2024-03-20", Status: models.PostStatusPublished}

	d := NewPageData(models.LangEn, testSettings(), "/en", now)
	d.Data = HomeData{
		Projects: []models.LocalizedProject{p.Localized(models.LangEn)},
		Posts:    []models.LocalizedPost{post.Localized(models.LangEn)},
	}
	out, err := r.Render(PageHome, d)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	body := string(out)
	for _, s := range []string{`href="/en/projects/p1"`, `href="/en/blog/hello"`, "March 20, 2024", "Backend"} {
		if !strings.Contains(body, s) {
			t.Errorf("home missing %q", s)
		}
	}
}

func TestRenderProjectChat(t *testing.T) {
	r := newRenderer(t)
	p := models.Project{
		Slug: "bot", Title: "Bot", Description: "d",
		About:        "Some **bold** idea",
		ShowcaseType: models.ShowcaseAIChatbot,
	}

	d := NewPageData(models.LangEn, testSettings(), "/en/projects/bot", now)
	d.Data = p.Localized(models.LangEn)
	out, err := r.Render(PageProject, d)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	body := string(out)
	if !strings.Contains(body, "/en/projects/bot/chat") {
		t.Error("chat endpoint missing for ai_chatbot project")
	}
	if !strings.Contains(body, "<strong>bold</strong>") {
		t.Error("about section should be rendered as markdown")
	}

	p.ShowcaseType = models.ShowcaseLinks
	d.Data = p.Localized(models.LangEn)
	out, _ = r.Render(PageProject, d)
	if strings.Contains(string(out), "/chat") {
		t.Error("chat widget rendered for a links project")
	}
}

func TestRenderEscapesContent(t *testing.T) {
	r := newRenderer(t)
	post := models.BlogPost{Slug: "x", Title: "<script>alert(1)</script>", Content: "hi <script>alert(2)</script>"}

	d := NewPageData(models.LangEn, testSettings(), "/en/blog/x", now)
	d.Data = post.Localized(models.LangEn)
	out, err := r.Render(PagePost, d)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	body := string(out)
	if strings.Contains(body, "<h1><script>") {
		t.Errorf("title not escaped: %s", body)
	}
	if strings.Contains(body, "alert(2)") {
		t.Errorf("script in markdown body not sanitised: %s", body)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r := newRenderer(t)
	if _, err := r.Render("nope", NewPageData(models.LangEn, testSettings(), "/en", now)); err == nil {
		t.Fatal("expected error")
	}
}

func TestRenderNotFound(t *testing.T) {
	r := newRenderer(t)
	out, err := r.Render(PageNotFound, NewPageData(models.LangFa, testSettings(), "/fa", now))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), "صفحه پیدا نشد") {
		t.Error("persian not-found text missing")
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		lang models.Lang
		in   string
		want string
	}{
		{models.LangEn, "2024-03-20", "March 20, 2024"},
		{models.LangFa, "2024-03-20", "۱ فروردین ۱۴۰۳"},
		{models.LangFa, "2024-01-01", "۱۱ دی ۱۴۰۲"},
		{models.LangFa, "not a date", "not a date"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.lang, tt.in); got != tt.want {
			t.Errorf("FormatDate(%s, %q) = %q, want %q", tt.lang, tt.in, got, tt.want)
		}
	}
}

func TestSitemap(t *testing.T) {
	projects := []models.Project{{Slug: "p1"}}
	posts := []models.BlogPost{
		{Slug: "live", Date: "2024-05-01", Status: models.PostStatusPublished},
		{Slug: "secret", Date: "2024-05-02", Status: models.PostStatusDraft},
	}
	out, err := Sitemap("https://example.com/", projects, posts)
	if err != nil {
		t.Fatalf("Sitemap: %v", err)
	}

	var set urlSet
	if err := xml.Unmarshal(out, &set); err != nil {
		t.Fatalf("invalid xml: %v", err)
	}
	// home, projects, blog, one project, one post, for each language
	if len(set.URLs) != 10 {
		t.Errorf("urls = %d, want 10", len(set.URLs))
	}
	body := string(out)
	for _, s := range []string{"https://example.com/fa/projects/p1", "https://example.com/en/blog/live", "<lastmod>2024-05-01</lastmod>"} {
		if !strings.Contains(body, s) {
			t.Errorf("sitemap missing %q", s)
		}
	}
	if strings.Contains(body, "secret") {
		t.Error("draft post listed in sitemap")
	}
}

func TestFeed(t *testing.T) {
	posts := []models.BlogPost{
		{Slug: "b", Title: "B", TitleFa: "ب", DescriptionFa: "توضیح", Date: "2024-05-02", Status: models.PostStatusPublished},
		{Slug: "draft", Title: "D", Date: "2024-05-03", Status: models.PostStatusDraft},
		{Slug: "a", Title: "A", TitleFa: "الف", Date: "2024-05-01", Status: models.PostStatusPublished},
	}
	out, err := Feed(models.LangFa, testSettings(), posts)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}

	var doc rss
	if err := xml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("invalid xml: %v", err)
	}
	if doc.Version != "2.0" || doc.Channel.Language != "fa" || doc.Channel.Title != "فولیو" {
		t.Errorf("channel = %+v", doc.Channel)
	}
	if len(doc.Channel.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(doc.Channel.Items))
	}
	first := doc.Channel.Items[0]
	if first.Title != "ب" || first.Link != "https://example.com/fa/blog/b" || first.Description != "توضیح" {
		t.Errorf("first item = %+v", first)
	}
	if !strings.HasPrefix(first.PubDate, "Thu, 02 May 2024") {
		t.Errorf("pubDate = %q", first.PubDate)
	}
	if !strings.Contains(string(out), `href="https://example.com/fa/blog/feed.xml"`) {
		t.Error("atom self link missing")
	}
}

func TestFeedLimit(t *testing.T) {
	var posts []models.BlogPost
	for i := 0; i < FeedLimit+5; i++ {
		posts = append(posts, models.BlogPost{Slug: "p", Date: "2024-01-01", Status: models.PostStatusPublished})
	}
	out, err := Feed(models.LangEn, testSettings(), posts)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(out), "<item>"); n != FeedLimit {
		t.Errorf("items = %d, want %d", n, FeedLimit)
	}
}

func TestRobots(t *testing.T) {
	got := string(Robots("https://example.com/"))
	if !strings.Contains(got, "Sitemap: https://example.com/sitemap.xml") || !strings.Contains(got, "Disallow: /admin") {
		t.Errorf("robots = %q", got)
	}
}
