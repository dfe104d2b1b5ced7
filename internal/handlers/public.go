// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"folio/internal/cache"
	"folio/internal/models"
	"folio/internal/render"
	"folio/internal/store"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeXML  = "application/xml; charset=utf-8"
	contentTypeRSS  = "application/rss+xml; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"

	// homeProjects and homePosts bound the home page sections.
	homeProjects = 6
	homePosts    = 3
)

// errPageNotFound makes a page builder answer with the not-found page.
var errPageNotFound = errors.New("page not found")

// ProjectAnswerer answers visitor questions about a project.
type ProjectAnswerer interface {
	Answer(ctx context.Context, projectContext, question string) (string, error)
}

// Public groups the handlers of the public site. Every GET checks the page
// cache before rendering and stores the result on a miss.
type Public struct {
	store       *store.ContentStore
	renderer    *render.Renderer
	pageCache   *cache.PageCache
	qa          ProjectAnswerer
	defaultLang models.Lang
	now         func() time.Time
}

// NewPublic creates the public handler group. qa may be nil when no AI
// provider is configured; the chat endpoint then answers 503.
func NewPublic(st *store.ContentStore, renderer *render.Renderer, pageCache *cache.PageCache, qa ProjectAnswerer, defaultLang models.Lang) *Public {
	return &Public{
		store:       st,
		renderer:    renderer,
		pageCache:   pageCache,
		qa:          qa,
		defaultLang: defaultLang,
		now:         time.Now,
	}
}

// Root redirects to the home page of the default language.
func (p *Public) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/"+string(p.defaultLang), http.StatusFound)
}

// Home renders the latest projects and published posts.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	lang, ok := p.lang(w, r)
	if !ok {
		return
	}
	p.serve(w, r, contentTypeHTML, lang, func(ctx context.Context) ([]byte, error) {
		d, err := p.pageData(ctx, lang, r.URL.Path)
		if err != nil {
			return nil, err
		}
		projects, err := p.store.ListProjects(ctx)
		if err != nil {
			return nil, err
		}
		posts, err := p.store.ListPublishedPosts(ctx)
		if err != nil {
			return nil, err
		}
		d.Data = render.HomeData{
			Projects: localizeProjects(lang, projects[:min(len(projects), homeProjects)]),
			Posts:    localizePosts(lang, posts[:min(len(posts), homePosts)]),
		}
		return p.renderer.Render(render.PageHome, d)
	})
}

// Projects renders the project list.
func (p *Public) Projects(w http.ResponseWriter, r *http.Request) {
	lang, ok := p.lang(w, r)
	if !ok {
		return
	}
	p.serve(w, r, contentTypeHTML, lang, func(ctx context.Context) ([]byte, error) {
		d, err := p.pageData(ctx, lang, r.URL.Path)
		if err != nil {
			return nil, err
		}
		projects, err := p.store.ListProjects(ctx)
		if err != nil {
			return nil, err
		}
		d.Title = render.ListTitle(lang, "projects", d.Site.SiteName)
		d.Data = localizeProjects(lang, projects)
		return p.renderer.Render(render.PageProjects, d)
	})
}

// Project renders a project detail page.
func (p *Public) Project(w http.ResponseWriter, r *http.Request) {
	lang, ok := p.lang(w, r)
	if !ok {
		return
	}
	p.serve(w, r, contentTypeHTML, lang, func(ctx context.Context) ([]byte, error) {
		project, err := p.store.FindProject(ctx, chi.URLParam(r, "slug"))
		if err != nil {
			return nil, notFoundAsPage(err)
		}
		d, err := p.pageData(ctx, lang, r.URL.Path)
		if err != nil {
			return nil, err
		}
		lp := project.Localized(lang)
		d.Title = lp.Title + " | " + d.Site.SiteName
		d.Description = lp.Description
		if lp.Image != "" {
			d.OGImage = lp.Image
		}
		d.Data = lp
		return p.renderer.Render(render.PageProject, d)
	})
}

// Blog renders the list of published posts.
func (p *Public) Blog(w http.ResponseWriter, r *http.Request) {
	lang, ok := p.lang(w, r)
	if !ok {
		return
	}
	p.serve(w, r, contentTypeHTML, lang, func(ctx context.Context) ([]byte, error) {
		d, err := p.pageData(ctx, lang, r.URL.Path)
		if err != nil {
			return nil, err
		}
		posts, err := p.store.ListPublishedPosts(ctx)
		if err != nil {
			return nil, err
		}
		d.Title = render.ListTitle(lang, "blog", d.Site.SiteName)
		d.Data = localizePosts(lang, posts)
		return p.renderer.Render(render.PageBlog, d)
	})
}

// Post renders a published post. Drafts are not found.
func (p *Public) Post(w http.ResponseWriter, r *http.Request) {
	lang, ok := p.lang(w, r)
	if !ok {
		return
	}
	p.serve(w, r, contentTypeHTML, lang, func(ctx context.Context) ([]byte, error) {
		post, err := p.store.FindBlogPost(ctx, chi.URLParam(r, "slug"))
		if err != nil {
			return nil, notFoundAsPage(err)
		}
		if !post.IsPublished() {
			return nil, errPageNotFound
		}
		d, err := p.pageData(ctx, lang, r.URL.Path)
		if err != nil {
			return nil, err
		}
		lp := post.Localized(lang)
		d.Title = lp.MetaTitle
		d.Description = lp.MetaDescription
		d.OGType = "article"
		if lp.OGImage != "" {
			d.OGImage = lp.OGImage
		}
		d.Data = lp
		return p.renderer.Render(render.PagePost, d)
	})
}

// Feed serves the RSS feed of one language.
func (p *Public) Feed(w http.ResponseWriter, r *http.Request) {
	lang, ok := p.lang(w, r)
	if !ok {
		return
	}
	p.serve(w, r, contentTypeRSS, lang, func(ctx context.Context) ([]byte, error) {
		settings, err := p.store.GetSettings(ctx)
		if err != nil {
			return nil, err
		}
		posts, err := p.store.ListPublishedPosts(ctx)
		if err != nil {
			return nil, err
		}
		return render.Feed(lang, *settings, posts)
	})
}

// Sitemap serves sitemap.xml with both language trees.
func (p *Public) Sitemap(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, contentTypeXML, p.defaultLang, func(ctx context.Context) ([]byte, error) {
		settings, err := p.store.GetSettings(ctx)
		if err != nil {
			return nil, err
		}
		projects, err := p.store.ListProjects(ctx)
		if err != nil {
			return nil, err
		}
		posts, err := p.store.ListPublishedPosts(ctx)
		if err != nil {
			return nil, err
		}
		return render.Sitemap(settings.SEO.SiteURL, projects, posts)
	})
}

// Robots serves robots.txt.
func (p *Public) Robots(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, contentTypeText, p.defaultLang, func(ctx context.Context) ([]byte, error) {
		settings, err := p.store.GetSettings(ctx)
		if err != nil {
			return nil, err
		}
		return render.Robots(settings.SEO.SiteURL), nil
	})
}

// NotFound renders the not-found page in the language of the path, if any.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	lang := p.defaultLang
	segment, _, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if l, ok := models.ParseLang(segment); ok {
		lang = l
	}
	p.notFound(w, r, lang)
}

// chatRequest is the body of a project chat request.
type chatRequest struct {
	Question string `json:"question"`
}

// Chat answers a visitor question about a project that offers the AI
// chat showcase.
func (p *Public) Chat(w http.ResponseWriter, r *http.Request) {
	if _, ok := models.ParseLang(chi.URLParam(r, "lang")); !ok {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}
	if p.qa == nil {
		writeError(w, http.StatusServiceUnavailable, "The assistant is not available.")
		return
	}

	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	project, err := p.store.FindProject(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !project.HasChatbot() {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}

	answer, err := p.qa.Answer(r.Context(), project.ChatContext(), req.Question)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

// serve writes the cached page for the request path or builds, caches and
// writes it. Only successful pages are cached, and a page whose content
// changed while it was being built is served but not cached.
func (p *Public) serve(w http.ResponseWriter, r *http.Request, contentType string, lang models.Lang, build func(context.Context) ([]byte, error)) {
	ctx := r.Context()
	key := r.URL.Path

	if page, ok := p.pageCache.Get(ctx, key); ok {
		w.Header().Set("X-Cache", "HIT")
		writeBody(w, contentType, http.StatusOK, page)
		return
	}

	gen := p.pageCache.Generation()
	page, err := build(ctx)
	if errors.Is(err, errPageNotFound) {
		p.notFound(w, r, lang)
		return
	}
	if err != nil {
		slog.Error("build page failed", "error", err, "path", key)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.pageCache.Fill(ctx, key, page, gen)
	w.Header().Set("X-Cache", "MISS")
	writeBody(w, contentType, http.StatusOK, page)
}

// notFound writes the not-found page. It is never cached, and falls back
// to the default settings when the store cannot be read.
func (p *Public) notFound(w http.ResponseWriter, r *http.Request, lang models.Lang) {
	settings, err := p.store.GetSettings(r.Context())
	if err != nil {
		slog.Error("load settings for not-found page failed", "error", err)
		d := store.DefaultSettings()
		settings = &d
	}
	d := render.NewPageData(lang, *settings, "/"+string(lang), p.now())
	d.Title = render.Label(lang, "not_found_title") + " | " + d.Site.SiteName

	page, err := p.renderer.Render(render.PageNotFound, d)
	if err != nil {
		slog.Error("render not-found page failed", "error", err)
		http.NotFound(w, r)
		return
	}
	writeBody(w, contentTypeHTML, http.StatusNotFound, page)
}

func (p *Public) lang(w http.ResponseWriter, r *http.Request) (models.Lang, bool) {
	lang, ok := models.ParseLang(chi.URLParam(r, "lang"))
	if !ok {
		p.notFound(w, r, p.defaultLang)
		return "", false
	}
	return lang, true
}

func (p *Public) pageData(ctx context.Context, lang models.Lang, path string) (*render.PageData, error) {
	settings, err := p.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return render.NewPageData(lang, *settings, path, p.now()), nil
}

func notFoundAsPage(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errPageNotFound
	}
	return err
}

func localizeProjects(lang models.Lang, projects []models.Project) []models.LocalizedProject {
	out := make([]models.LocalizedProject, 0, len(projects))
	for i := range projects {
		out = append(out, projects[i].Localized(lang))
	}
	return out
}

func localizePosts(lang models.Lang, posts []models.BlogPost) []models.LocalizedPost {
	out := make([]models.LocalizedPost, 0, len(posts))
	for i := range posts {
		out = append(out, posts[i].Localized(lang))
	}
	return out
}

func writeBody(w http.ResponseWriter, contentType string, status int, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Debug("write response failed", "error", err)
	}
}
