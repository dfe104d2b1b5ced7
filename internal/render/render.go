// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render produces the public site: bilingual HTML pages from
// embedded templates, minified before they are cached, plus the sitemap
// and per-language RSS feeds.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"
	"time"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"folio/internal/markdown"
	"folio/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	PageHome     = "home"
	PageProjects = "projects"
	PageProject  = "project"
	PageBlog     = "blog"
	PagePost     = "post"
	PageNotFound = "not_found"
)

var pageNames = []string{PageHome, PageProjects, PageProject, PageBlog, PagePost, PageNotFound}

// Alternate links a page to its translation.
type Alternate struct {
	Lang models.Lang
	Path string
	URL  string
}

// PageData holds everything the layout and page templates can use.
type PageData struct {
	Lang        models.Lang
	Site        models.LocaleSettings
	Settings    models.SiteSettings
	SiteURL     string
	Path        string
	Title       string
	Description string
	Canonical   string
	OGImage     string
	OGType      string
	Alternates  []Alternate
	Year        int
	Data        any // page-specific: HomeData, []LocalizedProject, ...
}

// HomeData is the Data of the home page.
type HomeData struct {
	Projects []models.LocalizedProject
	Posts    []models.LocalizedPost
}

// NewPageData fills the fields shared by every page. path is the
// language-prefixed request path; its translations are derived by
// swapping the prefix.
func NewPageData(lang models.Lang, s models.SiteSettings, path string, now time.Time) *PageData {
	site := s.Locale(lang)
	base := strings.TrimRight(s.SEO.SiteURL, "/")
	d := &PageData{
		Lang:        lang,
		Site:        site,
		Settings:    s,
		SiteURL:     base,
		Path:        path,
		Title:       site.MetaTitle,
		Description: site.MetaDescription,
		Canonical:   base + path,
		OGImage:     s.SEO.OGImage,
		OGType:      "website",
		Year:        now.Year(),
	}
	rest := strings.TrimPrefix(path, "/"+string(lang))
	for _, l := range models.Langs {
		p := "/" + string(l) + rest
		d.Alternates = append(d.Alternates, Alternate{Lang: l, Path: p, URL: base + p})
	}
	return d
}

// Renderer executes the public page templates.
type Renderer struct {
	pages    map[string]*template.Template
	minifier *minify.M
}

// New parses every page template together with the layout and partials.
func New() (*Renderer, error) {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	m.Add("text/html", &html.Minifier{
		KeepDefaultAttrVals: true,
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
	})

	r := &Renderer{pages: make(map[string]*template.Template), minifier: m}
	for _, name := range pageNames {
		tmpl, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS,
			"templates/base.html", "templates/partials.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// Render executes a page and returns minified HTML. A minifier failure
// falls back to the unminified output.
func (r *Renderer) Render(name string, data *PageData) ([]byte, error) {
	tmpl, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", name, err)
	}
	out, err := r.minifier.Bytes("text/html", buf.Bytes())
	if err != nil {
		return buf.Bytes(), nil
	}
	return out, nil
}

type cardData struct {
	Lang models.Lang
	Item any
}

var funcMap = template.FuncMap{
	"t":    Label,
	"md":   markdown.ToHTML,
	"date": FormatDate,
	"card": func(l models.Lang, item any) cardData {
		return cardData{Lang: l, Item: item}
	},
}
