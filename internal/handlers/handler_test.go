// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the handler
// tests: a content store in a temp directory, an in-process page cache,
// and fakes for the AI flows, the uploader and the backup service.
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"folio/internal/assistant"
	"folio/internal/cache"
	"folio/internal/metrics"
	"folio/internal/models"
	"folio/internal/render"
	"folio/internal/storage"
	"folio/internal/store"
)

// fakeQA records the last question and returns a canned answer.
type fakeQA struct {
	answer      string
	err         error
	gotContext  string
	gotQuestion string
	calls       int
}

func (f *fakeQA) Answer(_ context.Context, projectContext, question string) (string, error) {
	f.calls++
	f.gotContext, f.gotQuestion = projectContext, question
	return f.answer, f.err
}

type fakeWriter struct {
	post *assistant.GeneratedPost
	err  error
}

func (f *fakeWriter) Generate(context.Context, string, string) (*assistant.GeneratedPost, error) {
	return f.post, f.err
}

type fakeBackups struct {
	key   string
	err   error
	calls int
}

func (f *fakeBackups) Run(context.Context) (string, error) {
	f.calls++
	return f.key, f.err
}

// fakeUploader keeps the last uploaded object in memory.
type fakeUploader struct {
	mu          sync.Mutex
	key         string
	contentType string
	body        []byte
	err         error
}

func (f *fakeUploader) Upload(_ context.Context, key, contentType string, body io.Reader, _ int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.key, f.contentType, f.body = key, contentType, data
	return storage.LocalPrefix + key, nil
}

func (f *fakeUploader) Archive(context.Context, string, []byte) error { return nil }

// testEnv wires the handler groups to real stores and fakes.
type testEnv struct {
	store    *store.ContentStore
	cache    *cache.PageCache
	metrics  *metrics.Metrics
	qa       *fakeQA
	writer   *fakeWriter
	backups  *fakeBackups
	uploader *fakeUploader
	public   *Public
	admin    *Admin
	mux      *chi.Mux
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		cache:    cache.NewPageCache(nil, time.Minute, nil),
		metrics:  metrics.New(),
		qa:       &fakeQA{answer: "It is written in Go."},
		writer:   &fakeWriter{},
		backups:  &fakeBackups{key: "backups/content-20260304T120000Z.json"},
		uploader: &fakeUploader{},
	}

	st, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "content.json"), env.cache)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	env.store = st

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	env.public = NewPublic(st, renderer, env.cache, env.qa, models.LangFa)
	env.public.now = func() time.Time { return time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC) }
	env.admin = NewAdmin(st, env.uploader, env.writer, env.backups, env.metrics)

	r := chi.NewRouter()
	r.NotFound(env.public.NotFound)
	r.Get("/", env.public.Root)
	r.Get("/sitemap.xml", env.public.Sitemap)
	r.Get("/robots.txt", env.public.Robots)
	r.Route("/{lang}", func(r chi.Router) {
		r.Get("/", env.public.Home)
		r.Get("/projects", env.public.Projects)
		r.Get("/projects/{slug}", env.public.Project)
		r.Post("/projects/{slug}/chat", env.public.Chat)
		r.Get("/blog", env.public.Blog)
		r.Get("/blog/feed.xml", env.public.Feed)
		r.Get("/blog/{slug}", env.public.Post)
	})
	r.Route("/admin/api", func(r chi.Router) {
		r.Get("/projects", env.admin.ListProjects)
		r.Post("/projects", env.admin.CreateProject)
		r.Get("/projects/{slug}", env.admin.GetProject)
		r.Put("/projects/{slug}", env.admin.UpdateProject)
		r.Delete("/projects/{slug}", env.admin.DeleteProject)
		r.Get("/posts", env.admin.ListPosts)
		r.Post("/posts", env.admin.CreatePost)
		r.Get("/posts/{slug}", env.admin.GetPost)
		r.Put("/posts/{slug}", env.admin.UpdatePost)
		r.Delete("/posts/{slug}", env.admin.DeletePost)
		r.Get("/settings", env.admin.GetSettings)
		r.Put("/settings", env.admin.SaveSettings)
		r.Post("/upload", env.admin.Upload)
		r.Post("/ai/blog-post", env.admin.GenerateBlogPost)
		r.Post("/backup", env.admin.Backup)
	})
	env.mux = r
	return env
}

// do sends a request through the test router. A non-nil body is encoded
// as JSON unless it is already a []byte.
func (env *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		rd = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a JSON response body into v.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func validProjectInput(slug string) store.ProjectInput {
	return store.ProjectInput{
		Slug:          slug,
		Title:         "Chat Demo",
		TitleFa:       "دموی گفتگو",
		Description:   "A project with an assistant.",
		DescriptionFa: "پروژه‌ای با دستیار.",
		Tags:          store.CSVList{"go"},
		Category:      []string{"Backend"},
		ShowcaseType:  models.ShowcaseLinks,
	}
}

func validPostInput(slug string) store.BlogPostInput {
	return store.BlogPostInput{
		Slug:      slug,
		Title:     "Release Notes",
		TitleFa:   "یادداشت انتشار",
		Content:   "Shipped **it**.",
		ContentFa: "منتشر شد.",
		Tags:      store.CSVList{"news"},
		Status:    models.PostStatusPublished,
	}
}
