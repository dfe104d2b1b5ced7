// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"folio/internal/auth"
	"folio/internal/cache"
	"folio/internal/handlers"
	"folio/internal/metrics"
	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/render"
	"folio/internal/session"
	"folio/internal/storage"
	"folio/internal/store"
)

const (
	testEmail        = "owner@example.com"
	testPassword     = "correct-horse"
	testMetricsToken = "scrape-0123456789"
)

type stubQA struct{}

func (stubQA) Answer(context.Context, string, string) (string, error) { return "ok", nil }

// newTestRouter wires the full router over a temp content store and local
// upload directory. opts adjust the dependencies before the router is built.
func newTestRouter(t *testing.T, chatLimit int, opts ...func(*Deps)) (http.Handler, string) {
	t.Helper()
	root := t.TempDir()

	m := metrics.New()
	pc := cache.NewPageCache(nil, time.Minute, m)
	st, err := store.Open(context.Background(), filepath.Join(root, "content.json"), pc)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	local, err := storage.NewLocal(filepath.Join(root, "uploads"), filepath.Join(root, "backups"))
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	op, err := auth.NewOperator(testEmail, string(hash), "")
	if err != nil {
		t.Fatalf("NewOperator: %v", err)
	}
	sessions := session.NewStore(nil, false)

	chatLimiter := middleware.NewRateLimiter(chatLimit, time.Minute)

	d := Deps{
		Sessions:     sessions,
		Metrics:      m,
		Public:       handlers.NewPublic(st, renderer, pc, stubQA{}, models.LangFa),
		Admin:        handlers.NewAdmin(st, local, nil, nil, m),
		Auth:         handlers.NewAuth(op, sessions),
		UploadDir:    local.Dir(),
		MetricsToken: testMetricsToken,
		ChatLimiter:  chatLimiter,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return New(d), local.Dir()
}

// client keeps cookies between requests like a browser.
type client struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, h http.Handler) *client {
	return &client{t: t, h: h, cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

// csrfToken fetches the session endpoint and returns the CSRF token.
func (c *client) csrfToken() string {
	c.t.Helper()
	rec := c.do(http.MethodGet, "/admin/api/session", nil, nil)
	var resp struct {
		CSRFToken string `json:"csrf_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.CSRFToken == "" {
		c.t.Fatalf("session endpoint: %q (%v)", rec.Body.String(), err)
	}
	return resp.CSRFToken
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestPublicRoutes(t *testing.T) {
	h, _ := newTestRouter(t, 10)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/", http.StatusFound},
		{"/health", http.StatusOK},
		{"/fa", http.StatusOK},
		{"/en/projects", http.StatusOK},
		{"/en/projects/portfolio-website", http.StatusOK},
		{"/fa/blog", http.StatusOK},
		{"/fa/blog/hello-world", http.StatusOK},
		{"/en/blog/feed.xml", http.StatusOK},
		{"/sitemap.xml", http.StatusOK},
		{"/robots.txt", http.StatusOK},
		{"/de", http.StatusNotFound},
		{"/en/unknown/route", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Error("security headers missing")
			}
		})
	}
}

func TestAdminRequiresAuthentication(t *testing.T) {
	h, _ := newTestRouter(t, 10)

	for _, path := range []string{"/admin/api/projects", "/admin/api/posts", "/admin/api/settings", "/admin/2fa/qr"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s: got %d, want 401", path, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
			t.Errorf("GET %s: Content-Type %q, want JSON", path, ct)
		}
	}
}

// TestAdminFlow logs in through the CSRF and session middleware and then
// creates a project that shows up on the public site.
func TestAdminFlow(t *testing.T) {
	h, _ := newTestRouter(t, 10)
	c := newClient(t, h)
	login := map[string]string{"email": testEmail, "password": testPassword}

	if rec := c.do(http.MethodPost, "/admin/login", login, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("login without CSRF token: got %d, want 403", rec.Code)
	}

	token := c.csrfToken()
	csrf := map[string]string{middleware.CSRFHeaderName: token}
	if rec := c.do(http.MethodPost, "/admin/login", login, csrf); rec.Code != http.StatusOK {
		t.Fatalf("login: got %d, body %s", rec.Code, rec.Body.String())
	}

	if rec := c.do(http.MethodGet, "/admin/api/projects", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("list projects: got %d", rec.Code)
	}

	project := map[string]any{
		"title":          "Router Demo",
		"title_fa":       "دموی مسیریاب",
		"description":    "Created through the API.",
		"description_fa": "از طریق API ساخته شد.",
		"tags":           "go, chi",
		"category":       []string{"Backend"},
	}
	if rec := c.do(http.MethodPost, "/admin/api/projects", project, nil); rec.Code != http.StatusForbidden {
		t.Errorf("write without CSRF token: got %d, want 403", rec.Code)
	}
	rec := c.do(http.MethodPost, "/admin/api/projects", project, csrf)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create project: got %d, body %s", rec.Code, rec.Body.String())
	}
	var created models.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.Slug != "router-demo" || len(created.Tags) != 2 {
		t.Errorf("created: %+v", created)
	}

	pub := httptest.NewRecorder()
	h.ServeHTTP(pub, httptest.NewRequest(http.MethodGet, "/en/projects/router-demo", nil))
	if pub.Code != http.StatusOK || !strings.Contains(pub.Body.String(), "Router Demo") {
		t.Errorf("public project page: %d", pub.Code)
	}

	if rec := c.do(http.MethodPost, "/admin/api/ai/blog-post", map[string]string{"topic": "x", "title": "y"}, csrf); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("blog writer without provider: got %d, want 503", rec.Code)
	}

	if rec := c.do(http.MethodPost, "/admin/logout", nil, csrf); rec.Code != http.StatusNoContent {
		t.Errorf("logout: got %d", rec.Code)
	}
	if rec := c.do(http.MethodGet, "/admin/api/projects", nil, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("after logout: got %d, want 401", rec.Code)
	}
}

func TestChatRateLimited(t *testing.T) {
	h, _ := newTestRouter(t, 1)
	body := `{"question":"hi"}`

	codes := make([]int, 0, 2)
	for range 2 {
		req := httptest.NewRequest(http.MethodPost, "/en/projects/portfolio-website/chat", strings.NewReader(body))
		req.RemoteAddr = "203.0.113.7:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	// The seeded project has no chat, so the first request is a 404.
	if codes[0] != http.StatusNotFound || codes[1] != http.StatusTooManyRequests {
		t.Errorf("status codes: got %v, want [404 429]", codes)
	}
}

// chatCodes posts to the chat endpoint once per forwarded address, all
// from the same socket address.
func chatCodes(h http.Handler, forwarded ...string) []int {
	codes := make([]int, 0, len(forwarded))
	for _, ip := range forwarded {
		req := httptest.NewRequest(http.MethodPost, "/en/projects/portfolio-website/chat", strings.NewReader(`{"question":"hi"}`))
		req.RemoteAddr = "203.0.113.7:4000"
		req.Header.Set("X-Forwarded-For", ip)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	return codes
}

func TestChatRateLimitForwardedHeaders(t *testing.T) {
	t.Run("untrusted", func(t *testing.T) {
		h, _ := newTestRouter(t, 1)
		codes := chatCodes(h, "10.0.0.1", "10.0.0.2")
		if codes[1] != http.StatusTooManyRequests {
			t.Errorf("spoofed X-Forwarded-For bypassed the limit: %v", codes)
		}
	})
	t.Run("trusted proxy", func(t *testing.T) {
		h, _ := newTestRouter(t, 1, func(d *Deps) { d.TrustProxy = true })
		codes := chatCodes(h, "10.0.0.1", "10.0.0.2")
		if codes[1] != http.StatusNotFound {
			t.Errorf("distinct clients behind the proxy share a limit: %v", codes)
		}
	})
}

func TestUploadsServed(t *testing.T) {
	h, dir := newTestRouter(t, 10)
	if err := os.WriteFile(filepath.Join(dir, "abc-photo.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/abc-photo.png", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "png" {
		t.Errorf("upload: got %d %q", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Header().Get("Cache-Control"), "public") {
		t.Errorf("Cache-Control: got %q", rec.Header().Get("Cache-Control"))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("directory listing: got %d, want 404", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t, 10)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/en/blog", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("without token: got %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Authorization", "Bearer "+testMetricsToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `folio_http_requests_total{code="200",method="GET",route="/{lang}/blog"}`) {
		t.Errorf("request counter for /{lang}/blog missing:\n%s", rec.Body.String())
	}
}

func TestMetricsDisabledWithoutToken(t *testing.T) {
	h, _ := newTestRouter(t, 10, func(d *Deps) { d.MetricsToken = "" })

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Authorization", "Bearer "+testMetricsToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}
