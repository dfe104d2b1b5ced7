// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"folio/internal/assistant"
	"folio/internal/backup"
	"folio/internal/metrics"
	"folio/internal/middleware"
	"folio/internal/storage"
	"folio/internal/store"
)

// PostWriter drafts blog posts with the AI assistant.
type PostWriter interface {
	Generate(ctx context.Context, topic, title string) (*assistant.GeneratedPost, error)
}

// BackupRunner snapshots the content document on demand.
type BackupRunner interface {
	Run(ctx context.Context) (string, error)
}

// Admin groups the admin JSON API handlers and their dependencies.
type Admin struct {
	store    *store.ContentStore
	uploader storage.Uploader
	writer   PostWriter
	backups  BackupRunner
	metrics  *metrics.Metrics
}

// NewAdmin creates the admin handler group. uploader, writer and backups
// may be nil; their endpoints then answer 503.
func NewAdmin(st *store.ContentStore, uploader storage.Uploader, writer PostWriter, backups BackupRunner, m *metrics.Metrics) *Admin {
	return &Admin{
		store:    st,
		uploader: uploader,
		writer:   writer,
		backups:  backups,
		metrics:  m,
	}
}

// --- Projects ---

// ListProjects returns every project.
func (a *Admin) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := a.store.ListProjects(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// GetProject returns one project for editing.
func (a *Admin) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := a.store.FindProject(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// CreateProject adds a project.
func (a *Admin) CreateProject(w http.ResponseWriter, r *http.Request) {
	a.saveProject(w, r, "")
}

// UpdateProject replaces the project stored under the slug in the path.
func (a *Admin) UpdateProject(w http.ResponseWriter, r *http.Request) {
	a.saveProject(w, r, chi.URLParam(r, "slug"))
}

func (a *Admin) saveProject(w http.ResponseWriter, r *http.Request, existingSlug string) {
	var in store.ProjectInput
	if !decodeJSON(w, r, &in) {
		return
	}
	project, err := a.store.SaveProject(r.Context(), in, existingSlug)
	a.metrics.Mutation("project", "save", err)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, savedStatus(existingSlug), project)
}

// DeleteProject removes a project. Unknown slugs succeed.
func (a *Admin) DeleteProject(w http.ResponseWriter, r *http.Request) {
	err := a.store.DeleteProject(r.Context(), chi.URLParam(r, "slug"))
	a.metrics.Mutation("project", "delete", err)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Blog posts ---

// ListPosts returns every post, drafts included.
func (a *Admin) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.store.ListBlogPosts(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// GetPost returns one post for editing.
func (a *Admin) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := a.store.FindBlogPost(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// CreatePost adds a blog post.
func (a *Admin) CreatePost(w http.ResponseWriter, r *http.Request) {
	a.savePost(w, r, "")
}

// UpdatePost replaces the post stored under the slug in the path.
func (a *Admin) UpdatePost(w http.ResponseWriter, r *http.Request) {
	a.savePost(w, r, chi.URLParam(r, "slug"))
}

func (a *Admin) savePost(w http.ResponseWriter, r *http.Request, existingSlug string) {
	var in store.BlogPostInput
	if !decodeJSON(w, r, &in) {
		return
	}
	post, err := a.store.SaveBlogPost(r.Context(), in, existingSlug)
	a.metrics.Mutation("blog_post", "save", err)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, savedStatus(existingSlug), post)
}

// DeletePost removes a blog post. Unknown slugs succeed.
func (a *Admin) DeletePost(w http.ResponseWriter, r *http.Request) {
	err := a.store.DeleteBlogPost(r.Context(), chi.URLParam(r, "slug"))
	a.metrics.Mutation("blog_post", "delete", err)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Settings ---

// GetSettings returns the site settings as the form SaveSettings accepts,
// so the editor can send the payload straight back.
func (a *Admin) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := a.store.GetSettings(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, store.SettingsInputFrom(*settings))
}

// SaveSettings overwrites the site settings.
func (a *Admin) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var in store.SettingsInput
	if !decodeJSON(w, r, &in) {
		return
	}
	settings, err := a.store.SaveSettings(r.Context(), in)
	a.metrics.Mutation("settings", "save", err)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// --- AI ---

type blogPostRequest struct {
	Topic string `json:"topic"`
	Title string `json:"title"`
}

// GenerateBlogPost drafts a bilingual post. Nothing is saved; the admin
// client fills its form with the result.
func (a *Admin) GenerateBlogPost(w http.ResponseWriter, r *http.Request) {
	if a.writer == nil {
		writeError(w, http.StatusServiceUnavailable, "No AI provider is configured.")
		return
	}
	var req blogPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := a.writer.Generate(r.Context(), req.Topic, req.Title)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// --- Backups ---

// Backup takes a snapshot of the content document now.
func (a *Admin) Backup(w http.ResponseWriter, r *http.Request) {
	if a.backups == nil {
		writeError(w, http.StatusServiceUnavailable, "Backups are not configured.")
		return
	}
	key, err := a.backups.Run(r.Context())
	switch {
	case err == nil:
		if sess := middleware.SessionFromCtx(r.Context()); sess != nil {
			slog.Info("manual backup", "key", key, "by", sess.Email)
		}
		writeJSON(w, http.StatusCreated, map[string]string{"status": "created", "key": key})
	case errors.Is(err, backup.ErrNoChange):
		writeJSON(w, http.StatusOK, map[string]string{"status": "unchanged"})
	default:
		writeStoreError(w, err)
	}
}

func savedStatus(existingSlug string) int {
	if existingSlug == "" {
		return http.StatusCreated
	}
	return http.StatusOK
}
