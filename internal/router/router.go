// Package router sets up all HTTP routes and middleware chains for the
// portfolio site. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"folio/internal/handlers"
	"folio/internal/metrics"
	"folio/internal/middleware"
	"folio/internal/session"
)

// Deps holds everything the router wires together.
type Deps struct {
	Sessions *session.Store
	Metrics  *metrics.Metrics
	Public   *handlers.Public
	Admin    *handlers.Admin
	Auth     *handlers.Auth

	// UploadDir is served under /uploads/ when set (local file storage).
	UploadDir string

	SecureCookies bool
	HSTS          bool

	// TrustProxy rewrites RemoteAddr from X-Forwarded-For and X-Real-IP.
	TrustProxy bool

	// MetricsToken guards /metrics with a bearer token. Empty leaves the
	// endpoint unmounted.
	MetricsToken string

	// LoginLimiter and ChatLimiter throttle the login and project chat
	// endpoints. Either may be nil.
	LoginLimiter *middleware.RateLimiter
	ChatLimiter  *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	if d.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics(d.Metrics))
	r.Use(middleware.NewSecureHeaders(d.HSTS))

	r.NotFound(d.Public.NotFound)

	// Health check and metrics: no session, no CSRF.
	r.Get("/health", healthHandler)
	if d.Metrics != nil && d.MetricsToken != "" {
		r.With(middleware.RequireBearer(d.MetricsToken)).Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	if d.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", uploadsHandler(d.UploadDir)))
	}

	// Admin JSON API with session and CSRF protection.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.LoadSession(d.Sessions))
		r.Use(middleware.NewCSRF(d.SecureCookies))

		r.Get("/api/session", d.Auth.Session)
		r.With(limit(d.LoginLimiter)).Post("/login", d.Auth.Login)
		r.Post("/logout", d.Auth.Logout)

		// Second factor: requires a session but not a completed 2FA.
		r.With(middleware.RequireAuth, limit(d.LoginLimiter)).Post("/2fa/verify", d.Auth.VerifyTwoFA)

		// Authenticated + 2FA-verified admin area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Get("/2fa/qr", d.Auth.EnrollmentQR)

			r.Route("/api", func(r chi.Router) {
				r.Route("/projects", func(r chi.Router) {
					r.Get("/", d.Admin.ListProjects)
					r.Post("/", d.Admin.CreateProject)
					r.Get("/{slug}", d.Admin.GetProject)
					r.Put("/{slug}", d.Admin.UpdateProject)
					r.Delete("/{slug}", d.Admin.DeleteProject)
				})

				r.Route("/posts", func(r chi.Router) {
					r.Get("/", d.Admin.ListPosts)
					r.Post("/", d.Admin.CreatePost)
					r.Get("/{slug}", d.Admin.GetPost)
					r.Put("/{slug}", d.Admin.UpdatePost)
					r.Delete("/{slug}", d.Admin.DeletePost)
				})

				r.Get("/settings", d.Admin.GetSettings)
				r.Put("/settings", d.Admin.SaveSettings)

				r.Post("/upload", d.Admin.Upload)
				r.Post("/ai/blog-post", d.Admin.GenerateBlogPost)
				r.Post("/backup", d.Admin.Backup)
			})
		})
	})

	// Public site.
	r.Get("/", d.Public.Root)
	r.Get("/sitemap.xml", d.Public.Sitemap)
	r.Get("/robots.txt", d.Public.Robots)
	r.Route("/{lang}", func(r chi.Router) {
		r.Get("/", d.Public.Home)
		r.Get("/projects", d.Public.Projects)
		r.Get("/projects/{slug}", d.Public.Project)
		r.With(limit(d.ChatLimiter)).Post("/projects/{slug}/chat", d.Public.Chat)
		r.Get("/blog", d.Public.Blog)
		r.Get("/blog/feed.xml", d.Public.Feed)
		r.Get("/blog/{slug}", d.Public.Post)
	})

	return r
}

// limit returns the limiter's middleware, or a pass-through when rl is nil.
func limit(rl *middleware.RateLimiter) func(http.Handler) http.Handler {
	if rl == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return rl.Middleware
}

// uploadsHandler serves uploaded files without directory listings.
func uploadsHandler(dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Cache-Control", "public, max-age="+cacheMaxAge)
		fs.ServeHTTP(w, r)
	})
}

// cacheMaxAge is the browser cache lifetime of uploads. Object names are
// unique, so an upload never changes under the same URL.
var cacheMaxAge = strconv.Itoa(int((30 * 24 * time.Hour).Seconds()))

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
