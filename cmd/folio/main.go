// Package main is the entry point for the portfolio server.
// It loads configuration, opens the content store, sets up routing, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"folio/internal/ai"
	"folio/internal/assistant"
	"folio/internal/auth"
	"folio/internal/backup"
	"folio/internal/cache"
	"folio/internal/config"
	"folio/internal/handlers"
	"folio/internal/metrics"
	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/render"
	"folio/internal/router"
	"folio/internal/session"
	"folio/internal/storage"
	"folio/internal/store"
)

func main() {
	hashPassword := flag.Bool("hash-password", false, "read a password from stdin, print its bcrypt hash and exit")
	newTOTP := flag.String("new-totp", "", "generate a TOTP secret, write its QR code to `file` and exit")
	flag.Parse()

	switch {
	case *hashPassword:
		exitOn(runHashPassword(os.Stdin, os.Stdout))
		return
	case *newTOTP != "":
		exitOn(runNewTOTP(os.Getenv("ADMIN_EMAIL"), *newTOTP, os.Stdout))
		return
	}

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	// Structured logger: JSON in production, text in development.
	slog.SetDefault(newLogger(cfg))
	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"default_lang", cfg.DefaultLang,
	)

	if err := run(cfg); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped gracefully")
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func run(cfg *config.Config) error {
	m := metrics.New()

	// Connect to Valkey (shared page cache + session store) when configured.
	var valkeyClient *redis.Client
	if cfg.ValkeyEnabled() {
		client, err := cache.ConnectValkey(cfg.Valkey.Host, cfg.Valkey.Port, cfg.Valkey.Password, cfg.Valkey.DB)
		if err != nil {
			return err
		}
		defer client.Close()
		valkeyClient = client
	} else {
		slog.Warn("valkey not configured, page cache and sessions are in-process only")
	}

	pageCache := cache.NewPageCache(valkeyClient, cfg.PageCacheTTL, m)

	// Open the content document, seeding it on first start.
	ctx := context.Background()
	contentStore, err := store.Open(ctx, cfg.DataFile, pageCache)
	if err != nil {
		return err
	}
	slog.Info("content store opened", "path", contentStore.Path())

	renderer, err := render.New()
	if err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}

	uploader, uploadDir, err := newUploader(cfg)
	if err != nil {
		return err
	}

	// AI flows are optional; without a provider the endpoints answer 503.
	var (
		writer handlers.PostWriter
		qa     handlers.ProjectAnswerer
	)
	registry := ai.NewRegistry(cfg.AI.Provider, providerConfigs(cfg))
	if registry.HasProvider(registry.ActiveName()) {
		writer = assistant.NewBlogWriter(registry, m)
		qa = assistant.NewProjectQA(registry, registry, m)
		slog.Info("ai providers initialized",
			"active", registry.ActiveName(),
			"available", registry.Available(),
		)
	} else {
		slog.Warn("no ai provider configured, blog writer and project chat disabled")
	}

	backups := backup.New(contentStore, uploader, m)
	scheduler, err := backup.NewScheduler(backups, cfg.BackupIntervalHours)
	if err != nil {
		return err
	}
	scheduler.Start()

	operator, err := newOperator(cfg)
	if err != nil {
		return err
	}
	sessions := session.NewStore(valkeyClient, cfg.CookiesSecure())

	if cfg.MetricsToken == "" {
		slog.Info("metrics endpoint disabled, set METRICS_TOKEN to enable it")
	}

	loginLimiter := middleware.NewRateLimiter(10, time.Minute)
	chatLimiter := middleware.NewRateLimiter(20, time.Minute)

	r := router.New(router.Deps{
		Sessions:      sessions,
		Metrics:       m,
		Public:        handlers.NewPublic(contentStore, renderer, pageCache, qa, models.Lang(cfg.DefaultLang)),
		Admin:         handlers.NewAdmin(contentStore, uploader, writer, backups, m),
		Auth:          handlers.NewAuth(operator, sessions),
		UploadDir:     uploadDir,
		SecureCookies: cfg.CookiesSecure(),
		HSTS:          cfg.IsProduction(),
		TrustProxy:    cfg.TrustProxy,
		MetricsToken:  cfg.MetricsToken,
		LoginLimiter:  loginLimiter,
		ChatLimiter:   chatLimiter,
	})

	// WriteTimeout must accommodate AI endpoints that wait on LLM responses.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	scheduler.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}

// newUploader returns S3 storage when configured, otherwise local
// directories. uploadDir is set only for local storage, which the router
// then serves under /uploads/.
func newUploader(cfg *config.Config) (u storage.Uploader, uploadDir string, err error) {
	s3, err := storage.NewS3(storage.S3Config{
		Endpoint:      cfg.S3.Endpoint,
		Region:        cfg.S3.Region,
		AccessKey:     cfg.S3.AccessKey,
		SecretKey:     cfg.S3.SecretKey,
		PublicBucket:  cfg.S3.PublicBucket,
		PrivateBucket: cfg.S3.PrivateBucket,
		PublicURL:     cfg.S3.PublicURL,
	})
	if err != nil {
		return nil, "", err
	}
	if s3 != nil {
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3.Endpoint,
			"public_bucket", cfg.S3.PublicBucket,
		)
		return s3, "", nil
	}

	local, err := storage.NewLocal(cfg.UploadDir, cfg.BackupDir)
	if err != nil {
		return nil, "", err
	}
	slog.Info("local storage in use", "uploads", cfg.UploadDir, "backups", cfg.BackupDir)
	return local, local.Dir(), nil
}

// providerConfigs converts the configured AI providers for the registry.
func providerConfigs(cfg *config.Config) map[string]ai.ProviderConfig {
	out := make(map[string]ai.ProviderConfig)
	for name, p := range cfg.Providers() {
		out[name] = ai.ProviderConfig{APIKey: p.APIKey, Model: p.Model, BaseURL: p.BaseURL}
	}
	return out
}

// newOperator builds the admin account. A plain ADMIN_PASSWORD (allowed
// outside production only) is hashed here.
func newOperator(cfg *config.Config) (*auth.Operator, error) {
	hash := cfg.Admin.PasswordHash
	if hash == "" {
		h, err := auth.HashPassword(cfg.Admin.Password)
		if err != nil {
			return nil, err
		}
		hash = h
		slog.Warn("using ADMIN_PASSWORD, set ADMIN_PASSWORD_HASH instead")
	}
	op, err := auth.NewOperator(cfg.Admin.Email, hash, cfg.Admin.TOTPSecret)
	if err != nil {
		return nil, err
	}
	if !op.TOTPEnabled() {
		slog.Warn("two-factor authentication is off, set ADMIN_TOTP_SECRET to enable it")
	}
	return op, nil
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
