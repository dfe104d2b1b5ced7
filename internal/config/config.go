// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config loads application configuration from environment
// variables, optionally layered over a YAML file named by CONFIG_PATH.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const minMetricsTokenLen = 16

// Config holds all application configuration values.
type Config struct {
	// Server settings
	Host        string `yaml:"host" env:"APP_HOST" env-default:"0.0.0.0"`
	Port        string `yaml:"port" env:"APP_PORT" env-default:"8080"`
	Env         string `yaml:"env" env:"APP_ENV" env-default:"development"` // "development", "production", "testing"
	DefaultLang string `yaml:"default_lang" env:"DEFAULT_LANG" env-default:"fa"`

	// Content document and local file storage
	DataFile  string `yaml:"data_file" env:"DATA_FILE" env-default:"data/content.json"`
	UploadDir string `yaml:"upload_dir" env:"UPLOAD_DIR" env-default:"data/uploads"`
	BackupDir string `yaml:"backup_dir" env:"BACKUP_DIR" env-default:"data/backups"`

	BackupIntervalHours int           `yaml:"backup_interval_hours" env:"BACKUP_INTERVAL_HOURS" env-default:"24"`
	PageCacheTTL        time.Duration `yaml:"page_cache_ttl" env:"PAGE_CACHE_TTL" env-default:"5m"`

	// SecureCookies marks session and CSRF cookies Secure: "true",
	// "false", or empty for true in production only.
	SecureCookies string `yaml:"secure_cookies" env:"SECURE_COOKIES"`

	// TrustProxy takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable it only behind a proxy that overwrites them.
	TrustProxy bool `yaml:"trust_proxy" env:"TRUST_PROXY" env-default:"false"`

	// MetricsToken is the bearer token required on /metrics. Empty
	// disables the endpoint.
	MetricsToken string `yaml:"metrics_token" env:"METRICS_TOKEN"`

	Valkey ValkeyConfig `yaml:"valkey" env-prefix:"VALKEY_"`
	AI     AIConfig     `yaml:"ai"`
	S3     S3Config     `yaml:"s3" env-prefix:"S3_"`
	Admin  AdminConfig  `yaml:"admin" env-prefix:"ADMIN_"`
}

// ValkeyConfig configures the shared page cache and session store. An
// empty host disables Valkey; both then live in process memory.
type ValkeyConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     string `yaml:"port" env:"PORT" env-default:"6379"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB" env-default:"0"`
}

// AIConfig selects the active provider and holds per-provider settings.
// Blank models and base URLs fall back to each provider's defaults.
type AIConfig struct {
	Provider string         `yaml:"provider" env:"AI_PROVIDER" env-default:"gemini"`
	OpenAI   ProviderConfig `yaml:"openai" env-prefix:"OPENAI_"`
	Gemini   ProviderConfig `yaml:"gemini" env-prefix:"GEMINI_"`
	Claude   ProviderConfig `yaml:"claude" env-prefix:"CLAUDE_"`
	Mistral  ProviderConfig `yaml:"mistral" env-prefix:"MISTRAL_"`
}

// ProviderConfig holds one AI provider's credentials.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key" env:"API_KEY"`
	Model   string `yaml:"model" env:"MODEL"`
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
}

// S3Config configures S3-compatible storage. Without an endpoint uploads
// and backups go to the local directories.
type S3Config struct {
	Endpoint      string `yaml:"endpoint" env:"ENDPOINT"`
	Region        string `yaml:"region" env:"REGION" env-default:"us-east-1"`
	AccessKey     string `yaml:"access_key" env:"ACCESS_KEY"`
	SecretKey     string `yaml:"secret_key" env:"SECRET_KEY"`
	PublicBucket  string `yaml:"bucket_public" env:"BUCKET_PUBLIC"`
	PrivateBucket string `yaml:"bucket_private" env:"BUCKET_PRIVATE"`
	PublicURL     string `yaml:"public_url" env:"PUBLIC_URL"`
}

// AdminConfig identifies the site operator. Password may be used instead
// of PasswordHash outside production; it is hashed at startup.
type AdminConfig struct {
	Email        string `yaml:"email" env:"EMAIL"`
	PasswordHash string `yaml:"password_hash" env:"PASSWORD_HASH"`
	Password     string `yaml:"password" env:"PASSWORD"`
	TOTPSecret   string `yaml:"totp_secret" env:"TOTP_SECRET"`
}

// Load reads configuration from the YAML file named by CONFIG_PATH, if
// any, and then from environment variables, which take precedence.
// Returns an error if critical values are missing or unsafe for the
// environment.
func Load() (*Config, error) {
	var cfg Config
	var err error
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.DefaultLang = strings.ToLower(strings.TrimSpace(cfg.DefaultLang))
	cfg.AI.Provider = strings.ToLower(strings.TrimSpace(cfg.AI.Provider))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.DefaultLang != "fa" && c.DefaultLang != "en" {
		errs = append(errs, fmt.Errorf("DEFAULT_LANG must be fa or en, got %q", c.DefaultLang))
	}
	if c.Admin.Email == "" {
		errs = append(errs, errors.New("ADMIN_EMAIL must be set"))
	}
	if c.Admin.PasswordHash == "" && c.Admin.Password == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD_HASH must be set"))
	}
	if c.SecureCookies != "" {
		if _, err := strconv.ParseBool(c.SecureCookies); err != nil {
			errs = append(errs, fmt.Errorf("SECURE_COOKIES must be true or false, got %q", c.SecureCookies))
		}
	}
	if c.MetricsToken != "" && len(c.MetricsToken) < minMetricsTokenLen {
		errs = append(errs, fmt.Errorf("METRICS_TOKEN must be at least %d characters", minMetricsTokenLen))
	}
	if c.BackupIntervalHours < 0 {
		errs = append(errs, errors.New("BACKUP_INTERVAL_HOURS must not be negative"))
	}
	if c.S3.Endpoint != "" && c.S3.PublicBucket == "" {
		errs = append(errs, errors.New("S3_BUCKET_PUBLIC must be set when S3_ENDPOINT is"))
	}

	if c.IsProduction() {
		if c.Admin.Password != "" {
			errs = append(errs, errors.New("ADMIN_PASSWORD is not allowed in production, set ADMIN_PASSWORD_HASH"))
		}
		if c.Valkey.Host != "" && c.Valkey.Password == "" {
			errs = append(errs, errors.New("VALKEY_PASSWORD must be set in production"))
		}
	}
	return errors.Join(errs...)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true if the application is running in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ValkeyEnabled reports whether a Valkey host is configured.
func (c *Config) ValkeyEnabled() bool {
	return c.Valkey.Host != ""
}

// CookiesSecure reports whether cookies should carry the Secure flag.
func (c *Config) CookiesSecure() bool {
	if v, err := strconv.ParseBool(c.SecureCookies); err == nil {
		return v
	}
	return c.IsProduction()
}

// Providers returns the AI providers that have an API key, keyed by name.
func (c *Config) Providers() map[string]ProviderConfig {
	all := map[string]ProviderConfig{
		"openai":  c.AI.OpenAI,
		"gemini":  c.AI.Gemini,
		"claude":  c.AI.Claude,
		"mistral": c.AI.Mistral,
	}
	out := make(map[string]ProviderConfig)
	for name, p := range all {
		if p.APIKey != "" {
			out[name] = p
		}
	}
	return out
}
