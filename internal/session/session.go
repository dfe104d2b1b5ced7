// Package session provides HTTP session management for the admin area.
// Sessions are identified by a secure cookie and stored as JSON in Valkey
// with automatic TTL expiry, or in process memory when Valkey is not
// configured.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the name of the session cookie sent to the browser.
	CookieName = "folio_session"

	// DefaultTTL is how long a session lives before automatic expiry.
	DefaultTTL = 12 * time.Hour

	keyPrefix = "session:"

	// idLength is the byte length of the random session ID (32 bytes = 64 hex chars).
	idLength = 32
)

// errNoSession is returned by a backend for a missing or expired key.
var errNoSession = errors.New("session not found")

// Data holds the session payload: the operator's identity and 2FA
// completion status.
type Data struct {
	Email     string    `json:"email"`
	TwoFADone bool      `json:"two_fa_done"`
	CreatedAt time.Time `json:"created_at"`
}

// backend stores encoded sessions by key.
type backend interface {
	load(ctx context.Context, key string) ([]byte, error)
	save(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	remove(ctx context.Context, key string) error
}

type valkeyBackend struct{ client *redis.Client }

func (b valkeyBackend) load(ctx context.Context, key string) ([]byte, error) {
	payload, err := b.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, errNoSession
	}
	return payload, err
}

func (b valkeyBackend) save(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return b.client.Set(ctx, key, payload, ttl).Err()
}

func (b valkeyBackend) remove(ctx context.Context, key string) error {
	return b.client.Del(ctx, key).Err()
}

type memoryBackend struct{ items *gocache.Cache }

func (b memoryBackend) load(_ context.Context, key string) ([]byte, error) {
	v, ok := b.items.Get(key)
	if !ok {
		return nil, errNoSession
	}
	return v.([]byte), nil
}

func (b memoryBackend) save(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	b.items.Set(key, payload, ttl)
	return nil
}

func (b memoryBackend) remove(_ context.Context, key string) error {
	b.items.Delete(key)
	return nil
}

// Store manages session lifecycle.
type Store struct {
	backend backend
	ttl     time.Duration
	secure  bool
}

// NewStore creates a session store backed by the given Valkey client. A
// nil client keeps sessions in memory, which is fine for a single
// instance but loses them on restart. secure marks the cookie Secure.
func NewStore(client *redis.Client, secure bool) *Store {
	var b backend = memoryBackend{items: gocache.New(DefaultTTL, 10*time.Minute)}
	if client != nil {
		b = valkeyBackend{client: client}
	}
	return &Store{backend: b, ttl: DefaultTTL, secure: secure}
}

// Create generates a new session, stores it, and sets the session cookie
// on the response. Returns the session ID.
func (s *Store) Create(ctx context.Context, w http.ResponseWriter, data *Data) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}

	data.CreatedAt = time.Now()
	if err := s.put(ctx, id, data); err != nil {
		return "", err
	}
	http.SetCookie(w, s.cookie(id, int(s.ttl.Seconds())))
	return id, nil
}

// Get returns the session named by the request cookie, or nil when there
// is no cookie or the session has expired.
func (s *Store) Get(ctx context.Context, r *http.Request) (*Data, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, nil
	}

	payload, err := s.backend.load(ctx, keyPrefix+cookie.Value)
	switch {
	case errors.Is(err, errNoSession):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Data
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session unmarshal: %w", err)
	}
	return &data, nil
}

// Update replaces the session data under the current cookie and resets
// its TTL.
func (s *Store) Update(ctx context.Context, r *http.Request, data *Data) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return errors.New("session update: no cookie")
	}
	return s.put(ctx, cookie.Value, data)
}

// Destroy removes the session and expires the cookie. The cookie is
// cleared even when the backend delete fails.
func (s *Store) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}

	delErr := s.backend.remove(ctx, keyPrefix+cookie.Value)
	http.SetCookie(w, s.cookie("", -1))
	if delErr != nil {
		return fmt.Errorf("session destroy: %w", delErr)
	}
	return nil
}

func (s *Store) put(ctx context.Context, id string, data *Data) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}
	if err := s.backend.save(ctx, keyPrefix+id, payload, s.ttl); err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	return nil
}

func (s *Store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

// generateID creates a cryptographically random session identifier.
func generateID() (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
