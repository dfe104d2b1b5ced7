package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestSessionCreateAndGet(t *testing.T) {
	store := NewStore(nil, false)
	w := httptest.NewRecorder()
	ctx := context.Background()

	id, err := store.Create(ctx, w, &Data{Email: "owner@example.com"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(id) != 2*idLength {
		t.Errorf("session id length = %d, want %d", len(id), 2*idLength)
	}

	cookie := sessionCookie(t, w)
	if !cookie.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if cookie.Secure {
		t.Error("expected Secure=false for non-secure store")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	got, err := store.Get(ctx, req)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Email != "owner@example.com" || got.TwoFADone {
		t.Errorf("Get = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestSessionGetNoCookie(t *testing.T) {
	store := NewStore(nil, false)
	data, err := store.Get(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil || data != nil {
		t.Errorf("Get (no cookie) = %v, %v", data, err)
	}
}

func TestSessionGetUnknown(t *testing.T) {
	store := NewStore(nil, false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "nonexistent"})

	data, err := store.Get(context.Background(), req)
	if err != nil || data != nil {
		t.Errorf("Get (unknown) = %v, %v", data, err)
	}
}

func TestSessionUpdate(t *testing.T) {
	store := NewStore(nil, false)
	w := httptest.NewRecorder()
	ctx := context.Background()

	data := &Data{Email: "owner@example.com"}
	if _, err := store.Create(ctx, w, data); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, w))

	data.TwoFADone = true
	if err := store.Update(ctx, req, data); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := store.Get(ctx, req)
	if got == nil || !got.TwoFADone {
		t.Errorf("after update = %+v", got)
	}

	if err := store.Update(ctx, httptest.NewRequest(http.MethodGet, "/", nil), data); err == nil {
		t.Error("expected error when updating without cookie")
	}
}

func TestSessionDestroy(t *testing.T) {
	store := NewStore(nil, false)
	w := httptest.NewRecorder()
	ctx := context.Background()

	store.Create(ctx, w, &Data{Email: "owner@example.com"})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(sessionCookie(t, w))

	w2 := httptest.NewRecorder()
	if err := store.Destroy(ctx, w2, req); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if c := sessionCookie(t, w2); c.MaxAge != -1 {
		t.Errorf("MaxAge = %d, want -1", c.MaxAge)
	}
	if got, _ := store.Get(ctx, req); got != nil {
		t.Error("expected nil after destroy")
	}

	if err := store.Destroy(ctx, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)); err != nil {
		t.Errorf("Destroy (no cookie): %v", err)
	}
}

func TestSessionSecureCookie(t *testing.T) {
	store := NewStore(nil, true)
	w := httptest.NewRecorder()
	store.Create(context.Background(), w, &Data{Email: "owner@example.com"})

	if !sessionCookie(t, w).Secure {
		t.Error("expected Secure=true for secure store")
	}
}

func requestWithSession(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: id})
	return req
}

func TestValkeyGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, false)
	ctx := context.Background()

	payload, _ := json.Marshal(Data{Email: "owner@example.com", TwoFADone: true})
	mock.ExpectGet("session:abc").SetVal(string(payload))
	mock.ExpectGet("session:gone").RedisNil()
	mock.ExpectGet("session:down").SetErr(errors.New("connection refused"))

	got, err := store.Get(ctx, requestWithSession("abc"))
	if err != nil || got == nil || !got.TwoFADone {
		t.Errorf("Get(abc) = %+v, %v", got, err)
	}
	got, err = store.Get(ctx, requestWithSession("gone"))
	if err != nil || got != nil {
		t.Errorf("Get(gone) = %+v, %v", got, err)
	}
	if _, err := store.Get(ctx, requestWithSession("down")); err == nil {
		t.Error("expected error when Valkey is down")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestValkeyUpdateAndDestroy(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, false)
	ctx := context.Background()

	data := &Data{Email: "owner@example.com", TwoFADone: true, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	payload, _ := json.Marshal(data)
	mock.ExpectSet("session:abc", payload, DefaultTTL).SetVal("OK")
	mock.ExpectDel("session:abc").SetVal(1)

	if err := store.Update(ctx, requestWithSession("abc"), data); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := store.Destroy(ctx, httptest.NewRecorder(), requestWithSession("abc")); err != nil {
		t.Fatalf("Destroy: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestValkeyDestroyFailureStillClearsCookie(t *testing.T) {
	db, mock := redismock.NewClientMock()
	store := NewStore(db, false)
	mock.ExpectDel("session:abc").SetErr(errors.New("connection refused"))

	w := httptest.NewRecorder()
	if err := store.Destroy(context.Background(), w, requestWithSession("abc")); err == nil {
		t.Error("expected the backend error")
	}
	if c := sessionCookie(t, w); c.MaxAge != -1 || c.Value != "" {
		t.Errorf("cookie should be expired: %+v", c)
	}
}
