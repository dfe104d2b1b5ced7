package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

// captureLogs routes the default logger into a buffer of JSON lines for the
// duration of the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	if err := json.Unmarshal(lines[len(lines)-1], &entry); err != nil {
		t.Fatalf("log line %q: %v", lines[len(lines)-1], err)
	}
	return entry
}

func TestLoggerRecordsRequest(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantCode  float64
		wantBytes float64
		wantLevel string
	}{
		{
			name:      "implicit 200",
			handler:   func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("hello")) },
			wantCode:  200,
			wantBytes: 5,
			wantLevel: "INFO",
		},
		{
			name:      "not found",
			handler:   func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
			wantCode:  404,
			wantLevel: "INFO",
		},
		{
			name: "upstream failure",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(`{"error":"x"}`))
			},
			wantCode:  502,
			wantBytes: 13,
			wantLevel: "ERROR",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			req := httptest.NewRequest(http.MethodPost, "/en/projects/demo/chat", nil)
			req.RemoteAddr = "203.0.113.5:1000"
			rec := httptest.NewRecorder()
			Logger(tt.handler).ServeHTTP(rec, req)

			if rec.Code != int(tt.wantCode) {
				t.Errorf("response status: got %d", rec.Code)
			}
			entry := lastLogLine(t, buf)
			if entry["msg"] != "http request" || entry["level"] != tt.wantLevel {
				t.Errorf("entry: %v", entry)
			}
			if entry["status"] != tt.wantCode || entry["bytes"] != tt.wantBytes {
				t.Errorf("status/bytes: got %v/%v", entry["status"], entry["bytes"])
			}
			if entry["method"] != "POST" || entry["path"] != "/en/projects/demo/chat" || entry["remote"] != "203.0.113.5" {
				t.Errorf("request fields: %v", entry)
			}
			if _, ok := entry["duration"]; !ok {
				t.Error("duration missing")
			}
		})
	}
}

func TestResponseWriterFirstStatusWins(t *testing.T) {
	rw := wrap(httptest.NewRecorder())
	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusInternalServerError)
	rw.Write([]byte("ok"))

	if rw.statusCode != http.StatusCreated || rw.bytes != 2 {
		t.Errorf("got status %d bytes %d", rw.statusCode, rw.bytes)
	}
}

func TestWrapReusesOuterWriter(t *testing.T) {
	outer := wrap(httptest.NewRecorder())
	if inner := wrap(outer); inner != outer {
		t.Error("wrap should return the existing *responseWriter")
	}
	if outer.Unwrap() == nil {
		t.Error("Unwrap should expose the underlying writer")
	}
}
