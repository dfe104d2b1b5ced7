// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the portfolio site.
// Handlers are grouped by concern (public, admin, auth) and receive
// their dependencies through the handler struct.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"folio/internal/assistant"
	"folio/internal/store"
)

// maxJSONBody caps admin request bodies. Blog content is the largest field.
const maxJSONBody = 1 << 20

// Client-facing messages for failures whose cause is logged, not returned.
const (
	msgInternal = "Something went wrong. Please try again later."
	msgUpstream = "The AI service is unavailable right now. Please try again in a moment."
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode json response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// decodeJSON reads a JSON request body into v. It writes a 400 and returns
// false when the body is missing or malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "Request body is too large.")
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, "Request body is required.")
		default:
			writeError(w, http.StatusBadRequest, "Request body is not valid JSON.")
		}
		return false
	}
	return true
}

// writeStoreError maps content store and assistant errors onto HTTP
// responses. Storage and upstream causes are logged and replaced by a
// generic message.
func writeStoreError(w http.ResponseWriter, err error) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "Validation failed.", Fields: verr.Fields})
	case errors.Is(err, store.ErrDuplicateSlug):
		writeError(w, http.StatusConflict, "An item with this slug already exists.")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found.")
	case errors.Is(err, assistant.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), assistant.ErrInvalidInput.Error()+": "))
	case errors.Is(err, assistant.ErrFlagged):
		writeError(w, http.StatusUnprocessableEntity, "This request was flagged by content moderation.")
	case errors.Is(err, assistant.ErrUpstream):
		writeError(w, http.StatusBadGateway, msgUpstream)
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
