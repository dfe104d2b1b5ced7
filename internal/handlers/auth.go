package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"folio/internal/auth"
	"folio/internal/middleware"
	"folio/internal/session"
)

// Auth groups the operator login, second factor and logout handlers.
type Auth struct {
	operator *auth.Operator
	sessions *session.Store
}

// NewAuth creates a new Auth handler group.
func NewAuth(operator *auth.Operator, sessions *session.Store) *Auth {
	return &Auth{operator: operator, sessions: sessions}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Code string `json:"code"`
}

// sessionResponse describes the caller's session to the admin client.
type sessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	TwoFARequired bool   `json:"two_fa_required"`
	TwoFADone     bool   `json:"two_fa_done"`
	CSRFToken     string `json:"csrf_token"`
}

// Login checks the operator credentials and starts a session. When TOTP
// is configured the session stays limited until the code is verified.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if !a.operator.CheckPassword(strings.TrimSpace(req.Email), req.Password) {
		slog.Warn("failed login attempt", "email", req.Email)
		writeError(w, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	// Drop any previous session so its ID is not reused.
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("destroy previous session failed", "error", err)
	}

	data := &session.Data{
		Email:     a.operator.Email(),
		TwoFADone: !a.operator.TOTPEnabled(),
	}
	if _, err := a.sessions.Create(r.Context(), w, data); err != nil {
		slog.Error("session create failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	slog.Info("operator logged in", "email", data.Email, "two_fa_pending", !data.TwoFADone)
	writeJSON(w, http.StatusOK, a.describe(r, data))
}

// VerifyTwoFA completes the second factor for the current session.
func (a *Auth) VerifyTwoFA(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req verifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if !sess.TwoFADone {
		if !a.operator.ValidateCode(req.Code) {
			writeError(w, http.StatusUnauthorized, "Invalid verification code.")
			return
		}
		sess.TwoFADone = true
		if err := a.sessions.Update(r.Context(), r, sess); err != nil {
			slog.Error("session update failed", "error", err)
			writeError(w, http.StatusInternalServerError, msgInternal)
			return
		}
	}

	writeJSON(w, http.StatusOK, a.describe(r, sess))
}

// Logout ends the session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("session destroy failed", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session reports the caller's session state and the CSRF token the admin
// client must echo on writes. It answers without a session too.
func (a *Auth) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.describe(r, middleware.SessionFromCtx(r.Context())))
}

// EnrollmentQR serves the TOTP enrolment QR code as a PNG.
func (a *Auth) EnrollmentQR(w http.ResponseWriter, r *http.Request) {
	png, err := a.operator.EnrollmentQR()
	if err != nil {
		if errors.Is(err, auth.ErrNoTOTP) {
			writeError(w, http.StatusNotFound, "Two-factor authentication is not configured.")
			return
		}
		slog.Error("qr code generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeBody(w, "image/png", http.StatusOK, png)
}

func (a *Auth) describe(r *http.Request, sess *session.Data) sessionResponse {
	resp := sessionResponse{
		TwoFARequired: a.operator.TOTPEnabled(),
		CSRFToken:     middleware.CSRFTokenFromCtx(r.Context()),
	}
	if sess != nil {
		resp.Authenticated = true
		resp.Email = sess.Email
		resp.TwoFADone = sess.TwoFADone
	}
	return resp
}
