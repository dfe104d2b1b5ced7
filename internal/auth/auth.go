// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth verifies the single site operator: a bcrypt password and an
// optional TOTP second factor, both taken from configuration.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/crypto/bcrypt"
)

// Issuer is the name authenticator apps show next to the account.
const Issuer = "Folio"

// qrSize is the side of the enrolment QR code in pixels.
const qrSize = 256

// ErrNoTOTP is returned when an enrolment image is requested but no TOTP
// secret is configured.
var ErrNoTOTP = errors.New("auth: two-factor authentication is not configured")

// dummyHash is compared against when the email does not match, so a wrong
// email costs as much as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("folio-dummy-password"), bcrypt.DefaultCost)

// Operator is the one account allowed into the admin area.
type Operator struct {
	email        string
	passwordHash []byte
	totpSecret   string
}

// NewOperator checks that passwordHash is a bcrypt hash. totpSecret may be
// empty, which disables the second factor.
func NewOperator(email, passwordHash, totpSecret string) (*Operator, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("auth: operator email is required")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("auth: invalid password hash: %w", err)
	}
	return &Operator{
		email:        email,
		passwordHash: []byte(passwordHash),
		totpSecret:   strings.ToUpper(strings.TrimSpace(totpSecret)),
	}, nil
}

// Email returns the operator's login.
func (o *Operator) Email() string { return o.email }

// CheckPassword reports whether email and password identify the operator.
func (o *Operator) CheckPassword(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare(
		[]byte(strings.ToLower(strings.TrimSpace(email))),
		[]byte(strings.ToLower(o.email)),
	) == 1
	hash := o.passwordHash
	if !emailOK {
		hash = dummyHash
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil && emailOK
}

// TOTPEnabled reports whether logins need a second factor.
func (o *Operator) TOTPEnabled() bool { return o.totpSecret != "" }

// ValidateCode checks a 6-digit TOTP code against the configured secret.
func (o *Operator) ValidateCode(code string) bool {
	if !o.TOTPEnabled() {
		return false
	}
	return totp.Validate(strings.TrimSpace(code), o.totpSecret)
}

// EnrollmentQR returns a PNG QR code of the otpauth URL for the configured
// secret, for adding the account to an authenticator app.
func (o *Operator) EnrollmentQR() ([]byte, error) {
	if !o.TOTPEnabled() {
		return nil, ErrNoTOTP
	}
	key, err := otp.NewKeyFromURL(KeyURL(o.email, o.totpSecret))
	if err != nil {
		return nil, fmt.Errorf("auth: build otp key: %w", err)
	}
	png, err := qrcode.Encode(key.URL(), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("auth: qr code: %w", err)
	}
	return png, nil
}

// KeyURL builds the otpauth URL for account and secret.
func KeyURL(account, secret string) string {
	return fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s&algorithm=SHA1&digits=6&period=30",
		Issuer, account, secret, Issuer)
}

// HashPassword returns a bcrypt hash for storing in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", fmt.Errorf("auth: password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(hash), nil
}

// GenerateSecret creates a new TOTP key for account. The caller stores
// key.Secret() in ADMIN_TOTP_SECRET and shows key.URL() as a QR code.
func GenerateSecret(account string) (*otp.Key, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      Issuer,
		AccountName: account,
	})
	if err != nil {
		return nil, fmt.Errorf("auth: generate totp secret: %w", err)
	}
	return key, nil
}

// QRCode encodes any otpauth URL as a PNG.
func QRCode(url string) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, qrSize)
}
