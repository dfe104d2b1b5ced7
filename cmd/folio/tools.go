package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"folio/internal/auth"
)

// runHashPassword reads one line from in and prints its bcrypt hash, for
// use as ADMIN_PASSWORD_HASH.
func runHashPassword(in io.Reader, out io.Writer) error {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read password: %w", err)
	}
	hash, err := auth.HashPassword(strings.TrimRight(line, "\r\n"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}

// runNewTOTP generates a TOTP secret for account, writes the enrollment QR
// code to qrPath and prints the secret for ADMIN_TOTP_SECRET.
func runNewTOTP(account, qrPath string, out io.Writer) error {
	if account == "" {
		return errors.New("ADMIN_EMAIL must be set to generate a TOTP secret")
	}
	key, err := auth.GenerateSecret(account)
	if err != nil {
		return err
	}
	png, err := auth.QRCode(key.URL())
	if err != nil {
		return fmt.Errorf("encode qr code: %w", err)
	}
	if err := os.WriteFile(qrPath, png, 0o600); err != nil {
		return fmt.Errorf("write qr code: %w", err)
	}
	_, err = fmt.Fprintf(out, "ADMIN_TOTP_SECRET=%s\nScan %s with your authenticator app.\n", key.Secret(), qrPath)
	return err
}
