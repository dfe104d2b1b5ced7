// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalPrefix is the URL path the local upload directory is served under.
const LocalPrefix = "/uploads/"

// Local stores uploads in a directory served by the app itself and
// archives in a separate directory that is never served.
type Local struct {
	uploadDir  string
	archiveDir string
}

// NewLocal creates both directories if needed.
func NewLocal(uploadDir, archiveDir string) (*Local, error) {
	for _, dir := range []string{uploadDir, archiveDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("local storage: %w", err)
		}
	}
	return &Local{uploadDir: uploadDir, archiveDir: archiveDir}, nil
}

// Dir returns the directory to serve under LocalPrefix.
func (l *Local) Dir() string { return l.uploadDir }

// Upload copies body into the upload directory and returns its
// site-relative URL.
func (l *Local) Upload(ctx context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	path, err := l.path(l.uploadDir, key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("local upload %s: %w", key, err)
	}
	n, err := io.Copy(dst, io.LimitReader(body, MaxUploadSize+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > MaxUploadSize {
		err = ErrTooLarge
	}
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("local upload %s: %w", key, err)
	}
	return LocalPrefix + filepath.ToSlash(key), nil
}

// Archive writes data into the archive directory.
func (l *Local) Archive(_ context.Context, key string, data []byte) error {
	path, err := l.path(l.archiveDir, key)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("local archive %s: %w", key, err)
	}
	return nil
}

// path resolves key inside dir, refusing keys that would escape it.
func (l *Local) path(dir, key string) (string, error) {
	key = filepath.FromSlash(key)
	if !filepath.IsLocal(key) || strings.HasPrefix(filepath.Base(key), ".") {
		return "", fmt.Errorf("local storage: invalid key %q", key)
	}
	path := filepath.Join(dir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("local storage: %w", err)
	}
	return path, nil
}
