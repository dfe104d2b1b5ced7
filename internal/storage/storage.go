// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage stores uploaded media and content backups, either in an
// S3-compatible bucket or in a local directory, and returns public URLs.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxUploadSize is the largest file the upload endpoint accepts.
const MaxUploadSize = 10 << 20

// ErrTooLarge is returned when an upload exceeds MaxUploadSize.
var ErrTooLarge = errors.New("file exceeds the maximum upload size")

// Uploader is an object store for public media and private archives.
type Uploader interface {
	// Upload stores a publicly readable object and returns its URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)

	// Archive stores a private object that is never served publicly.
	Archive(ctx context.Context, key string, data []byte) error
}

// allowedTypes are the media types the upload endpoint accepts. SVG is
// left out because it can carry script.
var allowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"image/avif":      ".avif",
	"application/pdf": ".pdf",
}

// DetectType sniffs the media type of an upload from its first bytes and
// reports whether it is accepted.
func DetectType(head []byte) (string, bool) {
	mt := mimetype.Detect(head)
	for m := mt; m != nil; m = m.Parent() {
		if _, ok := allowedTypes[m.String()]; ok {
			return m.String(), true
		}
	}
	return mt.String(), false
}

// SafeFilename keeps only letters, digits, underscore, dot and hyphen from
// the base name of name. Leading dots are dropped so the result is never
// hidden or a relative path element.
func SafeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '_', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	clean := strings.TrimLeft(b.String(), ".")
	if clean == "" {
		return "file"
	}
	return clean
}

// ObjectName returns a unique object key for an uploaded file: a random
// 16-character identifier, a hyphen, and the sanitised filename.
func ObjectName(filename string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	return id + "-" + SafeFilename(filename)
}
