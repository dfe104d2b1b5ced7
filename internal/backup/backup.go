// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package backup copies the content document to private object storage,
// on a schedule and on demand. A snapshot identical to the previous one is
// skipped.
package backup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"folio/internal/metrics"
)

// ErrNoChange is returned when the document has not changed since the
// last successful backup.
var ErrNoChange = errors.New("backup: content unchanged since last backup")

// keyLayout names backups so they sort chronologically.
const keyLayout = "20060102T150405Z"

// Snapshotter returns the current content document.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]byte, error)
}

// Archiver stores a private object.
type Archiver interface {
	Archive(ctx context.Context, key string, data []byte) error
}

// Service takes backups. Runs are serialised so a scheduled run and a
// manual one never race on the last hash.
type Service struct {
	src     Snapshotter
	dst     Archiver
	metrics *metrics.Metrics
	now     func() time.Time

	mu       sync.Mutex
	lastHash string
}

// New creates a backup service.
func New(src Snapshotter, dst Archiver, m *metrics.Metrics) *Service {
	return &Service{src: src, dst: dst, metrics: m, now: time.Now}
}

// Key returns the object key of a backup taken at t.
func Key(t time.Time) string {
	return "backups/content-" + t.UTC().Format(keyLayout) + ".json"
}

// Run snapshots the document and archives it under Key(now). It returns
// the key written, or ErrNoChange.
func (s *Service) Run(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.src.Snapshot(ctx)
	if err != nil {
		s.metrics.Backup("failed")
		return "", fmt.Errorf("backup snapshot: %w", err)
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	if hash == s.lastHash {
		s.metrics.Backup("unchanged")
		return "", ErrNoChange
	}

	key := Key(s.now())
	if err := s.dst.Archive(ctx, key, data); err != nil {
		s.metrics.Backup("failed")
		return "", fmt.Errorf("backup archive: %w", err)
	}
	s.lastHash = hash
	s.metrics.Backup("written")

	slog.Info("content backed up", "key", key, "bytes", len(data))
	return key, nil
}
