// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store persists the site content as one JSON document on disk.
//
// Every mutation is a read-modify-write of the whole document under a
// single writer lock, written atomically. Reads take the read lock and
// re-read the file, so edits made out of band are picked up without a
// restart.
package store

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"folio/internal/models"
)

// ContentStore handles all reads and writes of the content document.
type ContentStore struct {
	path     string
	mu       sync.RWMutex
	reval    Revalidator
	validate *validator.Validate
	now      func() time.Time
}

// NewContentStore creates a store for the document at path without
// touching the filesystem. A nil Revalidator disables cache invalidation.
func NewContentStore(path string, reval Revalidator) *ContentStore {
	if reval == nil {
		reval = nopRevalidator{}
	}
	return &ContentStore{
		path:     path,
		reval:    reval,
		validate: newValidator(),
		now:      time.Now,
	}
}

// Open creates a store and loads the document once, seeding or migrating
// it on disk as needed. A corrupt document is returned as a *StorageError.
func Open(ctx context.Context, path string, reval Revalidator) (*ContentStore, error) {
	s := NewContentStore(path, reval)
	if _, err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the location of the backing document.
func (s *ContentStore) Path() string { return s.path }

// Load returns the whole document. When none exists yet, the seed content
// is written and returned; an older schema is migrated and written back.
func (s *ContentStore) Load(_ context.Context) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// loadLocked must be called with the write lock held.
func (s *ContentStore) loadLocked() (*models.Document, error) {
	doc, changed, err := readDocument(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		doc = seedDocument()
		if err := writeDocument(s.path, doc); err != nil {
			return nil, err
		}
		slog.Info("content document seeded", "path", s.path)
		return doc, nil
	}
	if err != nil {
		return nil, err
	}
	if changed {
		if err := writeDocument(s.path, doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// read returns a fresh copy of the document under the read lock, falling
// back to Load when the file does not exist yet.
func (s *ContentStore) read(ctx context.Context) (*models.Document, error) {
	s.mu.RLock()
	doc, _, err := readDocument(s.path)
	s.mu.RUnlock()
	if errors.Is(err, fs.ErrNotExist) {
		return s.Load(ctx)
	}
	return doc, err
}

// mutate runs fn against the current document and persists the result.
// Nothing is written when fn returns an error.
func (s *ContentStore) mutate(fn func(doc *models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return writeDocument(s.path, doc)
}

// Snapshot returns the serialised document as stored on disk.
func (s *ContentStore) Snapshot(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	data, err := os.ReadFile(s.path)
	s.mu.RUnlock()
	if errors.Is(err, fs.ErrNotExist) {
		if _, err := s.Load(ctx); err != nil {
			return nil, err
		}
		return s.Snapshot(ctx)
	}
	if err != nil {
		return nil, &StorageError{Op: "read", Path: s.path, Err: err}
	}
	return data, nil
}

func (s *ContentStore) today() string {
	return s.now().UTC().Format(models.DateLayout)
}
