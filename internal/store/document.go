// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"folio/internal/models"
)

// readDocument reads and migrates the document at path. A missing file is
// reported as fs.ErrNotExist so the caller can decide whether to seed.
// The returned flag is true when migration changed the document.
func readDocument(path string) (*models.Document, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, err
	}
	if err != nil {
		return nil, false, &StorageError{Op: "read", Path: path, Err: err}
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false, &StorageError{Op: "parse", Path: path, Err: err}
	}

	changed, err := migrate(&doc)
	if err != nil {
		return nil, false, &StorageError{Op: "migrate", Path: path, Err: err}
	}
	return &doc, changed, nil
}

// writeDocument replaces the document at path atomically: the JSON is
// written to a temp file in the same directory, synced, then renamed over
// the target.
func writeDocument(path string, doc *models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: path, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// migrate upgrades doc in place to models.SchemaVersion.
func migrate(doc *models.Document) (bool, error) {
	if doc.SchemaVersion > models.SchemaVersion {
		return false, fmt.Errorf("schema version %d is newer than supported version %d",
			doc.SchemaVersion, models.SchemaVersion)
	}

	changed := false
	if doc.SchemaVersion < 1 {
		migrateV0(doc)
		doc.SchemaVersion = 1
		changed = true
		slog.Info("content document migrated", "from", 0, "to", 1)
	}
	normalize(doc)
	return changed, nil
}

// migrateV0 fills the defaults that documents written before versioning
// may lack.
func migrateV0(doc *models.Document) {
	for i := range doc.Projects {
		p := &doc.Projects[i]
		if p.ShowcaseType == "" {
			p.ShowcaseType = models.ShowcaseLinks
		}
		if len(p.CategoryFa) == 0 && len(p.Category) > 0 {
			p.CategoryFa = models.PersianCategories(p.Category)
		}
	}
	for i := range doc.BlogPosts {
		// Drafts did not exist; every stored post was public.
		if doc.BlogPosts[i].Status == "" {
			doc.BlogPosts[i].Status = models.PostStatusPublished
		}
	}
	if doc.Settings == nil {
		s := DefaultSettings()
		doc.Settings = &s
	}
}

// normalize replaces nil slices so the document always serialises lists
// as arrays.
func normalize(doc *models.Document) {
	if doc.Projects == nil {
		doc.Projects = []models.Project{}
	}
	if doc.BlogPosts == nil {
		doc.BlogPosts = []models.BlogPost{}
	}
	for i := range doc.Projects {
		p := &doc.Projects[i]
		p.Gallery = nonNil(p.Gallery)
		p.Tags = nonNil(p.Tags)
		p.Category = nonNil(p.Category)
		p.CategoryFa = nonNil(p.CategoryFa)
	}
	for i := range doc.BlogPosts {
		doc.BlogPosts[i].Tags = nonNil(doc.BlogPosts[i].Tags)
	}
}
