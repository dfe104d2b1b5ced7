// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDuplicateSlug is returned when a create (or a slug rename) would
	// collide with another entity in the same collection.
	ErrDuplicateSlug = errors.New("slug already exists")

	// ErrNotFound is returned when a slug does not match any stored entity,
	// including edits that target a missing slug.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports input that failed validation. Fields maps the
// JSON path of each offending field to a human-readable message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// StorageError wraps a failure to read, parse or write the backing
// document. It is never recovered inside the store.
type StorageError struct {
	Op   string // "read", "parse", "migrate", "write"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("content store %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
