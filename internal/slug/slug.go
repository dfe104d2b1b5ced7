// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation and validation.
package slug

import (
	"regexp"
	"strings"

	gosimple "github.com/gosimple/slug"
)

// MaxLen is the longest slug accepted for projects and posts.
const MaxLen = 120

var (
	// valid matches lowercase ASCII words joined by single hyphens.
	valid = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string. Non-Latin
// scripts (Persian titles included) are transliterated to ASCII first.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := gosimple.Make(strings.TrimSpace(s))
	result = strings.ReplaceAll(result, "_", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > MaxLen {
		result = strings.TrimRight(result[:MaxLen], "-")
	}
	return result
}

// Valid reports whether s is already a well-formed slug.
func Valid(s string) bool {
	return len(s) <= MaxLen && valid.MatchString(s)
}
