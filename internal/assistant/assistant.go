// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package assistant implements the two generative flows of the site: the
// admin blog-post writer and the visitor-facing project Q&A.
package assistant

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"folio/internal/ai"
)

var (
	// ErrUpstream means the AI provider failed, timed out or answered with
	// something unusable. The cause is logged and wrapped, but callers
	// should show visitors a generic retry message.
	ErrUpstream = errors.New("assistant: AI service unavailable")

	// ErrFlagged means moderation rejected the visitor's prompt.
	ErrFlagged = errors.New("assistant: prompt flagged by moderation")

	// ErrInvalidInput means a required argument was empty or too long.
	ErrInvalidInput = errors.New("assistant: invalid input")
)

// Generator produces text for a request. *ai.Registry implements it.
type Generator interface {
	Generate(ctx context.Context, req ai.Request) (string, error)
}

// Moderator screens visitor prompts. *ai.Registry implements it.
type Moderator interface {
	CheckPrompt(ctx context.Context, prompt string) (*ai.ModerationResult, error)
}

// IsPersian reports whether text contains Arabic-script letters, which on
// this site means the visitor wrote in Persian.
func IsPersian(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Arabic, r) && unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// stripCodeFence removes a surrounding ``` fence (with or without a
// language tag) that models like to wrap JSON in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.Index(s, "\n"); i != -1 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	if i := strings.LastIndex(s, "```"); i != -1 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
