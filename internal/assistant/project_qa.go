// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"folio/internal/ai"
	"folio/internal/metrics"
)

const (
	// MaxQuestionLen is the longest visitor question accepted, in runes.
	MaxQuestionLen = 1000

	maxContextLen = 12000
)

const projectQASystem = `You are a helpful assistant on a software portfolio website.
Answer the visitor's question about the project described below, using only that description.
If the description does not contain the answer, say so briefly instead of guessing.
Keep answers short: at most a few paragraphs. Plain text or simple Markdown only.

Project description:
%s

%s`

const (
	answerInPersian = "The visitor wrote in Persian. Answer in Persian."
	answerInEnglish = "Answer in the language of the question."
)

// ProjectQA answers visitor questions about a single project.
type ProjectQA struct {
	gen     Generator
	mod     Moderator
	metrics *metrics.Metrics
}

// NewProjectQA creates a Q&A flow. mod may be nil to skip moderation and
// m may be nil to skip metrics.
func NewProjectQA(gen Generator, mod Moderator, m *metrics.Metrics) *ProjectQA {
	return &ProjectQA{gen: gen, mod: mod, metrics: m}
}

// Answer replies to question using projectContext as the only source. A
// question containing Persian gets a Persian answer.
func (q *ProjectQA) Answer(ctx context.Context, projectContext, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: question is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(question) > MaxQuestionLen {
		return "", fmt.Errorf("%w: question is longer than %d characters", ErrInvalidInput, MaxQuestionLen)
	}

	if err := q.screen(ctx, question); err != nil {
		q.metrics.AICall("project_qa", err)
		return "", err
	}

	answer, err := q.answer(ctx, projectContext, question)
	q.metrics.AICall("project_qa", err)
	if err != nil {
		slog.Error("project answer failed", "error", err)
		return "", fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return answer, nil
}

// screen rejects flagged questions. Moderation outages fail open, as the
// providers apply their own safety filters.
func (q *ProjectQA) screen(ctx context.Context, question string) error {
	if q.mod == nil {
		return nil
	}
	res, err := q.mod.CheckPrompt(ctx, question)
	if err != nil {
		slog.Warn("moderation check failed, allowing prompt", "error", err)
		return nil
	}
	if !res.Safe {
		slog.Warn("question flagged by moderation", "categories", strings.Join(res.Categories, ", "))
		return ErrFlagged
	}
	return nil
}

func (q *ProjectQA) answer(ctx context.Context, projectContext, question string) (string, error) {
	lang := answerInEnglish
	if IsPersian(question) {
		lang = answerInPersian
	}

	raw, err := q.gen.Generate(ctx, ai.Request{
		System:    fmt.Sprintf(projectQASystem, truncate(strings.TrimSpace(projectContext), maxContextLen), lang),
		Prompt:    question,
		MaxTokens: 1024,
	})
	if err != nil {
		return "", err
	}
	answer := strings.TrimSpace(raw)
	if answer == "" {
		return "", errors.New("empty answer")
	}
	return answer, nil
}
