// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"folio/internal/ai"
	"folio/internal/metrics"
)

const blogWriterSystem = `You are a bilingual technical writer for a software engineer's blog.
Write one blog post in both Persian and English about the given topic, using the given title.

Return a single JSON object with exactly these keys:
- "content_fa": the full post in Persian, formatted as Markdown
- "content": the same post in English, formatted as Markdown
- "tags": an array of 3 to 5 short English tags
- "meta_description_fa": a Persian meta description of about 155 characters
- "meta_description": an English meta description of about 155 characters

Do not include the title as a heading in the content. Do not add any text outside the JSON object.`

// GeneratedPost is a draft produced by the blog writer.
type GeneratedPost struct {
	ContentFa         string   `json:"content_fa" validate:"required"`
	Content           string   `json:"content" validate:"required"`
	Tags              []string `json:"tags" validate:"min=3,max=5,dive,required,max=50"`
	MetaDescriptionFa string   `json:"meta_description_fa" validate:"required,max=200"`
	MetaDescription   string   `json:"meta_description" validate:"required,max=200"`
}

// BlogWriter drafts bilingual blog posts.
type BlogWriter struct {
	gen      Generator
	validate *validator.Validate
	metrics  *metrics.Metrics
}

// NewBlogWriter creates a writer backed by gen. m may be nil.
func NewBlogWriter(gen Generator, m *metrics.Metrics) *BlogWriter {
	return &BlogWriter{
		gen:      gen,
		validate: validator.New(),
		metrics:  m,
	}
}

// Generate drafts a post about topic titled title. A response that is not
// a conforming JSON object is an upstream failure like any other.
func (w *BlogWriter) Generate(ctx context.Context, topic, title string) (*GeneratedPost, error) {
	topic = strings.TrimSpace(topic)
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	post, err := w.generate(ctx, topic, title)
	w.metrics.AICall("blog_writer", err)
	if err != nil {
		slog.Error("blog post generation failed", "title", title, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	slog.Info("blog post generated", "title", title, "tags", len(post.Tags))
	return post, nil
}

func (w *BlogWriter) generate(ctx context.Context, topic, title string) (*GeneratedPost, error) {
	prompt := "Title: " + title
	if topic != "" {
		prompt += "\n\nTopic and context:\n" + truncate(topic, 4000)
	}

	raw, err := w.gen.Generate(ctx, ai.Request{
		System:    blogWriterSystem,
		Prompt:    prompt,
		JSON:      true,
		MaxTokens: 8192,
	})
	if err != nil {
		return nil, err
	}

	var post GeneratedPost
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &post); err != nil {
		return nil, fmt.Errorf("decode generated post: %w", err)
	}
	post.normalize()
	if err := w.validate.Struct(&post); err != nil {
		return nil, fmt.Errorf("generated post failed validation: %w", err)
	}
	return &post, nil
}

// normalize trims every field and drops blank or repeated tags.
func (p *GeneratedPost) normalize() {
	p.ContentFa = strings.TrimSpace(p.ContentFa)
	p.Content = strings.TrimSpace(p.Content)
	p.MetaDescriptionFa = strings.TrimSpace(p.MetaDescriptionFa)
	p.MetaDescription = strings.TrimSpace(p.MetaDescription)

	seen := make(map[string]bool, len(p.Tags))
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, t)
	}
	p.Tags = tags
}
