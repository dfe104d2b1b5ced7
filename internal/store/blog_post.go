// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"folio/internal/markdown"
	"folio/internal/models"
)

// excerptLen is the rune length of descriptions derived from post content.
const excerptLen = 160

// ListBlogPosts returns every post, drafts included, in stored order.
func (s *ContentStore) ListBlogPosts(ctx context.Context) ([]models.BlogPost, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.BlogPosts, nil
}

// ListPublishedPosts returns the public posts, newest date first.
func (s *ContentStore) ListPublishedPosts(ctx context.Context) ([]models.BlogPost, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	posts := make([]models.BlogPost, 0, len(doc.BlogPosts))
	for _, p := range doc.BlogPosts {
		if p.IsPublished() {
			posts = append(posts, p)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt().After(posts[j].PublishedAt())
	})
	return posts, nil
}

// FindBlogPost returns the post with the given slug or ErrNotFound.
// Drafts are returned too; callers serving the public site must check
// IsPublished.
func (s *ContentStore) FindBlogPost(ctx context.Context, postSlug string) (*models.BlogPost, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexPost(doc.BlogPosts, postSlug); i >= 0 {
		return &doc.BlogPosts[i], nil
	}
	return nil, fmt.Errorf("blog post %q: %w", postSlug, ErrNotFound)
}

// SaveBlogPost validates in and creates a post (existingSlug empty) or
// replaces the post stored under existingSlug. The English title and
// content fall back to the Persian ones. A blank date becomes today on
// create and keeps the stored date on edit.
func (s *ContentStore) SaveBlogPost(ctx context.Context, in BlogPostInput, existingSlug string) (*models.BlogPost, error) {
	in.trim()
	in.applyFallbacks()
	if in.Slug == "" {
		if existingSlug != "" {
			in.Slug = existingSlug
		} else {
			in.Slug = generateSlug(in.Title, in.TitleFa)
		}
	}
	if err := check(s.validate, &in); err != nil {
		return nil, err
	}
	if in.Slug == "" {
		return nil, &ValidationError{Fields: map[string]string{"slug": "is required"}}
	}

	post := models.BlogPost{
		Slug:          in.Slug,
		Title:         in.Title,
		TitleFa:       in.TitleFa,
		Content:       in.Content,
		ContentFa:     in.ContentFa,
		Description:   describe(in.SEO.En.MetaDescription, in.Content),
		DescriptionFa: describe(in.SEO.Fa.MetaDescription, in.ContentFa),
		FeaturedImage: in.FeaturedImage,
		Date:          in.Date,
		Tags:          nonNil(in.Tags),
		Status:        in.Status,
		SEO: models.PostSEO{
			En: models.SEOOverride(in.SEO.En),
			Fa: models.SEOOverride(in.SEO.Fa),
		},
	}
	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}

	err := s.mutate(func(doc *models.Document) error {
		if existingSlug == "" {
			if indexPost(doc.BlogPosts, post.Slug) >= 0 {
				return fmt.Errorf("blog post %q: %w", post.Slug, ErrDuplicateSlug)
			}
			if post.Date == "" {
				post.Date = s.today()
			}
			doc.BlogPosts = append([]models.BlogPost{post}, doc.BlogPosts...)
			return nil
		}

		i := indexPost(doc.BlogPosts, existingSlug)
		if i < 0 {
			return fmt.Errorf("blog post %q: %w", existingSlug, ErrNotFound)
		}
		if post.Slug != existingSlug && indexPost(doc.BlogPosts, post.Slug) >= 0 {
			return fmt.Errorf("blog post %q: %w", post.Slug, ErrDuplicateSlug)
		}
		if post.Date == "" {
			post.Date = doc.BlogPosts[i].Date
		}
		if post.Date == "" {
			post.Date = s.today()
		}
		doc.BlogPosts[i] = post
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("blog post saved", "slug", post.Slug, "status", post.Status, "created", existingSlug == "")
	s.reval.RevalidatePaths(ctx, BlogPaths(post.Slug, existingSlug)...)
	return &post, nil
}

// DeleteBlogPost removes the post with the given slug. Deleting a slug
// that does not exist is a no-op.
func (s *ContentStore) DeleteBlogPost(ctx context.Context, postSlug string) error {
	removed := false
	err := s.mutate(func(doc *models.Document) error {
		if i := indexPost(doc.BlogPosts, postSlug); i >= 0 {
			doc.BlogPosts = append(doc.BlogPosts[:i], doc.BlogPosts[i+1:]...)
			removed = true
		}
		return nil
	})
	if err != nil {
		return err
	}
	if removed {
		slog.Info("blog post deleted", "slug", postSlug)
	}
	s.reval.RevalidatePaths(ctx, BlogPaths(postSlug)...)
	return nil
}

func indexPost(posts []models.BlogPost, postSlug string) int {
	for i := range posts {
		if posts[i].Slug == postSlug {
			return i
		}
	}
	return -1
}

// describe prefers an explicit meta description over a content excerpt.
func describe(meta, content string) string {
	if meta != "" {
		return meta
	}
	return markdown.PlainText(content, excerptLen)
}
