// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// PostStatus represents the publishing state of a blog post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

// DateLayout is the on-disk format of BlogPost.Date.
const DateLayout = "2006-01-02"

// SEOOverride holds optional per-language metadata for a blog post.
type SEOOverride struct {
	MetaTitle       string `json:"meta_title,omitempty"`
	MetaDescription string `json:"meta_description,omitempty"`
	OGImage         string `json:"og_image,omitempty"`
}

// PostSEO groups the per-language SEO overrides.
type PostSEO struct {
	En SEOOverride `json:"en"`
	Fa SEOOverride `json:"fa"`
}

// BlogPost is a bilingual Markdown article.
type BlogPost struct {
	Slug          string     `json:"slug"`
	Title         string     `json:"title"`
	TitleFa       string     `json:"title_fa"`
	Content       string     `json:"content"`
	ContentFa     string     `json:"content_fa"`
	Description   string     `json:"description,omitempty"`
	DescriptionFa string     `json:"description_fa,omitempty"`
	FeaturedImage string     `json:"featured_image"`
	Date          string     `json:"date"`
	Tags          []string   `json:"tags"`
	Status        PostStatus `json:"status"`
	SEO           PostSEO    `json:"seo"`
}

// IsPublished returns true if the post is visible on the public site.
func (p *BlogPost) IsPublished() bool {
	return p.Status == PostStatusPublished
}

// PublishedAt parses Date. The zero time is returned for malformed dates.
func (p *BlogPost) PublishedAt() time.Time {
	t, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// LocalizedPost is a single-language view of a BlogPost with its SEO
// overrides already resolved.
type LocalizedPost struct {
	Slug            string
	Title           string
	Content         string
	Description     string
	FeaturedImage   string
	Date            string
	Tags            []string
	MetaTitle       string
	MetaDescription string
	OGImage         string
}

// Localized returns the post in the given language.
func (p *BlogPost) Localized(l Lang) LocalizedPost {
	seo := p.SEO.En
	if l == LangFa {
		seo = p.SEO.Fa
	}
	lp := LocalizedPost{
		Slug:            p.Slug,
		Title:           pick(l, p.Title, p.TitleFa),
		Content:         pick(l, p.Content, p.ContentFa),
		Description:     pick(l, p.Description, p.DescriptionFa),
		FeaturedImage:   p.FeaturedImage,
		Date:            p.Date,
		Tags:            p.Tags,
		MetaTitle:       seo.MetaTitle,
		MetaDescription: seo.MetaDescription,
		OGImage:         seo.OGImage,
	}
	if lp.MetaTitle == "" {
		lp.MetaTitle = lp.Title
	}
	if lp.MetaDescription == "" {
		lp.MetaDescription = lp.Description
	}
	if lp.OGImage == "" {
		lp.OGImage = p.FeaturedImage
	}
	return lp
}
