// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"encoding/json"
	"strings"

	"folio/internal/models"
)

// CSVList is a list field that admin forms submit as comma-separated text.
// It also accepts a JSON array. Items are trimmed, empties are dropped and
// order is kept.
type CSVList []string

// UnmarshalJSON accepts either "a, b, c" or ["a", "b", "c"].
func (l *CSVList) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*l = SplitList(text)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*l = cleanList(items)
	return nil
}

// SplitList splits comma-separated text into trimmed, non-empty items.
func SplitList(text string) []string {
	return cleanList(strings.Split(text, ","))
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ProjectLinksInput holds the optional external links of a project form.
type ProjectLinksInput struct {
	GitHub string `json:"github" validate:"omitempty,url"`
	Live   string `json:"live" validate:"omitempty,url"`
}

// ProjectInput is the admin form payload for creating or editing a project.
type ProjectInput struct {
	Slug               string              `json:"slug" validate:"omitempty,slug"`
	Title              string              `json:"title" validate:"required,max=200"`
	TitleFa            string              `json:"title_fa" validate:"required,max=200"`
	Description        string              `json:"description" validate:"required,max=1000"`
	DescriptionFa      string              `json:"description_fa" validate:"required,max=1000"`
	About              string              `json:"about"`
	AboutFa            string              `json:"about_fa"`
	TechnicalDetails   string              `json:"technical_details"`
	TechnicalDetailsFa string              `json:"technical_details_fa"`
	Challenges         string              `json:"challenges"`
	ChallengesFa       string              `json:"challenges_fa"`
	Solution           string              `json:"solution"`
	SolutionFa         string              `json:"solution_fa"`
	CodeSnippet        string              `json:"code_snippet"`
	CodeSnippetFa      string              `json:"code_snippet_fa"`
	Image              string              `json:"image" validate:"omitempty,url"`
	Gallery            CSVList             `json:"gallery" validate:"dive,url"`
	Tags               CSVList             `json:"tags" validate:"dive,max=50"`
	Category           []string            `json:"category" validate:"required,min=1,dive,category"`
	Links              ProjectLinksInput   `json:"links"`
	ShowcaseType       models.ShowcaseType `json:"showcase_type" validate:"omitempty,oneof=links simulator ai_chatbot"`
	AIChatContext      string              `json:"ai_chat_context" validate:"max=20000"`
}

func (in *ProjectInput) trim() {
	for _, f := range []*string{
		&in.Slug, &in.Title, &in.TitleFa, &in.Description, &in.DescriptionFa,
		&in.About, &in.AboutFa, &in.TechnicalDetails, &in.TechnicalDetailsFa,
		&in.Challenges, &in.ChallengesFa, &in.Solution, &in.SolutionFa,
		&in.Image, &in.Links.GitHub, &in.Links.Live, &in.AIChatContext,
	} {
		*f = strings.TrimSpace(*f)
	}
	// Code snippets keep their indentation; only trailing blank lines go.
	in.CodeSnippet = strings.TrimRight(in.CodeSnippet, " \t\r\n")
	in.CodeSnippetFa = strings.TrimRight(in.CodeSnippetFa, " \t\r\n")
	in.Category = cleanList(in.Category)
}

// project builds the stored entity, deriving the Persian category labels.
func (in *ProjectInput) project() models.Project {
	showcase := in.ShowcaseType
	if showcase == "" {
		showcase = models.ShowcaseLinks
	}
	return models.Project{
		Slug:               in.Slug,
		Title:              in.Title,
		TitleFa:            in.TitleFa,
		Description:        in.Description,
		DescriptionFa:      in.DescriptionFa,
		About:              in.About,
		AboutFa:            in.AboutFa,
		TechnicalDetails:   in.TechnicalDetails,
		TechnicalDetailsFa: in.TechnicalDetailsFa,
		Challenges:         in.Challenges,
		ChallengesFa:       in.ChallengesFa,
		Solution:           in.Solution,
		SolutionFa:         in.SolutionFa,
		CodeSnippet:        in.CodeSnippet,
		CodeSnippetFa:      in.CodeSnippetFa,
		Image:              in.Image,
		Gallery:            nonNil(in.Gallery),
		Tags:               nonNil(in.Tags),
		Category:           nonNil(in.Category),
		CategoryFa:         models.PersianCategories(in.Category),
		Links:              models.ProjectLinks{GitHub: in.Links.GitHub, Live: in.Links.Live},
		ShowcaseType:       showcase,
		AIChatContext:      in.AIChatContext,
	}
}

// SEOInput holds one language's SEO overrides from the post form.
type SEOInput struct {
	MetaTitle       string `json:"meta_title" validate:"max=200"`
	MetaDescription string `json:"meta_description" validate:"max=320"`
	OGImage         string `json:"og_image" validate:"omitempty,url"`
}

// PostSEOInput groups the per-language SEO overrides.
type PostSEOInput struct {
	En SEOInput `json:"en"`
	Fa SEOInput `json:"fa"`
}

// BlogPostInput is the admin form payload for creating or editing a post.
// The English title and content may be left blank; they fall back to the
// Persian ones.
type BlogPostInput struct {
	Slug          string            `json:"slug" validate:"omitempty,slug"`
	Title         string            `json:"title" validate:"required,max=200"`
	TitleFa       string            `json:"title_fa" validate:"required,max=200"`
	Content       string            `json:"content" validate:"required,max=200000"`
	ContentFa     string            `json:"content_fa" validate:"required,max=200000"`
	FeaturedImage string            `json:"featured_image" validate:"omitempty,url"`
	Date          string            `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Tags          CSVList           `json:"tags" validate:"required,min=1,dive,max=50"`
	Status        models.PostStatus `json:"status" validate:"omitempty,oneof=draft published"`
	SEO           PostSEOInput      `json:"seo"`
}

func (in *BlogPostInput) trim() {
	for _, f := range []*string{
		&in.Slug, &in.Title, &in.TitleFa, &in.FeaturedImage, &in.Date,
		&in.SEO.En.MetaTitle, &in.SEO.En.MetaDescription, &in.SEO.En.OGImage,
		&in.SEO.Fa.MetaTitle, &in.SEO.Fa.MetaDescription, &in.SEO.Fa.OGImage,
	} {
		*f = strings.TrimSpace(*f)
	}
	in.Content = strings.TrimSpace(in.Content)
	in.ContentFa = strings.TrimSpace(in.ContentFa)
}

// applyFallbacks fills the English title and content from the Persian ones
// when they are blank. Running it twice changes nothing.
func (in *BlogPostInput) applyFallbacks() {
	if in.Title == "" {
		in.Title = in.TitleFa
	}
	if in.Content == "" {
		in.Content = in.ContentFa
	}
}

// LocaleSettingsInput is one language's identity block on the settings form.
type LocaleSettingsInput struct {
	SiteName        string `json:"siteName" validate:"required,max=120"`
	AuthorName      string `json:"authorName" validate:"required,max=120"`
	MetaTitle       string `json:"metaTitle" validate:"required,max=200"`
	MetaDescription string `json:"metaDescription" validate:"required,max=320"`
}

// SettingsInput is the settings form payload. Every sub-object is required.
type SettingsInput struct {
	En  LocaleSettingsInput `json:"en"`
	Fa  LocaleSettingsInput `json:"fa"`
	SEO struct {
		SiteURL       string `json:"siteURL" validate:"required,url"`
		Keywords      string `json:"keywords" validate:"max=500"`
		TwitterHandle string `json:"twitterHandle" validate:"max=50"`
		OGImage       string `json:"ogImage" validate:"omitempty,url"`
	} `json:"seo"`
	Social struct {
		Email    string `json:"email" validate:"required,email"`
		GitHub   string `json:"github" validate:"omitempty,url"`
		Telegram string `json:"telegram" validate:"omitempty,url"`
	} `json:"social"`
	AdminEmail string `json:"adminEmail" validate:"required,email"`
}

// SettingsInputFrom copies stored settings into a form payload.
func SettingsInputFrom(s models.SiteSettings) SettingsInput {
	var in SettingsInput
	in.En = LocaleSettingsInput(s.En)
	in.Fa = LocaleSettingsInput(s.Fa)
	in.SEO.SiteURL = s.SEO.SiteURL
	in.SEO.Keywords = s.SEO.Keywords
	in.SEO.TwitterHandle = s.SEO.TwitterHandle
	in.SEO.OGImage = s.SEO.OGImage
	in.Social.Email = s.Social.Email
	in.Social.GitHub = s.Social.GitHub
	in.Social.Telegram = s.Social.Telegram
	in.AdminEmail = s.AdminEmail
	return in
}

func (in *SettingsInput) trim() {
	for _, f := range []*string{
		&in.En.SiteName, &in.En.AuthorName, &in.En.MetaTitle, &in.En.MetaDescription,
		&in.Fa.SiteName, &in.Fa.AuthorName, &in.Fa.MetaTitle, &in.Fa.MetaDescription,
		&in.SEO.SiteURL, &in.SEO.Keywords, &in.SEO.TwitterHandle, &in.SEO.OGImage,
		&in.Social.Email, &in.Social.GitHub, &in.Social.Telegram, &in.AdminEmail,
	} {
		*f = strings.TrimSpace(*f)
	}
	in.SEO.SiteURL = strings.TrimRight(in.SEO.SiteURL, "/")
}

func (in *SettingsInput) settings() models.SiteSettings {
	return models.SiteSettings{
		En: models.LocaleSettings(in.En),
		Fa: models.LocaleSettings(in.Fa),
		SEO: models.SEOSettings{
			SiteURL:       in.SEO.SiteURL,
			Keywords:      in.SEO.Keywords,
			TwitterHandle: in.SEO.TwitterHandle,
			OGImage:       in.SEO.OGImage,
		},
		Social: models.SocialLinks{
			Email:    in.Social.Email,
			GitHub:   in.Social.GitHub,
			Telegram: in.Social.Telegram,
		},
		AdminEmail: in.AdminEmail,
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
