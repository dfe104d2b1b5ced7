// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// ShowcaseType selects the interactive block a project detail page renders.
type ShowcaseType string

const (
	ShowcaseLinks     ShowcaseType = "links"
	ShowcaseSimulator ShowcaseType = "simulator"
	ShowcaseAIChatbot ShowcaseType = "ai_chatbot"
)

// ProjectLinks holds the optional external links of a project.
type ProjectLinks struct {
	GitHub string `json:"github,omitempty"`
	Live   string `json:"live,omitempty"`
}

// Project is a portfolio entry. Text fields come in English and Persian
// pairs; the Persian variant carries the _fa suffix.
type Project struct {
	Slug               string       `json:"slug"`
	Title              string       `json:"title"`
	TitleFa            string       `json:"title_fa"`
	Description        string       `json:"description"`
	DescriptionFa      string       `json:"description_fa"`
	About              string       `json:"about,omitempty"`
	AboutFa            string       `json:"about_fa,omitempty"`
	TechnicalDetails   string       `json:"technical_details,omitempty"`
	TechnicalDetailsFa string       `json:"technical_details_fa,omitempty"`
	Challenges         string       `json:"challenges,omitempty"`
	ChallengesFa       string       `json:"challenges_fa,omitempty"`
	Solution           string       `json:"solution,omitempty"`
	SolutionFa         string       `json:"solution_fa,omitempty"`
	CodeSnippet        string       `json:"code_snippet,omitempty"`
	CodeSnippetFa      string       `json:"code_snippet_fa,omitempty"`
	Image              string       `json:"image"`
	Gallery            []string     `json:"gallery"`
	Tags               []string     `json:"tags"`
	Category           []string     `json:"category"`
	CategoryFa         []string     `json:"category_fa"`
	Links              ProjectLinks `json:"links"`
	ShowcaseType       ShowcaseType `json:"showcase_type"`
	AIChatContext      string       `json:"ai_chat_context,omitempty"`
}

// LocalizedProject is a read-only, single-language view of a Project.
type LocalizedProject struct {
	Slug             string
	Title            string
	Description      string
	About            string
	TechnicalDetails string
	Challenges       string
	Solution         string
	CodeSnippet      string
	Image            string
	Gallery          []string
	Tags             []string
	Categories       []string
	Links            ProjectLinks
	ShowcaseType     ShowcaseType
}

// Localized returns the project's fields in the given language, falling
// back to English where the Persian variant is blank.
func (p *Project) Localized(l Lang) LocalizedProject {
	categories := p.Category
	if l == LangFa && len(p.CategoryFa) > 0 {
		categories = p.CategoryFa
	}
	return LocalizedProject{
		Slug:             p.Slug,
		Title:            pick(l, p.Title, p.TitleFa),
		Description:      pick(l, p.Description, p.DescriptionFa),
		About:            pick(l, p.About, p.AboutFa),
		TechnicalDetails: pick(l, p.TechnicalDetails, p.TechnicalDetailsFa),
		Challenges:       pick(l, p.Challenges, p.ChallengesFa),
		Solution:         pick(l, p.Solution, p.SolutionFa),
		CodeSnippet:      pick(l, p.CodeSnippet, p.CodeSnippetFa),
		Image:            p.Image,
		Gallery:          p.Gallery,
		Tags:             p.Tags,
		Categories:       categories,
		Links:            p.Links,
		ShowcaseType:     p.ShowcaseType,
	}
}

// HasChatbot reports whether the project detail page offers the Q&A chat.
func (p *Project) HasChatbot() bool {
	return p.ShowcaseType == ShowcaseAIChatbot
}

// ChatContext returns the text the Q&A assistant answers from. An explicit
// AI chat context wins; otherwise the English long-form fields are joined.
func (p *Project) ChatContext() string {
	if p.AIChatContext != "" {
		return p.AIChatContext
	}
	ctx := p.Title + "\n\n" + p.Description
	for _, s := range []string{p.About, p.TechnicalDetails, p.Challenges, p.Solution} {
		if s != "" {
			ctx += "\n\n" + s
		}
	}
	return ctx
}
