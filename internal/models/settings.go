// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// LocaleSettings holds the per-language site identity.
type LocaleSettings struct {
	SiteName        string `json:"siteName"`
	AuthorName      string `json:"authorName"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
}

// SEOSettings holds site-wide SEO values.
type SEOSettings struct {
	SiteURL       string `json:"siteURL"`
	Keywords      string `json:"keywords"`
	TwitterHandle string `json:"twitterHandle"`
	OGImage       string `json:"ogImage"`
}

// SocialLinks holds the owner's contact links.
type SocialLinks struct {
	Email    string `json:"email"`
	GitHub   string `json:"github"`
	Telegram string `json:"telegram"`
}

// SiteSettings is the singleton settings record. It has no key and is
// always read and written as a whole.
type SiteSettings struct {
	En         LocaleSettings `json:"en"`
	Fa         LocaleSettings `json:"fa"`
	SEO        SEOSettings    `json:"seo"`
	Social     SocialLinks    `json:"social"`
	AdminEmail string         `json:"adminEmail"`
}

// Locale returns the identity block for a language.
func (s *SiteSettings) Locale(l Lang) LocaleSettings {
	if l == LangFa {
		return s.Fa
	}
	return s.En
}
