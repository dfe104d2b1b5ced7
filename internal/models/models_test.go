// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"reflect"
	"testing"
)

func TestParseLang(t *testing.T) {
	tests := []struct {
		in     string
		want   Lang
		wantOK bool
	}{
		{"fa", LangFa, true},
		{"en", LangEn, true},
		{"de", "", false},
		{"", "", false},
		{"FA", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseLang(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLang(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLangDir(t *testing.T) {
	if LangFa.Dir() != "rtl" {
		t.Errorf("fa dir: got %q, want rtl", LangFa.Dir())
	}
	if LangEn.Dir() != "ltr" {
		t.Errorf("en dir: got %q, want ltr", LangEn.Dir())
	}
}

func TestPersianCategories(t *testing.T) {
	got := PersianCategories([]string{"Backend", "Unknown", "AI"})
	want := []string{"بک‌اند", "Unknown", "هوش مصنوعی"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PersianCategories: got %v, want %v", got, want)
	}
	if len(PersianCategories(nil)) != 0 {
		t.Error("PersianCategories(nil) should be empty")
	}
}

func TestProjectLocalized(t *testing.T) {
	p := &Project{
		Slug:         "demo",
		Title:        "Demo",
		TitleFa:      "دمو",
		Description:  "English description",
		About:        "About in English",
		Category:     []string{"Backend"},
		CategoryFa:   []string{"بک‌اند"},
		ShowcaseType: ShowcaseLinks,
	}

	fa := p.Localized(LangFa)
	if fa.Title != "دمو" {
		t.Errorf("fa title: got %q", fa.Title)
	}
	// Blank Persian variants fall back to English.
	if fa.Description != "English description" {
		t.Errorf("fa description fallback: got %q", fa.Description)
	}
	if !reflect.DeepEqual(fa.Categories, []string{"بک‌اند"}) {
		t.Errorf("fa categories: got %v", fa.Categories)
	}

	en := p.Localized(LangEn)
	if en.Title != "Demo" || en.About != "About in English" {
		t.Errorf("en view: got %+v", en)
	}
	if !reflect.DeepEqual(en.Categories, []string{"Backend"}) {
		t.Errorf("en categories: got %v", en.Categories)
	}
}

func TestProjectChatContext(t *testing.T) {
	p := &Project{Title: "Demo", Description: "desc", About: "about"}
	if got := p.ChatContext(); got != "Demo\n\ndesc\n\nabout" {
		t.Errorf("derived context: got %q", got)
	}

	p.AIChatContext = "explicit"
	if got := p.ChatContext(); got != "explicit" {
		t.Errorf("explicit context: got %q", got)
	}
}

func TestBlogPostLocalized(t *testing.T) {
	p := &BlogPost{
		Slug:          "hello",
		Title:         "Hello",
		TitleFa:       "سلام",
		Content:       "Body",
		ContentFa:     "متن",
		Description:   "desc",
		FeaturedImage: "https://cdn.example/hello.png",
		SEO: PostSEO{
			Fa: SEOOverride{MetaTitle: "عنوان سئو"},
		},
	}

	fa := p.Localized(LangFa)
	if fa.MetaTitle != "عنوان سئو" {
		t.Errorf("fa meta title: got %q", fa.MetaTitle)
	}
	if fa.OGImage != p.FeaturedImage {
		t.Errorf("fa og image fallback: got %q", fa.OGImage)
	}

	en := p.Localized(LangEn)
	if en.MetaTitle != "Hello" {
		t.Errorf("en meta title fallback: got %q", en.MetaTitle)
	}
	if en.MetaDescription != "desc" {
		t.Errorf("en meta description fallback: got %q", en.MetaDescription)
	}
}

func TestBlogPostPublishedAt(t *testing.T) {
	p := &BlogPost{Date: "2024-03-05"}
	got := p.PublishedAt()
	if got.Year() != 2024 || got.Month() != 3 || got.Day() != 5 {
		t.Errorf("PublishedAt: got %v", got)
	}

	p.Date = "not a date"
	if !p.PublishedAt().IsZero() {
		t.Error("malformed date should give zero time")
	}
}
