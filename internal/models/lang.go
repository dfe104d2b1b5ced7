// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the content types persisted in the site document
// and the small helpers the rendering and admin layers use to read them.
package models

// Lang is a site language. Every public route lives under one of them.
type Lang string

const (
	LangFa Lang = "fa"
	LangEn Lang = "en"
)

// Langs lists the supported languages in route order.
var Langs = []Lang{LangFa, LangEn}

// ParseLang returns the language for a route segment.
func ParseLang(s string) (Lang, bool) {
	switch Lang(s) {
	case LangFa:
		return LangFa, true
	case LangEn:
		return LangEn, true
	}
	return "", false
}

// Dir returns the text direction for the language ("rtl" or "ltr").
func (l Lang) Dir() string {
	if l == LangFa {
		return "rtl"
	}
	return "ltr"
}

// pick returns fa when the language is Persian and fa is non-empty,
// otherwise en.
func pick(l Lang, en, fa string) string {
	if l == LangFa && fa != "" {
		return fa
	}
	return en
}
