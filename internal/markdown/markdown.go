// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts Markdown source text into sanitized HTML using
// goldmark and bluemonday, and derives plain-text excerpts for metadata.
package markdown

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,         // tables, strikethrough, autolinks, task lists
		extension.Typographer, // smart quotes and dashes
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
			highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithUnsafe(), // raw HTML is allowed through and then sanitized below
	),
)

// policy strips scripts and event handlers but keeps the class names the
// syntax highlighter emits.
var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyling()
	return p
}()

// ToHTML converts Markdown source into sanitized HTML.
func ToHTML(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}

var (
	linkPattern    = regexp.MustCompile(`!?\[([^\]]*)\]\([^)]*\)`)
	fencePattern   = regexp.MustCompile("(?s)```.*?```")
	markPattern    = regexp.MustCompile("(?m)^\\s*(#{1,6}|>|[-*+]|\\d+\\.)\\s+|[*_`~]")
	spacePattern   = regexp.MustCompile(`\s+`)
	htmlTagPattern = regexp.MustCompile(`<[^>]+>`)
)

// PlainText strips Markdown formatting from source and returns at most
// limit runes of the remaining text. Longer text is cut on a word boundary
// and suffixed with an ellipsis.
func PlainText(source string, limit int) string {
	s := fencePattern.ReplaceAllString(source, " ")
	s = linkPattern.ReplaceAllString(s, "$1")
	s = htmlTagPattern.ReplaceAllString(s, " ")
	s = markPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))

	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "…"
}
