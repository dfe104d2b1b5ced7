// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package render

import (
	"bytes"
	"encoding/xml"
	"strings"
	"time"

	"folio/internal/models"
)

// FeedLimit is the number of posts in each RSS feed.
const FeedLimit = 20

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// Sitemap lists the home, list and detail pages of both languages. Draft
// posts are left out.
func Sitemap(siteURL string, projects []models.Project, posts []models.BlogPost) ([]byte, error) {
	base := strings.TrimRight(siteURL, "/")
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	add := func(path, lastmod, freq, prio string) {
		set.URLs = append(set.URLs, sitemapURL{Loc: base + path, LastMod: lastmod, ChangeFreq: freq, Priority: prio})
	}

	for _, l := range models.Langs {
		prefix := "/" + string(l)
		add(prefix, "", "weekly", "1.0")
		add(prefix+"/projects", "", "weekly", "0.8")
		add(prefix+"/blog", "", "daily", "0.8")
		for _, p := range projects {
			add(prefix+"/projects/"+p.Slug, "", "monthly", "0.7")
		}
		for _, p := range posts {
			if !p.IsPublished() {
				continue
			}
			add(prefix+"/blog/"+p.Slug, p.Date, "monthly", "0.6")
		}
	}
	return marshalXML(set)
}

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        rssGUID  `xml:"guid"`
	PubDate     string   `xml:"pubDate,omitempty"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Feed builds the RSS 2.0 feed of one language from posts, which are
// expected newest first. Drafts are skipped and at most FeedLimit items
// are emitted.
func Feed(lang models.Lang, s models.SiteSettings, posts []models.BlogPost) ([]byte, error) {
	base := strings.TrimRight(s.SEO.SiteURL, "/")
	site := s.Locale(lang)
	prefix := base + "/" + string(lang)

	ch := rssChannel{
		Title:       site.SiteName,
		Link:        prefix,
		Description: site.MetaDescription,
		Language:    string(lang),
		AtomLink:    atomLink{Href: prefix + "/blog/feed.xml", Rel: "self", Type: "application/rss+xml"},
	}

	var latest time.Time
	for _, p := range posts {
		if !p.IsPublished() {
			continue
		}
		if len(ch.Items) == FeedLimit {
			break
		}
		lp := p.Localized(lang)
		link := prefix + "/blog/" + p.Slug
		item := rssItem{
			Title:       lp.Title,
			Link:        link,
			GUID:        rssGUID{IsPermaLink: true, Value: link},
			Description: lp.Description,
			Categories:  lp.Tags,
		}
		if t := p.PublishedAt(); !t.IsZero() {
			item.PubDate = t.Format(time.RFC1123Z)
			if t.After(latest) {
				latest = t
			}
		}
		ch.Items = append(ch.Items, item)
	}
	if !latest.IsZero() {
		ch.LastBuildDate = latest.Format(time.RFC1123Z)
	}

	return marshalXML(rss{Version: "2.0", Atom: "http://www.w3.org/2005/Atom", Channel: ch})
}

// Robots returns robots.txt pointing crawlers at the sitemap and away from
// the admin area.
func Robots(siteURL string) []byte {
	return []byte("User-agent: *\nAllow: /\nDisallow: /admin\n\nSitemap: " +
		strings.TrimRight(siteURL, "/") + "/sitemap.xml\n")
}

func marshalXML(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
