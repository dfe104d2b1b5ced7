// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"

	"folio/internal/models"
)

// Revalidator drops cached renderings after a mutation. Paths are public
// request paths such as "/en/projects/demo".
type Revalidator interface {
	RevalidatePaths(ctx context.Context, paths ...string)
	RevalidateAll(ctx context.Context)
}

type nopRevalidator struct{}

func (nopRevalidator) RevalidatePaths(context.Context, ...string) {}
func (nopRevalidator) RevalidateAll(context.Context)              {}

// ProjectPaths lists the pages that show projects. Slugs are the old and
// new slug of the mutated project; blanks are skipped.
func ProjectPaths(slugs ...string) []string {
	return sectionPaths("projects", slugs)
}

// BlogPaths lists the pages that show blog posts, feeds included.
func BlogPaths(slugs ...string) []string {
	paths := sectionPaths("blog", slugs)
	for _, l := range models.Langs {
		paths = append(paths, "/"+string(l)+"/blog/feed.xml")
	}
	return paths
}

func sectionPaths(section string, slugs []string) []string {
	paths := []string{"/", "/sitemap.xml"}
	for _, l := range models.Langs {
		root := "/" + string(l)
		paths = append(paths, root, root+"/"+section)
		seen := map[string]bool{}
		for _, s := range slugs {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			paths = append(paths, root+"/"+section+"/"+s)
		}
	}
	return paths
}
