// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"fmt"
	"log/slog"

	"folio/internal/models"
	"folio/internal/slug"
)

// ListProjects returns every project in stored order (newest first).
func (s *ContentStore) ListProjects(ctx context.Context) ([]models.Project, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Projects, nil
}

// FindProject returns the project with the given slug or ErrNotFound.
func (s *ContentStore) FindProject(ctx context.Context, projectSlug string) (*models.Project, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexProject(doc.Projects, projectSlug); i >= 0 {
		return &doc.Projects[i], nil
	}
	return nil, fmt.Errorf("project %q: %w", projectSlug, ErrNotFound)
}

// SaveProject validates in and creates a project (existingSlug empty) or
// replaces the project stored under existingSlug. A blank slug is derived
// from the title on create and kept on edit.
func (s *ContentStore) SaveProject(ctx context.Context, in ProjectInput, existingSlug string) (*models.Project, error) {
	in.trim()
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

	project := in.project()
	err := s.mutate(func(doc *models.Document) error {
		if existingSlug == "" {
			if indexProject(doc.Projects, project.Slug) >= 0 {
				return fmt.Errorf("project %q: %w", project.Slug, ErrDuplicateSlug)
			}
			doc.Projects = append([]models.Project{project}, doc.Projects...)
			return nil
		}

		i := indexProject(doc.Projects, existingSlug)
		if i < 0 {
			return fmt.Errorf("project %q: %w", existingSlug, ErrNotFound)
		}
		if project.Slug != existingSlug && indexProject(doc.Projects, project.Slug) >= 0 {
			return fmt.Errorf("project %q: %w", project.Slug, ErrDuplicateSlug)
		}
		doc.Projects[i] = project
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("project saved", "slug", project.Slug, "created", existingSlug == "")
	s.reval.RevalidatePaths(ctx, ProjectPaths(project.Slug, existingSlug)...)
	return &project, nil
}

// DeleteProject removes the project with the given slug. Deleting a slug
// that does not exist is a no-op.
func (s *ContentStore) DeleteProject(ctx context.Context, projectSlug string) error {
	removed := false
	err := s.mutate(func(doc *models.Document) error {
		if i := indexProject(doc.Projects, projectSlug); i >= 0 {
			doc.Projects = append(doc.Projects[:i], doc.Projects[i+1:]...)
			removed = true
		}
		return nil
	})
	if err != nil {
		return err
	}
	if removed {
		slog.Info("project deleted", "slug", projectSlug)
	}
	s.reval.RevalidatePaths(ctx, ProjectPaths(projectSlug)...)
	return nil
}

func indexProject(projects []models.Project, projectSlug string) int {
	for i := range projects {
		if projects[i].Slug == projectSlug {
			return i
		}
	}
	return -1
}

// generateSlug derives a slug from the first title that yields one.
func generateSlug(titles ...string) string {
	for _, t := range titles {
		if s := slug.Generate(t); s != "" {
			return s
		}
	}
	return ""
}
