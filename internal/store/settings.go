// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"log/slog"

	"folio/internal/models"
)

// GetSettings returns the site settings, or the defaults when the document
// carries none.
func (s *ContentStore) GetSettings(ctx context.Context) (*models.SiteSettings, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	if doc.Settings == nil {
		d := DefaultSettings()
		return &d, nil
	}
	return doc.Settings, nil
}

// SaveSettings validates and replaces the settings singleton. Settings
// appear on every page, so the whole cache is dropped.
func (s *ContentStore) SaveSettings(ctx context.Context, in SettingsInput) (*models.SiteSettings, error) {
	in.trim()
	if err := check(s.validate, &in); err != nil {
		return nil, err
	}

	settings := in.settings()
	err := s.mutate(func(doc *models.Document) error {
		doc.Settings = &settings
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("site settings saved")
	s.reval.RevalidateAll(ctx)
	return &settings, nil
}
