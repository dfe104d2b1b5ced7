// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// SchemaVersion is the document version written by this build.
const SchemaVersion = 1

// Document is the whole on-disk datastore.
type Document struct {
	SchemaVersion int           `json:"schemaVersion"`
	Projects      []Project     `json:"projects"`
	BlogPosts     []BlogPost    `json:"blogPosts"`
	Settings      *SiteSettings `json:"settings,omitempty"`
}
