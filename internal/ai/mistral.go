// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import "net/http"

// newMistral creates a Mistral provider. Mistral's chat API is
// OpenAI-compatible, JSON mode included, at a different base URL.
func newMistral(cfg ProviderConfig) *chatProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mistral.ai/v1"
	}
	return &chatProvider{
		name:   "mistral",
		config: cfg,
		client: &http.Client{Timeout: generateTimeout},
	}
}
