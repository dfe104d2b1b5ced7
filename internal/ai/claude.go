// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

const (
	claudeMaxTokens = 4096
	claudeVersion   = "2023-06-01"

	// claudeJSONInstruction replaces a native JSON mode, which the
	// Messages API does not have.
	claudeJSONInstruction = "Respond with a single JSON object and nothing else."
)

// claudeProvider implements the Provider interface using the Anthropic
// Messages API (POST /v1/messages).
type claudeProvider struct {
	config ProviderConfig
	client *http.Client
}

// newClaude creates a new Anthropic Claude provider.
func newClaude(cfg ProviderConfig) *claudeProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	return &claudeProvider{
		config: cfg,
		client: &http.Client{Timeout: generateTimeout},
	}
}

func (p *claudeProvider) Name() string { return "claude" }

// Generate sends one user message. In JSON mode the assistant turn is
// prefilled with "{" so the reply starts inside the object.
func (p *claudeProvider) Generate(ctx context.Context, req Request) (string, error) {
	body := claudeRequest{
		Model:       p.config.Model,
		MaxTokens:   req.MaxTokens,
		System:      req.System,
		Temperature: req.Temperature,
		Messages:    []claudeMessage{{Role: "user", Content: req.Prompt}},
	}
	if body.MaxTokens == 0 {
		body.MaxTokens = claudeMaxTokens
	}
	if req.JSON {
		body.System = strings.TrimSpace(body.System + "\n\n" + claudeJSONInstruction)
		body.Messages = append(body.Messages, claudeMessage{Role: "assistant", Content: "{"})
	}

	headers := map[string]string{
		"x-api-key":         p.config.APIKey,
		"anthropic-version": claudeVersion,
	}
	var result claudeResponse
	if err := postJSON(ctx, p.client, "claude", p.config.BaseURL+"/v1/messages", headers, body, &result); err != nil {
		return "", err
	}

	for _, block := range result.Content {
		if block.Type == "text" {
			if req.JSON {
				return "{" + block.Text, nil
			}
			return block.Text, nil
		}
	}
	return "", errors.New("claude: no text content in response")
}

// --- Anthropic Messages API types ---

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens"`
	System      string          `json:"system,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
	Messages    []claudeMessage `json:"messages"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeResponse struct {
	Content []claudeContentBlock `json:"content"`
}
