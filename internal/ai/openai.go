// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Public endpoints of the OpenAI-compatible providers.
var defaultBaseURLs = map[string]string{
	ProviderOpenAI:     "https://api.openai.com/v1",
	ProviderOpenRouter: "https://openrouter.ai/api/v1",
	ProviderMistral:    "https://api.mistral.ai/v1",
}

// chatCompletionsProvider talks to any OpenAI-compatible chat completions
// API (POST {base}/chat/completions). OpenAI, OpenRouter and Mistral differ
// only in base URL.
type chatCompletionsProvider struct {
	name   string
	config ProviderConfig
	client *http.Client
}

func newChatCompletions(name string, cfg ProviderConfig) *chatCompletionsProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURLs[name]
	}
	return &chatCompletionsProvider{name: name, config: cfg, client: newHTTPClient()}
}

func (p *chatCompletionsProvider) Name() string { return p.name }

// Generate returns the first choice's message content.
func (p *chatCompletionsProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := chatRequest{
		Model: p.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	var result chatResponse
	err := postJSON(ctx, p.client, p.name, p.config.BaseURL+"/chat/completions",
		map[string]string{"Authorization": "Bearer " + p.config.APIKey},
		req, &result, chatErrorDetail)
	if err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices returned", p.name)
	}
	return result.Choices[0].Message.Content, nil
}

// chatErrorDetail extracts error.message from an OpenAI-style error body.
// OpenRouter and Mistral sometimes send a bare string instead.
func chatErrorDetail(raw []byte) string {
	var body struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(raw, &body) != nil || len(body.Error) == 0 {
		return ""
	}
	var obj struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body.Error, &obj) == nil && obj.Message != "" {
		return obj.Message
	}
	var s string
	if json.Unmarshal(body.Error, &s) == nil {
		return s
	}
	return ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}
