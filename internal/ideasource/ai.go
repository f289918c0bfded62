// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ideasource

import (
	"context"
	"fmt"
	"strings"

	"autosite/internal/ai"
)

const (
	systemPrompt = "You are a helpful AI that generates creative website ideas and simple HTML, CSS, JS code."
	userPrompt   = "Give me a unique website idea and generate simple HTML, CSS, and JS files for it."
)

// sectionMarker separates the idea from the code sections in the reply.
const sectionMarker = "###"

// AISource asks an LLM directly for an idea. Only the idea text is used;
// files are always synthesized locally.
type AISource struct {
	provider ai.Provider
}

// NewAISource creates a source backed by p.
func NewAISource(p ai.Provider) *AISource {
	return &AISource{provider: p}
}

// Fetch implements Source.
func (s *AISource) Fetch(ctx context.Context) (*Result, error) {
	text, err := s.provider.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("idea source %s: %w", s.provider.Name(), err)
	}
	idea, _, _ := strings.Cut(text, sectionMarker)
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, ErrEmptyIdea
	}
	return &Result{Idea: idea}, nil
}
