// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ideasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultURL is the public generation backend.
const DefaultURL = "https://codemaker-backend.onrender.com/generate"

// maxBody caps how much of a response is read. Generated files are small.
const maxBody = 4 << 20

// HTTPSource fetches ideas with an empty-bodied POST to a /generate
// endpoint that answers {"idea": "...", "files": {...}}.
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source for url. An empty url selects DefaultURL.
func NewHTTPSource(url string) *HTTPSource {
	if url == "" {
		url = DefaultURL
	}
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: 90 * time.Second},
	}
}

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("idea source request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("idea source http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("idea source read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("idea source error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("idea source unmarshal: %w", err)
	}
	result.Idea = strings.TrimSpace(result.Idea)
	if result.Idea == "" {
		return nil, ErrEmptyIdea
	}
	return &result, nil
}
