// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ideasource talks to the external collaborator that proposes a
// website idea (and optionally its files) for a generation cycle.
package ideasource

import (
	"context"
	"errors"
)

// ErrEmptyIdea is returned when the collaborator answers without an idea.
var ErrEmptyIdea = errors.New("idea source returned no idea")

// Result is one answer from an idea source. Files is keyed by published
// file name (index.html, style.css, script.js) and may be empty.
type Result struct {
	Idea  string            `json:"idea"`
	Files map[string]string `json:"files"`
}

// Source proposes an idea for the next cycle.
type Source interface {
	Fetch(ctx context.Context) (*Result, error)
}
