// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package engine synthesizes the three files of a generated website
// (markup, styling, behavior) from an idea descriptor. Templates are
// embedded at compile time and parsed once in New; Synthesize is a pure
// function of its input.
package engine

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"autosite/internal/models"
	"autosite/internal/slug"
)

//go:embed templates/*
var templateFS embed.FS

// File names of the synthesized artifacts, as published.
const (
	FileMarkup   = "index.html"
	FileStyling  = "style.css"
	FileBehavior = "script.js"
)

// Generator names one family of markup/behavior templates.
type Generator string

const (
	GeneratorGame Generator = "game"
	GeneratorTool Generator = "tool"
)

// GeneratorFor maps a category to its generator. Only games have a
// dedicated generator; every other category, including ones added later,
// uses the tool generator.
func GeneratorFor(c models.Category) Generator {
	switch c {
	case models.CategoryGames:
		return GeneratorGame
	case models.CategoryTools:
		return GeneratorTool
	default:
		return GeneratorTool
	}
}

// Artifacts holds the synthesized files for one idea.
type Artifacts struct {
	Markup   string
	Styling  string
	Behavior string
}

// Files returns the artifacts keyed by their published file name.
func (a Artifacts) Files() map[string]string {
	return map[string]string{
		FileMarkup:   a.Markup,
		FileStyling:  a.Styling,
		FileBehavior: a.Behavior,
	}
}

// Complete reports whether all three files are non-empty.
func (a Artifacts) Complete() bool {
	return a.Markup != "" && a.Styling != "" && a.Behavior != ""
}

// ArtifactsFromFiles is the inverse of Files.
func ArtifactsFromFiles(files map[string]string) Artifacts {
	return Artifacts{
		Markup:   files[FileMarkup],
		Styling:  files[FileStyling],
		Behavior: files[FileBehavior],
	}
}

// templateData is what the markup and behavior templates see. Name,
// Description and Features are inserted verbatim.
type templateData struct {
	Name        string
	Description string
	Category    models.Category
	Features    []string
	Slug        string
}

type generator struct {
	markup   *template.Template
	behavior *template.Template
}

// Engine renders artifacts from the embedded templates.
type Engine struct {
	generators map[Generator]*generator

	// styling is the single stylesheet shared by every generated site. It
	// takes no parameters, so it is read once and returned as-is.
	styling string
}

// New parses the embedded templates. It only fails if the embedded files
// are malformed.
func New() (*Engine, error) {
	css, err := templateFS.ReadFile("templates/style.css")
	if err != nil {
		return nil, fmt.Errorf("engine read stylesheet: %w", err)
	}

	e := &Engine{
		generators: make(map[Generator]*generator),
		styling:    string(css),
	}
	for _, g := range []Generator{GeneratorGame, GeneratorTool} {
		markup, err := parse(string(g) + ".html.tmpl")
		if err != nil {
			return nil, err
		}
		behavior, err := parse(string(g) + ".js.tmpl")
		if err != nil {
			return nil, err
		}
		e.generators[g] = &generator{markup: markup, behavior: behavior}
	}
	return e, nil
}

// MustNew is like New but panics on error. Used by tests.
func MustNew() *Engine {
	e, err := New()
	if err != nil {
		panic(err)
	}
	return e
}

func parse(name string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("engine parse %s: %w", name, err)
	}
	return tmpl, nil
}

// Synthesize produces the three artifacts for idea. Equal inputs always
// produce byte-identical output.
func (e *Engine) Synthesize(idea models.IdeaDescriptor) (Artifacts, error) {
	g := e.generators[GeneratorFor(idea.Category)]

	data := templateData{
		Name:        idea.Name,
		Description: idea.Description,
		Category:    idea.Category,
		Features:    idea.Features,
		Slug:        slug.Generate(idea.Name),
	}
	if data.Slug == "" {
		data.Slug = "site"
	}

	markup, err := execute(g.markup, data)
	if err != nil {
		return Artifacts{}, err
	}
	behavior, err := execute(g.behavior, data)
	if err != nil {
		return Artifacts{}, err
	}

	return Artifacts{
		Markup:   markup,
		Styling:  e.styling,
		Behavior: behavior,
	}, nil
}

func execute(tmpl *template.Template, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("engine execute %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
