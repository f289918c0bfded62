// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures persisted in the key-value
// store and the core types passed between the generation components.
package models

// Category is the closed set of website categories the generator can
// produce. The string values are the keys used in the persisted settings
// document and on generated records.
type Category string

const (
	CategoryGames        Category = "games"
	CategoryTools        Category = "tools"
	CategoryEducational  Category = "educational"
	CategoryCreative     Category = "creative"
	CategoryProductivity Category = "productivity"
)

// AllCategories lists every known category in display order.
var AllCategories = []Category{
	CategoryGames,
	CategoryTools,
	CategoryEducational,
	CategoryCreative,
	CategoryProductivity,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryGames, CategoryTools, CategoryEducational, CategoryCreative, CategoryProductivity:
		return true
	}
	return false
}

// IdeaDescriptor describes one website idea. Values are created by the
// catalog and never mutated afterwards.
type IdeaDescriptor struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Features    []string `json:"features"`
}
