// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog holds the static table of website ideas the generator
// draws from, keyed by category.
package catalog

import "autosite/internal/models"

// entry is the unexported form of an idea; the category is filled in on
// lookup so the table stays compact.
type entry struct {
	name        string
	description string
	features    []string
}

var ideas = map[models.Category][]entry{
	models.CategoryGames: {
		{"Tic-Tac-Toe AI", "Classic game with unbeatable AI opponent", []string{"AI difficulty levels", "Score tracking", "Sound effects"}},
		{"Snake Game", "Modern take on the classic snake game", []string{"High scores", "Speed controls", "Colorful graphics"}},
		{"Memory Card Game", "Flip cards to find matching pairs", []string{"Multiple themes", "Timer challenge", "Difficulty levels"}},
	},
	models.CategoryTools: {
		{"Advanced Tip Calculator", "Split bills and calculate tips easily", []string{"Bill splitting", "Tax calculation", "Custom tip amounts"}},
		{"Password Generator", "Generate secure passwords", []string{"Customizable length", "Character options", "Strength meter"}},
		{"Color Palette Generator", "Create beautiful color schemes", []string{"Export formats", "Accessibility check", "Trend colors"}},
	},
	models.CategoryEducational: {
		{"Periodic Table Explorer", "Interactive periodic table with element details", []string{"Element search", "Properties display", "Visual grouping"}},
		{"Math Practice Hub", "Practice arithmetic with timed challenges", []string{"Multiple operations", "Progress tracking", "Difficulty adjustment"}},
		{"World Geography Quiz", "Test your knowledge of countries and capitals", []string{"Multiple game modes", "Score leaderboard", "Fact learning"}},
	},
	models.CategoryCreative: {
		{"ASCII Art Generator", "Convert text and images to ASCII art", []string{"Multiple fonts", "Export options", "Custom sizing"}},
		{"Gradient Generator", "Create beautiful CSS gradients", []string{"Live preview", "Code export", "Preset collections"}},
		{"Logo Maker", "Simple logo creation tool", []string{"Icon library", "Text customization", "Download formats"}},
	},
	models.CategoryProductivity: {
		{"Pomodoro Timer Pro", "Advanced time management with statistics", []string{"Custom intervals", "Task tracking", "Break reminders"}},
		{"Daily Habit Tracker", "Track and build positive habits", []string{"Visual progress", "Streak counters", "Goal setting"}},
		{"Meeting Notes App", "Quick note-taking for meetings", []string{"Auto-save", "Export options", "Template library"}},
	},
}

// Ideas returns the ideas registered for c. Unknown categories yield nil.
// The returned descriptors are fresh copies; callers may keep them.
func Ideas(c models.Category) []models.IdeaDescriptor {
	list, ok := ideas[c]
	if !ok {
		return nil
	}
	out := make([]models.IdeaDescriptor, len(list))
	for i, e := range list {
		out[i] = models.IdeaDescriptor{
			Name:        e.name,
			Description: e.description,
			Category:    c,
			Features:    append([]string(nil), e.features...),
		}
	}
	return out
}

// Lookup returns the ideas for c, falling back to the tools list when the
// category has no entry of its own. The descriptors keep the requested
// category so records stay attributed to it.
func Lookup(c models.Category) []models.IdeaDescriptor {
	if list := Ideas(c); len(list) > 0 {
		return list
	}
	out := Ideas(models.CategoryTools)
	for i := range out {
		out[i].Category = c
	}
	return out
}

// Categories returns every category that has at least one idea, in
// models.AllCategories order.
func Categories() []models.Category {
	var out []models.Category
	for _, c := range models.AllCategories {
		if len(ideas[c]) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the idea with the given name, searching every category.
func Find(name string) (models.IdeaDescriptor, bool) {
	for _, c := range Categories() {
		for _, idea := range Ideas(c) {
			if idea.Name == name {
				return idea, true
			}
		}
	}
	return models.IdeaDescriptor{}, false
}
