package handlers

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"autosite/internal/models"
)

// Validation limits for API inputs.
const (
	maxUsernameLen    = 100
	maxIdeaNameLen    = 120
	maxDescriptionLen = 1_000
	maxFeatures       = 10
	maxFeatureLen     = 200
	maxLogLimit       = 50
)

// validateSettings checks a settings document and returns the first error
// found.
func validateSettings(s models.Settings) string {
	if strings.TrimSpace(s.GithubUsername) == "" {
		return "GitHub username is required."
	}
	if utf8.RuneCountInString(s.GithubUsername) > maxUsernameLen {
		return "GitHub username is too long (max 100 characters)."
	}
	if err := s.Validate(); err != nil {
		return err.Error()
	}
	return ""
}

// validateIdeaName checks the name of a preview request.
func validateIdeaName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Idea name is required."
	}
	if utf8.RuneCountInString(name) > maxIdeaNameLen {
		return "Idea name is too long (max 120 characters)."
	}
	return ""
}

// validateIdea checks a custom idea descriptor.
func validateIdea(idea models.IdeaDescriptor) string {
	if msg := validateIdeaName(idea.Name); msg != "" {
		return msg
	}
	if utf8.RuneCountInString(idea.Description) > maxDescriptionLen {
		return "Description is too long (max 1,000 characters)."
	}
	if !idea.Category.Valid() {
		return "Unknown category."
	}
	if len(idea.Features) > maxFeatures {
		return "Too many features (max 10)."
	}
	for _, f := range idea.Features {
		if utf8.RuneCountInString(f) > maxFeatureLen {
			return "Feature is too long (max 200 characters)."
		}
	}
	return ""
}

// parseCategory validates an optional ?category= value.
func parseCategory(v string) (models.Category, string) {
	if v == "" {
		return "", ""
	}
	c := models.Category(v)
	if !c.Valid() {
		return "", "Unknown category."
	}
	return c, ""
}

// parseLimit parses an optional ?limit= value. 0 means everything the log
// holds; values above the log capacity are clamped.
func parseLimit(v string, fallback int) (int, string) {
	if v == "" {
		return fallback, ""
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, "limit must be a non-negative integer"
	}
	if n > maxLogLimit {
		n = maxLogLimit
	}
	return n, ""
}
