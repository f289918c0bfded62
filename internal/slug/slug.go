// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives identifier-safe slugs from idea names. Slugs end up
// inside generated JavaScript string literals and object storage keys, so
// the output alphabet is restricted to [a-z0-9-].
package slug

import (
	"regexp"
	"strings"
)

// MaxLength caps the slug length.
const MaxLength = 60

var (
	// separators are turned into hyphens before filtering.
	separators = regexp.MustCompile(`[\s_/]+`)
	// disallowed matches anything outside the output alphabet.
	disallowed = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a slug from s.
// Example: "Base64 Encoder/Decoder" → "base64-encoder-decoder"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = separators.ReplaceAllString(result, "-")
	result = disallowed.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > MaxLength {
		result = strings.TrimRight(result[:MaxLength], "-")
	}
	return result
}
