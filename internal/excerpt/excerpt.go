// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package excerpt derives the plain-text preview shown on content list cards
// from a page's HTML.
package excerpt

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// MaxLength is the maximum excerpt length in characters.
const MaxLength = 200

// strict strips every tag and drops the bodies of script/style elements.
var strict = bluemonday.StrictPolicy()

// FromHTML strips all markup from s, collapses whitespace runs to single
// spaces, and truncates the result to MaxLength characters.
func FromHTML(s string) string {
	if s == "" {
		return ""
	}
	text := html.UnescapeString(strict.Sanitize(s))
	return Truncate(strings.Join(strings.Fields(text), " "), MaxLength)
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
