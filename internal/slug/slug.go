// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives download file names from page titles.
package slug

import (
	"strings"
	"unicode"
)

// DefaultTitle is used when a page has no title.
const DefaultTitle = "My Website"

// Generate lowercases s and replaces every run of whitespace with a single
// hyphen. Other characters are kept as-is.
// Example: "Hello   World" → "hello-world"
func Generate(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// Filename returns the export file name for a page title.
// Example: "My Landing Page" → "my-landing-page.html"
func Filename(title string) string {
	if title == "" {
		title = DefaultTitle
	}
	return Generate(title) + ".html"
}
