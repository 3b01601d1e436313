package utils

import (
	"regexp"
	"strings"
)

var (
	wordSeparatorRe   = regexp.MustCompile(`[\s_/]+`)
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	multipleDashRe    = regexp.MustCompile(`-+`)
)

// Slugify derives the canonical URL slug for an article title.
// The result is deterministic: lowercase, separators collapsed to single
// dashes, everything else stripped. Slug uniqueness is enforced at the
// database level, not here.
//
//	"How To Train Your Dragon" → "how-to-train-your-dragon"
//	"Go 1.25 发布!"             → "go-125"
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonAlphanumericRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
