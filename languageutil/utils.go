package languageutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var LowerCaser = cases.Lower(language.Und)
var UpperCaser = cases.Upper(language.Und)

// NormalizeTags lowercases and trims tags, dropping empty and repeated ones.
// First occurrence wins.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = LowerCaser.String(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		normalized = append(normalized, tag)
	}
	return normalized
}

func NormalizeClothingType(value string) string {
	return UpperCaser.String(strings.TrimSpace(value))
}
