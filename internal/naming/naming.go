// Package naming derives safe, stable artifact names from free-form service
// titles and versions.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// titleCaser uses golang.org/x/text/cases for proper Unicode title casing
// (strings.Title is deprecated).
var titleCaser = cases.Title(language.English)

// SanitizeName turns a free-form service title into a name usable inside a
// resource or file name: diacritics folded away, words title-cased and run
// together, anything outside [A-Za-z0-9._-] dropped.
// Example: "Petstore  API" -> "PetstoreAPI", "Café ordering" -> "CafeOrdering".
func SanitizeName(title string) string {
	// Decompose so that combining marks can be stripped.
	decomposed := norm.NFKD.String(title)

	var cleaned strings.Builder
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// Drop combining marks left over from decomposition.
		case r == ' ' || r == '\t':
			cleaned.WriteRune(' ')
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			cleaned.WriteRune(r)
		}
	}

	words := strings.Fields(cleaned.String())
	for i, w := range words {
		// Already-cased words (API, OpenAPI) and words carrying digits or
		// punctuation (orders.v2) are kept as authored.
		if isLowerAlpha(w) {
			words[i] = titleCaser.String(w)
		}
	}
	return strings.Join(words, "")
}

func isLowerAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return s != ""
}

// ResourceName builds the export name of the primary specification blob:
// "<sanitized-name>-<version>.<ext>".
func ResourceName(title, version, ext string) string {
	name := SanitizeName(title)
	if name == "" {
		name = "service"
	}
	if version != "" {
		name += "-" + version
	}
	return name + "." + ext
}
