package dispatcher

import "strings"

// HasParts reports whether a URL template contains a variable path segment,
// in either the "/{id}" or the "/:id" notation.
func HasParts(pattern string) bool {
	return strings.Contains(pattern, "/{") || strings.Contains(pattern, "/:")
}

// ExtractPartsFromURIPattern derives the URI_PARTS rule descriptor from a URL
// template: the variable segment names in template order, joined with
// " && ". Any query string on the template is ignored.
func ExtractPartsFromURIPattern(pattern string) string {
	if idx := strings.Index(pattern, "?"); idx != -1 {
		pattern = pattern[:idx]
	}

	var names []string
	for _, segment := range strings.Split(pattern, "/") {
		switch {
		case strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}"):
			names = append(names, segment[1:len(segment)-1])
		case strings.HasPrefix(segment, ":"):
			names = append(names, segment[1:])
		}
	}
	return strings.Join(names, RulesSeparator)
}

// BuildURIFromPattern substitutes every variable segment of a URL template
// with the example value correlated for it, yielding a concrete literal path
// for exact-match routing. Segments without a correlated value are left as
// authored.
func BuildURIFromPattern(pattern string, parts map[string]string) string {
	for name, value := range parts {
		pattern = strings.ReplaceAll(pattern, "{"+name+"}", value)
		pattern = strings.ReplaceAll(pattern, ":"+name, value)
	}
	return pattern
}
