package dispatcher

import (
	"slices"
	"strings"
)

// RuleNames splits a rule descriptor into the parameter names it lists.
// Both the " && " name separator and the " ?? " elements separator are
// treated as delimiters, so a URI_ELEMENTS descriptor yields part names and
// parameter names alike. Matching is exact: a name participates only when it
// appears as a whole token, never by substring.
func RuleNames(rules string) []string {
	var names []string
	for _, group := range strings.Split(rules, ElementsSeparator) {
		for _, name := range strings.Split(group, RulesSeparator) {
			name = strings.TrimSpace(name)
			if name != "" && !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	return names
}

// BuildFromPartsMap compiles the URI_PARTS criteria for one example: a
// "/name=value" segment for every rule-listed path part found in the map,
// with names sorted for determinism. Returns "" when no part values were
// correlated for the example.
func BuildFromPartsMap(rules string, parts map[string]string) string {
	return buildCriteria(rules, parts, "/")
}

// BuildFromParamsMap compiles the URI_PARAMS criteria for one example: a
// "?name=value" segment for every rule-listed query parameter found in the
// map, with names sorted for determinism. Returns "" when no parameter
// values were correlated for the example.
func BuildFromParamsMap(rules string, params map[string]string) string {
	return buildCriteria(rules, params, "?")
}

func buildCriteria(rules string, values map[string]string, prefix string) string {
	if len(values) == 0 {
		return ""
	}
	listed := RuleNames(rules)

	names := make([]string, 0, len(values))
	for name := range values {
		if slices.Contains(listed, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(prefix)
		sb.WriteString(name)
		sb.WriteString("=")
		sb.WriteString(values[name])
	}
	return sb.String()
}
