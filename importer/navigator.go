package importer

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mocksmith/mocksmith/mockerrors"
)

// followRef returns node unchanged unless it is a reference marker, in which
// case the reference chain is followed transitively until a non-reference
// node is reached. A chain that revisits a reference or exceeds the
// configured depth is a fatal condition: routing correctness cannot be
// guaranteed on an unresolved node, so there is no partial-result policy.
func (imp *Importer) followRef(node any) (any, error) {
	var seen map[string]bool
	depth := 0

	for {
		m, ok := node.(map[string]any)
		if !ok {
			return node, nil
		}
		ref, ok := m[refNode].(string)
		if !ok {
			return node, nil
		}

		if seen == nil {
			seen = make(map[string]bool)
		}
		if seen[ref] {
			return nil, &mockerrors.ReferenceError{Ref: ref, IsCircular: true}
		}
		if depth >= imp.maxRefDepth {
			return nil, &mockerrors.ResourceLimitError{
				ResourceType: "ref_depth",
				Limit:        int64(imp.maxRefDepth),
				Actual:       int64(depth),
				Message:      "reference chain too deep",
			}
		}
		seen[ref] = true

		resolved, err := imp.resolver.Resolve(imp.root, ref)
		if err != nil {
			return nil, err
		}
		node = resolved
		depth++
	}
}

// exampleValue resolves the value of an example node to its string form.
// The value can be a direct "value" field, or reached through a $ref on
// the example itself; a $ref on the value node is followed too. The second
// return is false when the example carries no value at all.
func (imp *Importer) exampleValue(example any) (string, bool, error) {
	m := asMap(example)
	if m == nil {
		return "", false, nil
	}

	if v, ok := m[valueNode]; ok {
		resolved, err := imp.followRef(v)
		if err != nil {
			return "", false, err
		}
		return valueString(resolved), true, nil
	}

	if _, ok := m[refNode]; ok {
		resolved, err := imp.followRef(example)
		if err != nil {
			return "", false, err
		}
		return imp.exampleValue(resolved)
	}

	return "", false, nil
}

// valueString renders an example value the way it should appear in a mock:
// strings as-is, everything else as compact JSON (map keys sorted by the
// encoder, so rendering is deterministic).
func valueString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(data)
	}
}

// asMap returns node as a mapping, or nil when it is not one.
func asMap(node any) map[string]any {
	m, _ := node.(map[string]any)
	return m
}

// child returns the named child of a mapping node, or nil.
func child(node any, key string) any {
	return asMap(node)[key]
}

// childString returns the named child as a string, or "".
func childString(node any, key string) string {
	s, _ := child(node, key).(string)
	return s
}

// sortedKeys returns the keys of a mapping in sorted order. Go map
// iteration is randomized; every traversal of the document goes through
// this so repeated imports produce identical output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
