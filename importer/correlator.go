package importer

import (
	"github.com/mocksmith/mocksmith/domain"
)

// parametersByExample scans the declared parameters of a scope node (a path
// item or a verb node), keeps those whose location matches in, and groups
// their example values by example identifier. The result maps
// exampleID -> parameterName -> literal value.
func (imp *Importer) parametersByExample(scope any, in string) (map[string]map[string]string, error) {
	results := make(map[string]map[string]string)

	params, _ := child(scope, parametersNode).([]any)
	for _, p := range params {
		resolved, err := imp.followRef(p)
		if err != nil {
			return nil, err
		}
		param := asMap(resolved)
		if childString(param, "in") != in {
			continue
		}
		name := childString(param, "name")

		examples := asMap(param[examplesNode])
		for _, exampleName := range sortedKeys(examples) {
			value, ok, err := imp.exampleValue(examples[exampleName])
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			byName := results[exampleName]
			if byName == nil {
				byName = make(map[string]string)
				results[exampleName] = byName
			}
			byName[name] = value
		}
	}
	return results, nil
}

// mergeParametersByExample combines parameter fragments correlated at a
// broader scope (the path item) with fragments correlated at the verb
// scope. Merging is per example and per parameter name; verb-scope entries
// take precedence when both scopes correlate the same parameter under the
// same example identifier. A new mapping is returned; neither input is
// mutated.
func mergeParametersByExample(broader, verb map[string]map[string]string) map[string]map[string]string {
	merged := make(map[string]map[string]string, len(broader)+len(verb))
	for exampleName, byName := range broader {
		inner := make(map[string]string, len(byName))
		for name, value := range byName {
			inner[name] = value
		}
		merged[exampleName] = inner
	}
	for exampleName, byName := range verb {
		inner := merged[exampleName]
		if inner == nil {
			inner = make(map[string]string, len(byName))
			merged[exampleName] = inner
		}
		for name, value := range byName {
			inner[name] = value
		}
	}
	return merged
}

// requestBodiesByExample builds one Request per request-body example of a
// verb node, keyed by example identifier. Each request carries the resolved
// body value and a Content-Type header for the content type it was authored
// under. When the same identifier appears under two content types, the
// later one observed wins; a single example is expected to declare exactly
// one content type in well-formed documents.
func (imp *Importer) requestBodiesByExample(verb any) (map[string]domain.Request, error) {
	results := make(map[string]domain.Request)

	content := asMap(child(child(verb, requestBodyNode), contentNode))
	for _, contentType := range sortedKeys(content) {
		examples := asMap(child(content[contentType], examplesNode))
		for _, exampleName := range sortedKeys(examples) {
			value, ok, err := imp.exampleValue(examples[exampleName])
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}

			request := domain.Request{Name: exampleName, Content: value}
			request.AddHeader(domain.NewHeader("Content-Type", contentType))
			results[exampleName] = request
		}
	}
	return results, nil
}

// responseHeadersByExample groups the declared headers of a response node
// by example identifier. A header example value containing commas is split
// into a set of trimmed values: headers may be logically multi-valued even
// when authored as one CSV string. A $ref on the response node itself is
// followed before giving up.
func (imp *Importer) responseHeadersByExample(responseNode any) (map[string][]domain.Header, error) {
	m := asMap(responseNode)
	if _, ok := m[refNode]; ok {
		resolved, err := imp.followRef(responseNode)
		if err != nil {
			return nil, err
		}
		return imp.responseHeadersByExample(resolved)
	}

	results := make(map[string][]domain.Header)
	headers := asMap(m[headersNode])
	for _, headerName := range sortedKeys(headers) {
		examples := asMap(child(headers[headerName], examplesNode))
		for _, exampleName := range sortedKeys(examples) {
			value, ok, err := imp.exampleValue(examples[exampleName])
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			header := domain.Header{Name: headerName, Values: domain.SplitHeaderValues(value)}
			results[exampleName] = append(results[exampleName], header)
		}
	}
	return results, nil
}

// responseContent returns the content node of a response, following a $ref
// on the response node itself first.
func (imp *Importer) responseContent(responseNode any) (any, error) {
	resolved, err := imp.followRef(responseNode)
	if err != nil {
		return nil, err
	}
	return child(resolved, contentNode), nil
}
