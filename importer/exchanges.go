package importer

import (
	"strings"

	"github.com/mocksmith/mocksmith/dispatcher"
	"github.com/mocksmith/mocksmith/domain"
)

// Exchanges assembles the request/response pairs for one operation returned
// by [Importer.ServiceDefinition]. Pairs are correlated across parameters,
// request bodies and response examples by their author-chosen example name.
// As a side effect the operation's resource paths are completed with the
// concrete paths its examples resolve to.
func (imp *Importer) Exchanges(operation *domain.Operation) ([]domain.Exchange, error) {
	set := newExchangeSet()

	paths := asMap(child(imp.root, pathsNode))
	for _, pathName := range sortedKeys(paths) {
		pathValue, err := imp.followRef(paths[pathName])
		if err != nil {
			return nil, imp.fatal(pathsNode+"."+pathName, err)
		}
		pathItem := asMap(pathValue)
		if pathItem == nil {
			continue
		}

		// Parameter examples authored at the path level apply to every verb
		// underneath it.
		pathLevelParams, err := imp.parametersByExample(pathValue, paramInPath)
		if err != nil {
			return nil, imp.fatal(pathsNode+"."+pathName, err)
		}

		for _, verbName := range validVerbs {
			verb, ok := pathItem[verbName]
			if !ok {
				continue
			}
			if operation.Name != strings.ToUpper(verbName)+" "+strings.TrimSpace(pathName) {
				continue
			}
			if err := imp.assembleVerbExchanges(set, operation, verb, pathLevelParams); err != nil {
				return nil, imp.fatal(pathsNode+"."+pathName+"."+verbName, err)
			}
		}
	}
	return set.exchanges, nil
}

func (imp *Importer) assembleVerbExchanges(set *exchangeSet, op *domain.Operation, verb any, pathLevelParams map[string]map[string]string) error {
	verbPathParams, err := imp.parametersByExample(verb, paramInPath)
	if err != nil {
		return err
	}
	pathParams := mergeParametersByExample(pathLevelParams, verbPathParams)
	queryParams, err := imp.parametersByExample(verb, paramInQuery)
	if err != nil {
		return err
	}
	headerParams, err := imp.parametersByExample(verb, paramInHeader)
	if err != nil {
		return err
	}
	requests, err := imp.requestBodiesByExample(verb)
	if err != nil {
		return err
	}

	responses := asMap(child(verb, responsesNode))
	if len(responses) == 0 {
		return nil
	}

	// A FALLBACK envelope wraps the strategy that actually selects a
	// response; criteria are built against the inner one. A rules payload
	// that does not decode keeps the envelope as-is, which downstream mock
	// engines reject on their own terms.
	rootDispatcher, rootRules := op.Dispatcher, op.DispatcherRules
	if rootDispatcher == dispatcher.Fallback {
		spec, err := dispatcher.ParseFallbackSpecification(rootRules)
		if err != nil {
			imp.logger.Warn("malformed fallback dispatcher rules, keeping envelope",
				"operation", op.Name, "error", err)
		} else {
			rootDispatcher, rootRules = spec.Dispatcher, spec.DispatcherRules
		}
	}

	pattern := resourcePathPattern(op.Name)

	for _, status := range sortedKeys(responses) {
		responseNode := responses[status]
		headersByExample, err := imp.responseHeadersByExample(responseNode)
		if err != nil {
			return err
		}
		contentNode, err := imp.responseContent(responseNode)
		if err != nil {
			return err
		}
		contents := asMap(contentNode)

		for _, mediaType := range sortedKeys(contents) {
			examplesAny := child(contents[mediaType], examplesNode)
			if examplesAny, err = imp.followRef(examplesAny); err != nil {
				return err
			}
			examples := asMap(examplesAny)

			for _, exampleName := range sortedKeys(examples) {
				value, _, err := imp.exampleValue(examples[exampleName])
				if err != nil {
					return err
				}

				response := domain.Response{
					Name:      exampleName,
					MediaType: mediaType,
					Status:    status,
					Content:   value,
					Fault:     !strings.HasPrefix(status, "2"),
				}
				for _, h := range headersByExample[exampleName] {
					response.AddHeader(h)
				}

				request, ok := requests[exampleName]
				if ok {
					request = cloneRequest(request)
				} else {
					request = domain.Request{Name: exampleName}
				}
				request.AddHeader(domain.NewHeader("Accept", mediaType))

				parts := pathParams[exampleName]
				if len(parts) == 0 &&
					(rootDispatcher == dispatcher.URIParts || rootDispatcher == dispatcher.URIElements) {
					// Without concrete path values there is no URI this
					// example can answer on.
					imp.logger.Debug("example has no path parameter values, skipping",
						"operation", op.Name, "example", exampleName)
					continue
				}
				for _, name := range sortedKeys(parts) {
					request.AddQueryParameter(name, parts[name])
				}
				query := queryParams[exampleName]
				for _, name := range sortedKeys(query) {
					request.AddQueryParameter(name, query[name])
				}
				headers := headerParams[exampleName]
				for _, name := range sortedKeys(headers) {
					request.AddHeader(domain.NewHeader(name, domain.SplitHeaderValues(headers[name])...))
				}

				switch rootDispatcher {
				case dispatcher.URIParams:
					response.DispatchCriteria = dispatcher.BuildFromParamsMap(rootRules, query)
					op.AddResourcePath(pattern)
				case dispatcher.URIParts:
					response.DispatchCriteria = dispatcher.BuildFromPartsMap(rootRules, parts)
					op.AddResourcePath(dispatcher.BuildURIFromPattern(pattern, parts))
				case dispatcher.URIElements:
					response.DispatchCriteria = dispatcher.BuildFromPartsMap(rootRules, parts) +
						dispatcher.BuildFromParamsMap(rootRules, query)
					op.AddResourcePath(dispatcher.BuildURIFromPattern(pattern, parts))
				}

				set.add(domain.Exchange{Request: request, Response: response})
			}
		}
	}
	return nil
}

// resourcePathPattern strips the "VERB " prefix off an operation name,
// leaving the URI template the operation was declared under.
func resourcePathPattern(operationName string) string {
	if i := strings.Index(operationName, " "); i >= 0 {
		return operationName[i+1:]
	}
	return operationName
}

// exchangeSet collects exchanges in first-seen order, replacing an earlier
// entry when a later one carries the same example name and an identical
// request. Two examples that share a name but differ in headers or query
// parameters stay distinct.
type exchangeSet struct {
	index     map[string]int
	exchanges []domain.Exchange
}

func newExchangeSet() *exchangeSet {
	return &exchangeSet{index: make(map[string]int)}
}

func (s *exchangeSet) add(ex domain.Exchange) {
	key := requestIdentity(ex.Request)
	if i, ok := s.index[key]; ok {
		s.exchanges[i] = ex
		return
	}
	s.index[key] = len(s.exchanges)
	s.exchanges = append(s.exchanges, ex)
}

func requestIdentity(r domain.Request) string {
	var b strings.Builder
	b.WriteString(r.Name)
	for _, h := range r.Headers {
		b.WriteString("\nh:")
		b.WriteString(h.Name)
		b.WriteByte('=')
		b.WriteString(strings.Join(h.Values, ","))
	}
	for _, p := range r.QueryParameters {
		b.WriteString("\nq:")
		b.WriteString(p.Name)
		b.WriteByte('=')
		b.WriteString(p.Value)
	}
	return b.String()
}

// cloneRequest deep-copies a request so each exchange can decorate its own
// headers and query parameters without bleeding into siblings sharing the
// same body example.
func cloneRequest(r domain.Request) domain.Request {
	clone := r
	clone.Headers = make([]domain.Header, len(r.Headers))
	for i, h := range r.Headers {
		clone.Headers[i] = domain.Header{Name: h.Name, Values: append([]string(nil), h.Values...)}
	}
	clone.QueryParameters = append([]domain.Parameter(nil), r.QueryParameters...)
	return clone
}
