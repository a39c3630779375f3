package importer

import (
	"strings"

	"github.com/mocksmith/mocksmith/dispatcher"
	"github.com/mocksmith/mocksmith/domain"
)

// extractOperations discovers one operation per path/verb pair and fixes
// its dispatch strategy. The strategy is chosen exactly once here and never
// changes while exchanges are extracted for the operation.
func (imp *Importer) extractOperations() ([]*domain.Operation, error) {
	var results []*domain.Operation

	paths := asMap(child(imp.root, pathsNode))
	for _, pathName := range sortedKeys(paths) {
		pathValue, err := imp.followRef(paths[pathName])
		if err != nil {
			return nil, imp.fatal(pathsNode+"."+pathName, err)
		}
		pathItem := asMap(pathValue)

		for _, verbName := range validVerbs {
			verbValue, ok := pathItem[verbName]
			if !ok {
				continue
			}

			op := &domain.Operation{
				Name:   strings.ToUpper(verbName) + " " + strings.TrimSpace(pathName),
				Method: strings.ToUpper(verbName),
			}

			if ext, ok := asMap(verbValue)[operationExtension]; ok {
				completeOperationProperties(op, ext)
			}

			if op.Dispatcher == "" {
				if err := imp.selectDispatchStyle(op, pathName, verbValue); err != nil {
					return nil, imp.fatal(pathsNode+"."+pathName+"."+verbName, err)
				}
			} else {
				// Dispatcher forced via metadata: still register the generic
				// (possibly templated) path so the router can match the
				// operation at all.
				op.AddResourcePath(pathName)
				imp.logger.Debug("dispatcher forced via metadata",
					"operation", op.Name, "dispatcher", op.Dispatcher)
			}

			results = append(results, op)
		}
	}
	return results, nil
}

// selectDispatchStyle picks the dispatch strategy for an operation from its
// declared query parameters and the shape of its URL template.
func (imp *Importer) selectDispatchStyle(op *domain.Operation, pathName string, verb any) error {
	hasQuery, err := imp.operationHasParameters(verb, paramInQuery)
	if err != nil {
		return err
	}
	hasParts := dispatcher.HasParts(pathName)

	switch {
	case hasQuery && hasParts:
		params, err := imp.operationQueryParams(verb)
		if err != nil {
			return err
		}
		op.Dispatcher = dispatcher.URIElements
		op.DispatcherRules = dispatcher.ExtractPartsFromURIPattern(pathName) +
			dispatcher.ElementsSeparator + params

	case hasQuery:
		params, err := imp.operationQueryParams(verb)
		if err != nil {
			return err
		}
		op.Dispatcher = dispatcher.URIParams
		op.DispatcherRules = params

	case hasParts:
		op.Dispatcher = dispatcher.URIParts
		op.DispatcherRules = dispatcher.ExtractPartsFromURIPattern(pathName)

	default:
		// No parameters at all: no dispatcher, and the literal template is
		// the sole resource path.
		op.AddResourcePath(pathName)
	}
	return nil
}

// operationHasParameters reports whether the verb node declares at least
// one parameter with the given location, following references on each
// declared parameter.
func (imp *Importer) operationHasParameters(verb any, in string) (bool, error) {
	params, _ := child(verb, parametersNode).([]any)
	for _, p := range params {
		resolved, err := imp.followRef(p)
		if err != nil {
			return false, err
		}
		if childString(asMap(resolved), "in") == in {
			return true, nil
		}
	}
	return false, nil
}

// operationQueryParams builds the rule descriptor listing the operation's
// declared query parameter names in declaration order, joined by the rules
// separator.
func (imp *Importer) operationQueryParams(verb any) (string, error) {
	var names []string

	params, _ := child(verb, parametersNode).([]any)
	for _, p := range params {
		resolved, err := imp.followRef(p)
		if err != nil {
			return "", err
		}
		param := asMap(resolved)
		if childString(param, "in") != paramInQuery {
			continue
		}
		if name := childString(param, "name"); name != "" {
			names = append(names, name)
		}
	}
	return strings.Join(names, dispatcher.RulesSeparator), nil
}
