package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mocksmith/mocksmith/dispatcher"
	"github.com/mocksmith/mocksmith/domain"
)

func serviceOperations(t *testing.T, doc string) []*domain.Operation {
	t.Helper()
	svc, err := newTestImporter(t, doc).ServiceDefinition()
	require.NoError(t, err)
	return svc.Operations
}

func TestOperationWithoutParameters(t *testing.T) {
	ops := serviceOperations(t, `
openapi: 3.0.3
info: {title: T, version: "1"}
paths:
  /health:
    get:
      responses:
        "200": {description: OK}
`)
	require.Len(t, ops, 1)
	op := ops[0]
	assert.Equal(t, "GET /health", op.Name)
	assert.Equal(t, "GET", op.Method)
	assert.Empty(t, op.Dispatcher)
	assert.Empty(t, op.DispatcherRules)
	assert.Equal(t, []string{"/health"}, op.ResourcePaths)
}

func TestOperationQueryParamsOnly(t *testing.T) {
	ops := serviceOperations(t, `
openapi: 3.0.3
info: {title: T, version: "1"}
paths:
  /pets:
    get:
      parameters:
        - {name: status, in: query}
        - {name: limit, in: query}
        - {name: X-Trace, in: header}
      responses:
        "200": {description: OK}
`)
	require.Len(t, ops, 1)
	assert.Equal(t, dispatcher.URIParams, ops[0].Dispatcher)
	assert.Equal(t, "status && limit", ops[0].DispatcherRules)
	assert.Empty(t, ops[0].ResourcePaths)
}

func TestOperationPathPartsOnly(t *testing.T) {
	ops := serviceOperations(t, `
openapi: 3.0.3
info: {title: T, version: "1"}
paths:
  /owners/{owner}/pets/{id}:
    get:
      parameters:
        - {name: owner, in: path}
        - {name: id, in: path}
      responses:
        "200": {description: OK}
`)
	require.Len(t, ops, 1)
	assert.Equal(t, dispatcher.URIParts, ops[0].Dispatcher)
	assert.Equal(t, "owner && id", ops[0].DispatcherRules)
}

func TestOperationPartsAndQuery(t *testing.T) {
	ops := serviceOperations(t, `
openapi: 3.0.3
info: {title: T, version: "1"}
paths:
  /pets/{id}:
    get:
      parameters:
        - {name: id, in: path}
        - {name: verbose, in: query}
      responses:
        "200": {description: OK}
`)
	require.Len(t, ops, 1)
	assert.Equal(t, dispatcher.URIElements, ops[0].Dispatcher)
	assert.Equal(t, "id ?? verbose", ops[0].DispatcherRules)
}

func TestOperationVerbOrderIsCanonical(t *testing.T) {
	ops := serviceOperations(t, `
openapi: 3.0.3
info: {title: T, version: "1"}
paths:
  /pets:
    delete:
      responses: {"204": {description: gone}}
    post:
      responses: {"201": {description: created}}
    get:
      responses: {"200": {description: OK}}
`)
	require.Len(t, ops, 3)
	assert.Equal(t, "GET /pets", ops[0].Name)
	assert.Equal(t, "POST /pets", ops[1].Name)
	assert.Equal(t, "DELETE /pets", ops[2].Name)
}

func TestOperationForcedDispatcher(t *testing.T) {
	ops := serviceOperations(t, `
openapi: 3.0.3
info: {title: T, version: "1"}
paths:
  /orders/{id}:
    get:
      x-mocksmith-operation:
        dispatcher: SCRIPT
        dispatcherRules: "return request.headers['region'];"
        delay: 150
      parameters:
        - {name: id, in: path}
      responses:
        "200": {description: OK}
`)
	require.Len(t, ops, 1)
	op := ops[0]
	assert.Equal(t, "SCRIPT", op.Dispatcher)
	assert.Equal(t, "return request.headers['region'];", op.DispatcherRules)
	assert.Equal(t, int64(150), op.DefaultDelay)
	// The templated path is still registered so the operation stays routable.
	assert.Equal(t, []string{"/orders/{id}"}, op.ResourcePaths)
}

func TestOperationParameterRefResolution(t *testing.T) {
	ops := serviceOperations(t, `
openapi: 3.0.3
info: {title: T, version: "1"}
paths:
  /pets:
    get:
      parameters:
        - $ref: "#/components/parameters/StatusParam"
      responses:
        "200": {description: OK}
components:
  parameters:
    StatusParam: {name: status, in: query}
`)
	require.Len(t, ops, 1)
	assert.Equal(t, dispatcher.URIParams, ops[0].Dispatcher)
	assert.Equal(t, "status", ops[0].DispatcherRules)
}

func TestOperationPathsAreSorted(t *testing.T) {
	ops := serviceOperations(t, `
openapi: 3.0.3
info: {title: T, version: "1"}
paths:
  /zebras:
    get:
      responses: {"200": {description: OK}}
  /ants:
    get:
      responses: {"200": {description: OK}}
`)
	require.Len(t, ops, 2)
	assert.Equal(t, "GET /ants", ops[0].Name)
	assert.Equal(t, "GET /zebras", ops[1].Name)
}
