package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mocksmith/mocksmith/domain"
	"github.com/mocksmith/mocksmith/mockerrors"
)

func newTestImporter(t *testing.T, doc string) *Importer {
	t.Helper()
	imp, err := New(WithBytes([]byte(doc)), WithSourceName("inline.yaml"))
	require.NoError(t, err)
	return imp
}

func TestNewRequiresInputSource(t *testing.T) {
	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input source")
}

func TestNewRejectsMultipleSources(t *testing.T) {
	_, err := New(WithBytes([]byte("a: b")), WithReader(strings.NewReader("a: b")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only one input source")
}

func TestNewRejectsEmptyBytes(t *testing.T) {
	_, err := New(WithBytes(nil))
	require.Error(t, err)
}

func TestNewUnparsableDocument(t *testing.T) {
	_, err := New(WithBytes([]byte("{unclosed")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, mockerrors.ErrImport))

	var impErr *mockerrors.ImportError
	require.True(t, errors.As(err, &impErr))
	assert.Equal(t, "bytes", impErr.Source)
}

func TestNewEmptyDocument(t *testing.T) {
	_, err := New(WithReader(strings.NewReader("# just a comment\n")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, mockerrors.ErrImport))
}

func TestNewFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "svc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openapi: 3.0.3\ninfo:\n  title: T\n  version: '1'\n"), 0o644))

	imp, err := New(WithFilePath(path))
	require.NoError(t, err)
	assert.Equal(t, SourceFormatYAML, imp.SourceFormat())

	_, err = New(WithFilePath(filepath.Join(dir, "missing.yaml")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, mockerrors.ErrImport))
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name   string
		source string
		data   string
		want   SourceFormat
	}{
		{"json extension", "spec.json", "openapi: 3.0.3", SourceFormatJSON},
		{"yaml extension", "spec.yaml", `{"openapi":"3.0.3"}`, SourceFormatYAML},
		{"yml extension", "spec.yml", "openapi: 3.0.3", SourceFormatYAML},
		{"sniffed json", "reader", `  {"openapi":"3.0.3"}`, SourceFormatJSON},
		{"sniffed yaml", "reader", "openapi: 3.0.3", SourceFormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, detectFormat(tt.source, []byte(tt.data)))
		})
	}
}

func TestServiceDefinitionIdentity(t *testing.T) {
	imp := newTestImporter(t, `
openapi: 3.0.3
info:
  title: Petstore API
  version: 1.0.0
paths: {}
`)
	svc, err := imp.ServiceDefinition()
	require.NoError(t, err)
	assert.Equal(t, "Petstore API", svc.Name)
	assert.Equal(t, "1.0.0", svc.Version)
	assert.Equal(t, domain.ServiceTypeRest, svc.Type)
	assert.Nil(t, svc.Metadata)
	assert.Empty(t, svc.Operations)
}

func TestServiceDefinitionMetadata(t *testing.T) {
	imp := newTestImporter(t, `
openapi: 3.0.3
info:
  title: Petstore API
  version: 1.0.0
  x-mocksmith:
    labels:
      domain: pets
      status: beta
    annotations:
      owner: platform-team
paths: {}
`)
	svc, err := imp.ServiceDefinition()
	require.NoError(t, err)
	require.NotNil(t, svc.Metadata)
	assert.Equal(t, map[string]string{"domain": "pets", "status": "beta"}, svc.Metadata.Labels)
	assert.Equal(t, map[string]string{"owner": "platform-team"}, svc.Metadata.Annotations)
}

func TestResourceDefinitions(t *testing.T) {
	doc := `
openapi: 3.0.3
info:
  title: order service api
  version: 2.1.0
paths: {}
`
	imp := newTestImporter(t, doc)
	svc, err := imp.ServiceDefinition()
	require.NoError(t, err)

	resources := imp.ResourceDefinitions(svc)
	require.Len(t, resources, 1)
	assert.Equal(t, "OrderServiceApi-2.1.0.yaml", resources[0].Name)
	assert.Equal(t, domain.ResourceTypeOpenAPISpec, resources[0].Type)
	assert.Equal(t, []byte(doc), resources[0].Content)
}

func TestCircularParameterRefFailsImport(t *testing.T) {
	const doc = `
openapi: "3.0.3"
info: {title: Loop API, version: "1.0"}
paths:
  /pets/{id}:
    get:
      parameters:
        - $ref: "#/components/parameters/A"
      responses:
        "200": {description: ok}
components:
  parameters:
    A:
      $ref: "#/components/parameters/B"
    B:
      $ref: "#/components/parameters/A"
`
	imp := newTestImporter(t, doc)

	_, err := imp.ServiceDefinition()
	require.Error(t, err)
	assert.True(t, errors.Is(err, mockerrors.ErrImport))
	assert.True(t, errors.Is(err, mockerrors.ErrCircularReference))

	var refErr *mockerrors.ReferenceError
	require.True(t, errors.As(err, &refErr))
	assert.True(t, refErr.IsCircular)
}

func TestImportFixtureWithExternalRefs(t *testing.T) {
	imp, err := New(WithFilePath(filepath.Join("testdata", "petstore.yaml")))
	require.NoError(t, err)

	svc, err := imp.ServiceDefinition()
	require.NoError(t, err)
	assert.Equal(t, "Petstore API", svc.Name)
	assert.Equal(t, "1.1.0", svc.Version)
	require.Len(t, svc.Operations, 1)

	op := svc.Operations[0]
	assert.Equal(t, "GET /pets/{id}", op.Name)
	assert.Equal(t, "URI_PARTS", op.Dispatcher)
	assert.Equal(t, "id", op.DispatcherRules)

	exchanges, err := imp.Exchanges(op)
	require.NoError(t, err)
	require.Len(t, exchanges, 2)
	// The laurent value sits behind a two-hop chain: a ref into common.yaml
	// whose example is a document-local ref within common.yaml itself.
	assert.Equal(t, "/id=42", exchanges[0].Response.DispatchCriteria)
	assert.JSONEq(t, `{"id":42,"name":"Zaza"}`, exchanges[0].Response.Content)
	assert.Equal(t, "/id=999", exchanges[1].Response.DispatchCriteria)
	assert.True(t, exchanges[1].Response.Fault)
	assert.Equal(t, []string{"/pets/42", "/pets/999"}, op.ResourcePaths)

	// The externally referenced document rides along as a resource.
	resources := imp.ResourceDefinitions(svc)
	require.Len(t, resources, 2)
	assert.Equal(t, "PetstoreAPI-1.1.0.yaml", resources[0].Name)
	assert.Equal(t, domain.ResourceTypeOpenAPISpec, resources[0].Type)
	assert.Equal(t, "common.yaml", resources[1].Name)
	assert.Equal(t, domain.ResourceTypeReference, resources[1].Type)
}

func TestResourceDefinitionsJSONExtension(t *testing.T) {
	imp, err := New(
		WithBytes([]byte(`{"openapi":"3.0.3","info":{"title":"T","version":"1"}}`)),
		WithSourceName("spec.json"),
	)
	require.NoError(t, err)
	svc, err := imp.ServiceDefinition()
	require.NoError(t, err)

	resources := imp.ResourceDefinitions(svc)
	require.Len(t, resources, 1)
	assert.Equal(t, "T-1.json", resources[0].Name)
}
