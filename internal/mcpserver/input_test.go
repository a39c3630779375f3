package mcpserver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstoreYAML = `openapi: "3.0.3"
info:
  title: Pet Store
  version: "1.0"
paths:
  /pets/{id}:
    get:
      parameters:
        - name: id
          in: path
          examples:
            laurent: {value: 42}
      responses:
        "200":
          description: a pet
          content:
            application/json:
              examples:
                laurent:
                  value: {name: Zaza}
`

func TestSpecInputExactlyOne(t *testing.T) {
	_, err := specInput{}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file, url, or content")

	_, err = specInput{File: "a.yaml", Content: "x"}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file, url, or content")
}

func TestSpecInputContent(t *testing.T) {
	specCache.reset()

	spec, err := specInput{Content: petstoreYAML}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "Pet Store", spec.service.Name)
	require.Len(t, spec.service.Operations, 1)
	assert.Len(t, spec.exchanges["GET /pets/{id}"], 1)
	require.NotEmpty(t, spec.resources)
	assert.Equal(t, "PetStore-1.0.yaml", spec.resources[0].Name)
}

func TestSpecInputFile(t *testing.T) {
	specCache.reset()
	path := filepath.Join(t.TempDir(), "petstore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(petstoreYAML), 0o644))

	spec, err := specInput{File: path}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "Pet Store", spec.service.Name)
}

func TestSpecInputContentCached(t *testing.T) {
	specCache.reset()

	first, err := specInput{Content: petstoreYAML}.resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, specCache.size())

	second, err := specInput{Content: petstoreYAML}.resolve()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestSpecInputInlineSizeLimit(t *testing.T) {
	old := cfg.MaxInlineSize
	cfg.MaxInlineSize = 16
	defer func() { cfg.MaxInlineSize = old }()

	_, err := specInput{Content: strings.Repeat("x", 32)}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestMakeCacheKey(t *testing.T) {
	assert.Empty(t, makeCacheKey(specInput{}))
	assert.Empty(t, makeCacheKey(specInput{File: filepath.Join(t.TempDir(), "missing.yaml")}))

	key := makeCacheKey(specInput{Content: "a: b"})
	assert.True(t, strings.HasPrefix(key, "content:"))
	assert.Equal(t, key, makeCacheKey(specInput{Content: "a: b"}))
	assert.NotEqual(t, key, makeCacheKey(specInput{Content: "a: c"}))

	assert.Equal(t, "url:https://example.com/s.yaml",
		makeCacheKey(specInput{URL: "https://example.com/s.yaml"}))
}

func TestCacheEviction(t *testing.T) {
	specCache.reset()
	oldMax := specCache.maxSize
	specCache.maxSize = 2
	defer func() { specCache.maxSize = oldMax; specCache.reset() }()

	specCache.putWithTTL("a", &importedSpec{}, time.Minute)
	specCache.putWithTTL("b", &importedSpec{}, time.Minute)
	specCache.putWithTTL("c", &importedSpec{}, time.Minute)

	assert.Equal(t, 2, specCache.size())
	assert.Nil(t, specCache.get("a"))
	assert.NotNil(t, specCache.get("c"))
}

func TestCacheExpiry(t *testing.T) {
	specCache.reset()
	defer specCache.reset()

	specCache.putWithTTL("k", &importedSpec{}, -time.Second)
	assert.Nil(t, specCache.get("k"))
}
