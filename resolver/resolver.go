// Package resolver resolves $ref pointers against local or externally
// fetched documents, and keeps every externally fetched document available
// as an exportable resource blob.
//
// A [Resolver] is not safe for concurrent use: its document cache is
// unsynchronized. Callers extracting operations concurrently must either
// share a resolver behind their own synchronization or use one resolver per
// goroutine.
package resolver

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/mocksmith/mocksmith/domain"
	"github.com/mocksmith/mocksmith/mockerrors"
)

const (
	// MaxCachedDocuments is the maximum number of external documents to cache.
	// This prevents memory exhaustion from documents with many external references.
	MaxCachedDocuments = 100

	// MaxFileSize is the maximum size (in bytes) allowed for external reference
	// documents, preventing resource exhaustion from arbitrarily large files.
	MaxFileSize = 10 * 1024 * 1024 // 10MB
)

// HTTPFetcher is a function type for fetching content from HTTP/HTTPS URLs.
// Returns the response body, content-type header, and any error.
type HTTPFetcher func(url string) ([]byte, string, error)

// Resolver resolves $ref references in API description documents.
// External documents are fetched at most once and then served from an
// internal cache; their raw bytes are retained for export.
type Resolver struct {
	// visited tracks refs in the current resolution stack to detect cycles
	visited map[string]bool
	// documents caches parsed external documents by file path or URL
	documents map[string]map[string]any
	// external accumulates every fetched document as an exportable blob,
	// in fetch order
	external []domain.Resource
	// baseDir is the base directory for resolving relative file paths
	baseDir string
	// baseURL, when set, resolves relative refs against an HTTP base
	baseURL string
	// httpFetch fetches HTTP/HTTPS refs; nil disables them
	httpFetch HTTPFetcher
}

// New creates a resolver for local and file-based refs, confined to baseDir.
func New(baseDir string) *Resolver {
	return &Resolver{
		visited:   make(map[string]bool),
		documents: make(map[string]map[string]any),
		baseDir:   baseDir,
	}
}

// NewWithHTTP creates a resolver that additionally follows HTTP/HTTPS refs.
// Relative refs are resolved against baseURL when it is non-empty.
func NewWithHTTP(baseDir, baseURL string, fetcher HTTPFetcher) *Resolver {
	r := New(baseDir)
	r.baseURL = baseURL
	r.httpFetch = fetcher
	return r
}

// Resolve resolves a $ref string (local, file, or HTTP) against doc.
func (r *Resolver) Resolve(doc map[string]any, ref string) (any, error) {
	if strings.HasPrefix(ref, "#") {
		return r.resolveLocal(doc, ref)
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		if r.httpFetch == nil {
			return nil, &mockerrors.ReferenceError{
				Ref:     ref,
				RefType: "http",
				Message: "HTTP references require an HTTP fetcher to be configured",
			}
		}
		return r.resolveHTTP(ref)
	}

	if r.baseURL != "" {
		resolved, err := r.resolveRelativeURL(ref)
		if err != nil {
			return nil, &mockerrors.ReferenceError{Ref: ref, RefType: "http", Cause: err}
		}
		return r.resolveHTTP(resolved)
	}

	return r.resolveExternal(ref)
}

// ExternalResources returns every externally fetched document as a
// name + bytes blob, in the order the documents were first fetched. The
// returned slice is shared; callers must not mutate it.
func (r *Resolver) ExternalResources() []domain.Resource {
	return r.external
}

// resolveLocal resolves a "#/path/to/component" JSON Pointer within doc.
func (r *Resolver) resolveLocal(doc map[string]any, ref string) (any, error) {
	if r.visited[ref] {
		return nil, &mockerrors.ReferenceError{Ref: ref, RefType: "local", IsCircular: true}
	}
	r.visited[ref] = true
	defer func(rf string) { delete(r.visited, rf) }(ref)

	pointer := strings.TrimPrefix(ref, "#")
	if pointer == "" || pointer == "/" {
		return doc, nil
	}

	parts := strings.Split(strings.TrimPrefix(pointer, "/"), "/")

	current := any(doc)
	for i, part := range parts {
		part = unescapeJSONPointer(part)

		switch v := current.(type) {
		case map[string]any:
			next, ok := v[part]
			if !ok {
				return nil, &mockerrors.ReferenceError{
					Ref:     ref,
					RefType: "local",
					Message: fmt.Sprintf("missing key %q at #/%s", part, strings.Join(parts[:i+1], "/")),
				}
			}
			current = next

		case []any:
			// Array indexing per RFC 6901 (JSON Pointer).
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(v) {
				return nil, &mockerrors.ReferenceError{
					Ref:     ref,
					RefType: "local",
					Message: fmt.Sprintf("invalid array index %q at #/%s", part, strings.Join(parts[:i+1], "/")),
				}
			}
			current = v[index]

		default:
			return nil, &mockerrors.ReferenceError{
				Ref:     ref,
				RefType: "local",
				Message: fmt.Sprintf("cannot traverse into %T at #/%s", v, strings.Join(parts[:i], "/")),
			}
		}
	}

	return current, nil
}

// resolveExternal resolves a "./file.yaml#/path" or "file.yaml#/path" ref.
func (r *Resolver) resolveExternal(ref string) (any, error) {
	if r.visited[ref] {
		return nil, &mockerrors.ReferenceError{Ref: ref, RefType: "file", IsCircular: true}
	}
	r.visited[ref] = true
	defer func(rf string) { delete(r.visited, rf) }(ref)

	refPath, internalPath := splitFragment(ref)

	filePath := refPath
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Clean(filepath.Join(r.baseDir, filePath))
	}

	// Confine external refs to the base directory.
	absBase, err := filepath.Abs(r.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file path: %w", err)
	}
	relPath, err := filepath.Rel(absBase, absPath)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return nil, &mockerrors.ReferenceError{Ref: ref, RefType: "file", IsPathTraversal: true}
	}

	doc, ok := r.documents[filePath]
	if !ok {
		if len(r.documents) >= MaxCachedDocuments {
			return nil, &mockerrors.ResourceLimitError{
				ResourceType: "cached_documents",
				Limit:        MaxCachedDocuments,
				Actual:       int64(len(r.documents)),
				Message:      "too many external references",
			}
		}

		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, &mockerrors.ReferenceError{Ref: ref, RefType: "file", Cause: err}
		}
		if int64(len(data)) > MaxFileSize {
			return nil, &mockerrors.ResourceLimitError{
				ResourceType: "file_size",
				Limit:        MaxFileSize,
				Actual:       int64(len(data)),
				Message:      filePath,
			}
		}

		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &mockerrors.ReferenceError{
				Ref:     ref,
				RefType: "file",
				Message: "failed to parse external document",
				Cause:   err,
			}
		}
		qualifyLocalRefs(doc, refPath)

		r.documents[filePath] = doc
		r.external = append(r.external, domain.Resource{
			Name:    filepath.Base(filePath),
			Type:    domain.ResourceTypeReference,
			Content: data,
		})
	}

	if internalPath == "" {
		return doc, nil
	}
	return r.resolveLocal(doc, "#"+internalPath)
}

// resolveHTTP resolves a fully qualified HTTP/HTTPS ref.
func (r *Resolver) resolveHTTP(ref string) (any, error) {
	if r.visited[ref] {
		return nil, &mockerrors.ReferenceError{Ref: ref, RefType: "http", IsCircular: true}
	}
	r.visited[ref] = true
	defer func(rf string) { delete(r.visited, rf) }(ref)

	urlStr, internalPath := splitFragment(ref)

	doc, ok := r.documents[urlStr]
	if !ok {
		if len(r.documents) >= MaxCachedDocuments {
			return nil, &mockerrors.ResourceLimitError{
				ResourceType: "cached_documents",
				Limit:        MaxCachedDocuments,
				Actual:       int64(len(r.documents)),
				Message:      "too many external references",
			}
		}

		data, _, err := r.httpFetch(urlStr)
		if err != nil {
			return nil, &mockerrors.ReferenceError{Ref: ref, RefType: "http", Cause: err}
		}
		if int64(len(data)) > MaxFileSize {
			return nil, &mockerrors.ResourceLimitError{
				ResourceType: "file_size",
				Limit:        MaxFileSize,
				Actual:       int64(len(data)),
				Message:      urlStr,
			}
		}

		// The YAML parser handles both YAML and JSON payloads.
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &mockerrors.ReferenceError{
				Ref:     ref,
				RefType: "http",
				Message: "failed to parse fetched document",
				Cause:   err,
			}
		}
		qualifyLocalRefs(doc, urlStr)

		r.documents[urlStr] = doc
		r.external = append(r.external, domain.Resource{
			Name:    resourceNameFromURL(urlStr),
			Type:    domain.ResourceTypeReference,
			Content: data,
		})
	}

	if internalPath == "" {
		return doc, nil
	}
	return r.resolveLocal(doc, "#"+internalPath)
}

// resolveRelativeURL resolves a relative reference against the baseURL.
func (r *Resolver) resolveRelativeURL(ref string) (string, error) {
	relPath, fragment := splitFragment(ref)
	if fragment != "" {
		fragment = "#" + fragment
	}

	base, err := url.Parse(r.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	base.Path = path.Join(path.Dir(base.Path), relPath)

	return base.String() + fragment, nil
}

// qualifyLocalRefs rewrites every document-local "#/..." ref inside a
// fetched document to name the document it lives in. Subtrees of fetched
// documents are handed to callers that later resolve refs without knowing
// which document a node came from; an unqualified local pointer would then
// be looked up in the wrong document.
func qualifyLocalRefs(node any, docRef string) {
	switch v := node.(type) {
	case map[string]any:
		if ref, ok := v["$ref"].(string); ok && strings.HasPrefix(ref, "#") {
			v["$ref"] = docRef + ref
		}
		for _, item := range v {
			qualifyLocalRefs(item, docRef)
		}
	case []any:
		for _, item := range v {
			qualifyLocalRefs(item, docRef)
		}
	}
}

// splitFragment splits "target#/pointer" into target and pointer parts.
func splitFragment(ref string) (target, fragment string) {
	parts := strings.SplitN(ref, "#", 2)
	if len(parts) > 1 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

// resourceNameFromURL derives an exportable resource name from a fetched URL.
func resourceNameFromURL(urlStr string) string {
	if u, err := url.Parse(urlStr); err == nil {
		if base := path.Base(u.Path); base != "." && base != "/" && base != "" {
			return base
		}
		return u.Host
	}
	return urlStr
}

// unescapeJSONPointer unescapes JSON Pointer tokens.
// Per RFC 6901, ~1 represents / and ~0 represents ~.
func unescapeJSONPointer(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}
