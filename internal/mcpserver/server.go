// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes mocksmith's import capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mocksmith/mocksmith"
)

const serverInstructions = `mocksmith MCP server — compiles OpenAPI specs into mock service definitions: operations with dispatch strategies, request/response exchanges, and exportable resources.

Configuration: All defaults are configurable via MOCKSMITH_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- MOCKSMITH_CACHE_FILE_TTL (default: 15m) — cache TTL for local file specs
- MOCKSMITH_CACHE_URL_TTL (default: 5m) — cache TTL for URL-fetched specs
- MOCKSMITH_CACHE_ENABLED (default: true) — disable spec caching entirely
- MOCKSMITH_EXCHANGE_LIMIT (default: 100) — default page size for import_exchanges
- MOCKSMITH_MAX_INLINE_SIZE (default: 10MiB) — inline content size limit
- MOCKSMITH_ALLOW_PRIVATE_IPS (default: false) — allow URL fetches to private/loopback addresses

Caching: Imported specs are cached per session. File entries use path+mtime as key (auto-invalidated on change). URL entries are cached with a shorter TTL. A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "mocksmith", Version: mocksmith.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_service",
		Description: "Compile an OpenAPI Specification document into a mock service definition. Returns the service identity, metadata, and one entry per operation with its dispatch strategy (URI_PARTS, URI_PARAMS, URI_ELEMENTS, or a forced dispatcher), rule descriptor, resource paths, and exchange count.",
	}, handleImportService)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_exchanges",
		Description: "List the request/response exchanges compiled for one operation of an OpenAPI Specification document. Exchanges are correlated from authored examples; each carries its dispatch criteria. Use offset/limit to paginate; use detail=true to include request and response bodies. Default page size is configurable via MOCKSMITH_EXCHANGE_LIMIT.",
	}, handleImportExchanges)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_resources",
		Description: "List the resources an import would persist: the specification itself plus every externally referenced document that was fetched during compilation. Use include_content=true to inline the raw bytes.",
	}, handleImportResources)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ExchangeLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ExchangeLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
