package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type importResourcesInput struct {
	Spec           specInput `json:"spec"                      jsonschema:"The OpenAPI document to import"`
	IncludeContent bool      `json:"include_content,omitempty" jsonschema:"Inline the raw bytes of every resource"`
}

type resourceSummary struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Size    int    `json:"size"`
	Content string `json:"content,omitempty"`
}

type importResourcesOutput struct {
	Resources []resourceSummary `json:"resources"`
}

func handleImportResources(_ context.Context, _ *mcp.CallToolRequest, input importResourcesInput) (*mcp.CallToolResult, importResourcesOutput, error) {
	spec, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), importResourcesOutput{}, nil
	}

	output := importResourcesOutput{
		Resources: make([]resourceSummary, 0, len(spec.resources)),
	}
	for _, res := range spec.resources {
		summary := resourceSummary{
			Name: res.Name,
			Type: string(res.Type),
			Size: len(res.Content),
		}
		if input.IncludeContent {
			summary.Content = string(res.Content)
		}
		output.Resources = append(output.Resources, summary)
	}
	return nil, output, nil
}
