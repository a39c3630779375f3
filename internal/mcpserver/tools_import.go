package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type importServiceInput struct {
	Spec specInput `json:"spec" jsonschema:"The OpenAPI document to import"`
}

type operationSummary struct {
	Name            string   `json:"name"`
	Method          string   `json:"method"`
	Dispatcher      string   `json:"dispatcher,omitempty"`
	DispatcherRules string   `json:"dispatcher_rules,omitempty"`
	DefaultDelay    int64    `json:"default_delay,omitempty"`
	ResourcePaths   []string `json:"resource_paths,omitempty"`
	ExchangeCount   int      `json:"exchange_count"`
}

type importServiceOutput struct {
	Name        string             `json:"name"`
	Version     string             `json:"version"`
	Type        string             `json:"type"`
	Labels      map[string]string  `json:"labels,omitempty"`
	Annotations map[string]string  `json:"annotations,omitempty"`
	Operations  []operationSummary `json:"operations"`
}

func handleImportService(_ context.Context, _ *mcp.CallToolRequest, input importServiceInput) (*mcp.CallToolResult, importServiceOutput, error) {
	spec, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), importServiceOutput{}, nil
	}

	svc := spec.service
	output := importServiceOutput{
		Name:    svc.Name,
		Version: svc.Version,
		Type:    string(svc.Type),
	}
	if svc.Metadata != nil {
		output.Labels = svc.Metadata.Labels
		output.Annotations = svc.Metadata.Annotations
	}

	output.Operations = make([]operationSummary, 0, len(svc.Operations))
	for _, op := range svc.Operations {
		output.Operations = append(output.Operations, operationSummary{
			Name:            op.Name,
			Method:          op.Method,
			Dispatcher:      op.Dispatcher,
			DispatcherRules: op.DispatcherRules,
			DefaultDelay:    op.DefaultDelay,
			ResourcePaths:   op.ResourcePaths,
			ExchangeCount:   len(spec.exchanges[op.Name]),
		})
	}
	return nil, output, nil
}
