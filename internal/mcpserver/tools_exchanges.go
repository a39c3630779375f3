package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mocksmith/mocksmith/domain"
)

type importExchangesInput struct {
	Spec      specInput `json:"spec"                jsonschema:"The OpenAPI document to import"`
	Operation string    `json:"operation"           jsonschema:"Operation name, e.g. 'GET /pets/{id}'"`
	Detail    bool      `json:"detail,omitempty"    jsonschema:"Include request and response bodies"`
	Offset    int       `json:"offset,omitempty"    jsonschema:"Number of exchanges to skip"`
	Limit     int       `json:"limit,omitempty"     jsonschema:"Maximum number of exchanges to return"`
}

type headerSummary struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type parameterSummary struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type exchangeSummary struct {
	Name             string             `json:"name"`
	Status           string             `json:"status"`
	MediaType        string             `json:"media_type,omitempty"`
	DispatchCriteria string             `json:"dispatch_criteria,omitempty"`
	Fault            bool               `json:"fault,omitempty"`
	QueryParameters  []parameterSummary `json:"query_parameters,omitempty"`
	RequestHeaders   []headerSummary    `json:"request_headers,omitempty"`
	ResponseHeaders  []headerSummary    `json:"response_headers,omitempty"`
	RequestBody      string             `json:"request_body,omitempty"`
	ResponseBody     string             `json:"response_body,omitempty"`
}

type importExchangesOutput struct {
	Operation       string            `json:"operation"`
	Dispatcher      string            `json:"dispatcher,omitempty"`
	DispatcherRules string            `json:"dispatcher_rules,omitempty"`
	Total           int               `json:"total"`
	Exchanges       []exchangeSummary `json:"exchanges"`
}

func handleImportExchanges(_ context.Context, _ *mcp.CallToolRequest, input importExchangesInput) (*mcp.CallToolResult, importExchangesOutput, error) {
	spec, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), importExchangesOutput{}, nil
	}

	var operation *domain.Operation
	for _, op := range spec.service.Operations {
		if op.Name == input.Operation {
			operation = op
			break
		}
	}
	if operation == nil {
		return errResult(fmt.Errorf("unknown operation %q; use import_service to list operations", input.Operation)),
			importExchangesOutput{}, nil
	}

	exchanges := spec.exchanges[operation.Name]
	output := importExchangesOutput{
		Operation:       operation.Name,
		Dispatcher:      operation.Dispatcher,
		DispatcherRules: operation.DispatcherRules,
		Total:           len(exchanges),
	}

	page := paginate(exchanges, input.Offset, input.Limit)
	output.Exchanges = make([]exchangeSummary, 0, len(page))
	for _, ex := range page {
		summary := exchangeSummary{
			Name:             ex.Response.Name,
			Status:           ex.Response.Status,
			MediaType:        ex.Response.MediaType,
			DispatchCriteria: ex.Response.DispatchCriteria,
			Fault:            ex.Response.Fault,
			QueryParameters:  parameterSummaries(ex.Request.QueryParameters),
			RequestHeaders:   headerSummaries(ex.Request.Headers),
			ResponseHeaders:  headerSummaries(ex.Response.Headers),
		}
		if input.Detail {
			summary.RequestBody = ex.Request.Content
			summary.ResponseBody = ex.Response.Content
		}
		output.Exchanges = append(output.Exchanges, summary)
	}
	return nil, output, nil
}

func headerSummaries(headers []domain.Header) []headerSummary {
	if len(headers) == 0 {
		return nil
	}
	out := make([]headerSummary, 0, len(headers))
	for _, h := range headers {
		out = append(out, headerSummary{Name: h.Name, Values: h.Values})
	}
	return out
}

func parameterSummaries(params []domain.Parameter) []parameterSummary {
	if len(params) == 0 {
		return nil
	}
	out := make([]parameterSummary, 0, len(params))
	for _, p := range params {
		out = append(out, parameterSummary{Name: p.Name, Value: p.Value})
	}
	return out
}
