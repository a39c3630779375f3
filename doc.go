// Package mocksmith compiles OpenAPI v3.x documents into mock service
// definitions: operations with dispatch strategies, request/response
// exchanges correlated from authored examples, and exportable resources.
//
// # Overview
//
// The library consists of the following packages:
//
//   - importer: load an OpenAPI document and derive the service definition,
//     its exchanges, and its resources
//   - dispatcher: dispatch strategy names, rule descriptors, and criteria
//     compilation
//   - domain: the mock service model (services, operations, exchanges,
//     resources)
//   - resolver: $ref resolution across local pointers, sibling files, and
//     HTTP locations
//   - mockerrors: the error taxonomy shared by all packages
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/mocksmith/mocksmith
//
// # Quick Start
//
// Import a specification and inspect the compiled operations:
//
//	import "github.com/mocksmith/mocksmith/importer"
//
//	imp, err := importer.New(importer.WithFilePath("openapi.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	svc, err := imp.ServiceDefinition()
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, op := range svc.Operations {
//		exchanges, err := imp.Exchanges(op)
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("%s: %s %q (%d exchanges)\n",
//			op.Name, op.Dispatcher, op.DispatcherRules, len(exchanges))
//	}
//
// # Command Line
//
// A CLI is available as cmd/mocksmith:
//
//	mocksmith import -format json petstore.yaml
//
// # MCP Server
//
// The same importing capabilities are exposed over the Model Context
// Protocol via "mocksmith mcp"; see internal/mcpserver.
package mocksmith
