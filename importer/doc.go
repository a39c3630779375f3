// Package importer compiles an OpenAPI v3.x description (JSON or YAML) into
// a mock service definition: a [domain.Service] with one [domain.Operation]
// per path/verb pair, each carrying a dispatch strategy, and on demand the
// [domain.Exchange] request/response pairs a runtime mock router serves.
//
// The hard part is not parsing but correlation: the fragments of one
// illustrative example (a path parameter value, a query parameter value, a
// header value, a request body, a response body) live in structurally
// distant parts of the document and are tied together only by the example
// identifier the author chose. The importer gathers those fragments per
// example, selects a dispatch strategy per operation, and compiles the
// literal routing key the router matches against live traffic.
//
// # Usage
//
//	imp, err := importer.New(importer.WithFilePath("petstore.yaml"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svc, err := imp.ServiceDefinition()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, op := range svc.Operations {
//	    exchanges, err := imp.Exchanges(op)
//	    // ...
//	}
//
// A fatal condition (an unresolvable or cyclic $ref) aborts the whole import
// with a [mockerrors.ImportError]; recoverable conditions (a malformed
// fallback envelope, an example that cannot be routed) are logged and the
// affected mock is simply absent from the output.
//
// An Importer performs no synchronization of its own. Extracting exchanges
// for different operations concurrently is safe only when the configured
// reference resolver is, which the default shared resolver is not.
package importer
