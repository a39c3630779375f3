package dispatcher

// Dispatch style tags stored on an operation. The tag is fixed once per
// operation during discovery and drives criteria compilation for every
// example of that operation.
const (
	// URIParams dispatches on query parameter values; the registered resource
	// path stays the raw URL template.
	URIParams = "URI_PARAMS"
	// URIParts dispatches on path-template variable values; each example
	// registers a concrete, substituted resource path.
	URIParts = "URI_PARTS"
	// URIElements dispatches on path parts first, then query parameters.
	URIElements = "URI_ELEMENTS"
	// Fallback wraps an inner dispatcher/rules pair plus a default response
	// served when the inner dispatcher matches nothing.
	Fallback = "FALLBACK"
)

// RulesSeparator joins parameter names inside a rule descriptor.
const RulesSeparator = " && "

// ElementsSeparator separates path part names from query parameter names in
// a URI_ELEMENTS rule descriptor.
const ElementsSeparator = " ?? "
