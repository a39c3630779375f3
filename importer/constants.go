package importer

// Node names of the OpenAPI document tree the importer walks.
const (
	refNode         = "$ref"
	infoNode        = "info"
	pathsNode       = "paths"
	parametersNode  = "parameters"
	responsesNode   = "responses"
	requestBodyNode = "requestBody"
	contentNode     = "content"
	examplesNode    = "examples"
	headersNode     = "headers"
	valueNode       = "value"
)

// Parameter location constants (values of a parameter's "in" field).
const (
	paramInPath   = "path"
	paramInQuery  = "query"
	paramInHeader = "header"
)

// validVerbs are the HTTP verbs that become operations, in canonical order.
// The order also fixes verb iteration so repeated imports of the same
// document are deterministic.
var validVerbs = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}
