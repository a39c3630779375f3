package domain

// ResourceType identifies what kind of artifact a resource blob holds.
type ResourceType string

const (
	// ResourceTypeOpenAPISpec is the primary API description document.
	ResourceTypeOpenAPISpec ResourceType = "OPEN_API_SPEC"
	// ResourceTypeReference is an externally fetched document that the
	// primary document depends on through a $ref.
	ResourceTypeReference ResourceType = "REFERENCE"
)

// Resource is an opaque artifact exported alongside a service definition:
// the original specification text, or an externally fetched dependency.
type Resource struct {
	Name    string       `yaml:"name" json:"name"`
	Type    ResourceType `yaml:"type" json:"type"`
	Content []byte       `yaml:"content,omitempty" json:"content,omitempty"`
}
