package domain

// ServiceType identifies the protocol family of a mocked service.
type ServiceType string

const (
	// ServiceTypeRest is the only service type produced by the OpenAPI importer.
	ServiceTypeRest ServiceType = "REST"
)

// Service is a mock service definition built from one API description
// document. It is created once per document and is immutable after
// operation discovery completes.
type Service struct {
	Name       string       `yaml:"name" json:"name"`
	Version    string       `yaml:"version" json:"version"`
	Type       ServiceType  `yaml:"type" json:"type"`
	Metadata   *Metadata    `yaml:"metadata,omitempty" json:"metadata,omitempty"`
	Operations []*Operation `yaml:"operations,omitempty" json:"operations,omitempty"`
}

// Metadata carries free-form vendor metadata attached to a service via a
// specification extension.
type Metadata struct {
	Labels      map[string]string `yaml:"labels,omitempty" json:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty" json:"annotations,omitempty"`
}

// Operation is one HTTP operation of a service. Its name is always
// "<METHOD> <path-template>" so that it is unique within the service.
//
// The dispatcher and its rules are fixed once during operation discovery and
// never change while exchanges are extracted for the operation.
type Operation struct {
	Name   string `yaml:"name" json:"name"`
	Method string `yaml:"method" json:"method"`

	// Dispatcher is the dispatch strategy tag the runtime router uses to pick
	// a response. Empty when the operation has no parameters at all.
	Dispatcher string `yaml:"dispatcher,omitempty" json:"dispatcher,omitempty"`
	// DispatcherRules is the opaque rule descriptor for the dispatcher: which
	// parameter names participate and in what order.
	DispatcherRules string `yaml:"dispatcherRules,omitempty" json:"dispatcherRules,omitempty"`

	// DefaultDelay is an optional per-operation response delay in
	// milliseconds, set via vendor metadata.
	DefaultDelay int64 `yaml:"defaultDelay,omitempty" json:"defaultDelay,omitempty"`

	// ResourcePaths are the concrete or templated URL paths registered for
	// routing, accumulated as examples are processed. Insertion order is
	// preserved and duplicates are suppressed.
	ResourcePaths []string `yaml:"resourcePaths,omitempty" json:"resourcePaths,omitempty"`
}

// AddResourcePath appends a resource path unless it is already registered.
func (o *Operation) AddResourcePath(path string) {
	for _, p := range o.ResourcePaths {
		if p == path {
			return
		}
	}
	o.ResourcePaths = append(o.ResourcePaths, path)
}
