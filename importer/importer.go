package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v4"

	"github.com/mocksmith/mocksmith/domain"
	"github.com/mocksmith/mocksmith/internal/naming"
	"github.com/mocksmith/mocksmith/mockerrors"
	"github.com/mocksmith/mocksmith/resolver"
)

// MaxRefDepth is the default maximum depth for following chained $ref
// pointers. It bounds reference-following recursion so that a cyclic chain
// missed by the visited set can never loop forever.
const MaxRefDepth = 100

// SourceFormat represents the encoding of the source specification document.
// It only affects the naming of the exported resource, never parsing logic.
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format.
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format.
	SourceFormatJSON SourceFormat = "json"
)

// Importer compiles one OpenAPI v3.x document into a mock service
// definition. Create one with [New]; the zero value is not usable.
type Importer struct {
	sourcePath  string
	format      SourceFormat
	content     []byte
	root        map[string]any
	resolver    *resolver.Resolver
	logger      Logger
	maxRefDepth int
}

// Option is a function that configures an import.
type Option func(*config) error

type config struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	sourceName  *string
	resolver    *resolver.Resolver
	logger      Logger
	maxRefDepth int
}

// WithFilePath reads the specification from a file on disk. Relative $ref
// targets resolve against the file's directory unless a resolver is
// supplied with [WithResolver].
func WithFilePath(path string) Option {
	return func(c *config) error {
		if c.reader != nil || c.bytes != nil {
			return fmt.Errorf("only one input source may be set")
		}
		c.filePath = &path
		return nil
	}
}

// WithReader reads the specification from an io.Reader.
func WithReader(r io.Reader) Option {
	return func(c *config) error {
		if c.filePath != nil || c.bytes != nil {
			return fmt.Errorf("only one input source may be set")
		}
		if r == nil {
			return fmt.Errorf("reader must not be nil")
		}
		c.reader = r
		return nil
	}
}

// WithBytes reads the specification from an in-memory byte slice.
func WithBytes(data []byte) Option {
	return func(c *config) error {
		if c.filePath != nil || c.reader != nil {
			return fmt.Errorf("only one input source may be set")
		}
		if len(data) == 0 {
			return fmt.Errorf("bytes must not be empty")
		}
		c.bytes = data
		return nil
	}
}

// WithSourceName overrides the source identifier used in error messages and
// format detection. Useful with [WithReader] and [WithBytes].
func WithSourceName(name string) Option {
	return func(c *config) error {
		c.sourceName = &name
		return nil
	}
}

// WithResolver supplies the reference resolver used for $ref resolution.
// Without it, a file-confined resolver rooted at the source file's
// directory (or the working directory) is used.
func WithResolver(r *resolver.Resolver) Option {
	return func(c *config) error {
		if r == nil {
			return fmt.Errorf("resolver must not be nil")
		}
		c.resolver = r
		return nil
	}
}

// WithLogger sets the structured logger for diagnostic output.
// If not set, logging is disabled.
func WithLogger(l Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// WithMaxRefDepth overrides the maximum $ref chain depth.
func WithMaxRefDepth(depth int) Option {
	return func(c *config) error {
		if depth <= 0 {
			return fmt.Errorf("max ref depth must be positive, got %d", depth)
		}
		c.maxRefDepth = depth
		return nil
	}
}

// New loads and parses a specification document and returns an Importer
// ready to produce service, exchange, and resource definitions.
// An undecodable document is a fatal [mockerrors.ImportError].
func New(opts ...Option) (*Importer, error) {
	var cfg config
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, fmt.Errorf("importer: invalid options: %w", err)
		}
	}

	imp := &Importer{
		logger:      cfg.logger,
		resolver:    cfg.resolver,
		maxRefDepth: cfg.maxRefDepth,
	}
	if imp.logger == nil {
		imp.logger = NopLogger{}
	}
	if imp.maxRefDepth == 0 {
		imp.maxRefDepth = MaxRefDepth
	}

	switch {
	case cfg.filePath != nil:
		data, err := os.ReadFile(*cfg.filePath)
		if err != nil {
			return nil, &mockerrors.ImportError{Source: *cfg.filePath, Message: "cannot read specification", Cause: err}
		}
		imp.content = data
		imp.sourcePath = *cfg.filePath
		if imp.resolver == nil {
			imp.resolver = resolver.New(filepath.Dir(*cfg.filePath))
		}
	case cfg.reader != nil:
		data, err := io.ReadAll(cfg.reader)
		if err != nil {
			return nil, &mockerrors.ImportError{Source: "reader", Message: "cannot read specification", Cause: err}
		}
		imp.content = data
		imp.sourcePath = "reader"
	case cfg.bytes != nil:
		imp.content = cfg.bytes
		imp.sourcePath = "bytes"
	default:
		return nil, fmt.Errorf("importer: no input source provided: use WithFilePath, WithReader, or WithBytes")
	}

	if cfg.sourceName != nil {
		imp.sourcePath = *cfg.sourceName
	}
	if imp.resolver == nil {
		imp.resolver = resolver.New(".")
	}

	imp.format = detectFormat(imp.sourcePath, imp.content)

	// The YAML parser handles both YAML and JSON encodings.
	if err := yaml.Unmarshal(imp.content, &imp.root); err != nil {
		return nil, &mockerrors.ImportError{Source: imp.sourcePath, Message: "cannot parse specification", Cause: err}
	}
	if imp.root == nil {
		return nil, &mockerrors.ImportError{Source: imp.sourcePath, Message: "empty specification document"}
	}

	return imp, nil
}

// SourceFormat returns the detected encoding of the source document.
func (imp *Importer) SourceFormat() SourceFormat {
	return imp.format
}

// ServiceDefinition builds the mock service for the imported document:
// identity from the info section, vendor metadata from the service
// extension, and one operation per path/verb pair with its dispatch
// strategy fixed.
func (imp *Importer) ServiceDefinition() (*domain.Service, error) {
	info := asMap(child(imp.root, infoNode))

	svc := &domain.Service{
		Name:    childString(info, "title"),
		Version: childString(info, "version"),
		Type:    domain.ServiceTypeRest,
	}

	if ext, ok := info[serviceExtension]; ok {
		svc.Metadata = extractMetadata(ext)
	}

	operations, err := imp.extractOperations()
	if err != nil {
		return nil, err
	}
	svc.Operations = operations

	imp.logger.Debug("built service definition",
		"service", svc.Name, "version", svc.Version, "operations", len(operations))
	return svc, nil
}

// ResourceDefinitions returns the artifacts to persist alongside the
// service: the original specification text under a name derived from the
// service identity, plus every externally fetched dependent document.
func (imp *Importer) ResourceDefinitions(svc *domain.Service) []domain.Resource {
	ext := "json"
	if imp.format == SourceFormatYAML {
		ext = "yaml"
	}

	resources := []domain.Resource{{
		Name:    naming.ResourceName(svc.Name, svc.Version, ext),
		Type:    domain.ResourceTypeOpenAPISpec,
		Content: imp.content,
	}}
	return append(resources, imp.resolver.ExternalResources()...)
}

// detectFormat detects the document encoding from the source name extension
// first, falling back to content sniffing: JSON documents start with '{'.
func detectFormat(sourcePath string, data []byte) SourceFormat {
	switch filepath.Ext(sourcePath) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// fatal wraps an extraction error into an ImportError carrying the document
// location, unless it is already one.
func (imp *Importer) fatal(location string, err error) error {
	var impErr *mockerrors.ImportError
	if errors.As(err, &impErr) {
		return err
	}
	return &mockerrors.ImportError{Source: imp.sourcePath, Location: location, Cause: err}
}
