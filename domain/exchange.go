package domain

import (
	"slices"
	"strings"
)

// Header is a named header with a set of values. Headers are multi-valued to
// support CSV-style headers; values are kept sorted and deduplicated.
type Header struct {
	Name   string   `yaml:"name" json:"name"`
	Values []string `yaml:"values,omitempty" json:"values,omitempty"`
}

// NewHeader builds a header from one or more values.
func NewHeader(name string, values ...string) Header {
	h := Header{Name: name}
	for _, v := range values {
		h.AddValue(v)
	}
	return h
}

// AddValue adds a value to the header's value set, keeping the set sorted.
func (h *Header) AddValue(value string) {
	idx, found := slices.BinarySearch(h.Values, value)
	if found {
		return
	}
	h.Values = slices.Insert(h.Values, idx, value)
}

// SplitHeaderValues splits a possibly comma-separated header value into a
// sorted set of trimmed values. Headers may be logically multi-valued even
// when authored as one CSV string.
func SplitHeaderValues(raw string) []string {
	var values []string
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if !slices.Contains(values, v) {
			values = append(values, v)
		}
	}
	slices.Sort(values)
	return values
}

// Parameter is a name/value pair carried by a mock request. Path-template
// variables are represented as query parameters by convention; the runtime
// router tells them apart using the operation's dispatcher rules.
type Parameter struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

// Request is the request half of a mock exchange. Its name is the example
// identifier the document author chose.
type Request struct {
	Name            string      `yaml:"name" json:"name"`
	Content         string      `yaml:"content,omitempty" json:"content,omitempty"`
	Headers         []Header    `yaml:"headers,omitempty" json:"headers,omitempty"`
	QueryParameters []Parameter `yaml:"queryParameters,omitempty" json:"queryParameters,omitempty"`
}

// AddHeader merges a header into the request. Values for an already-present
// header name are merged into the existing value set.
func (r *Request) AddHeader(header Header) {
	for i := range r.Headers {
		if r.Headers[i].Name == header.Name {
			for _, v := range header.Values {
				r.Headers[i].AddValue(v)
			}
			return
		}
	}
	r.Headers = append(r.Headers, header)
}

// AddQueryParameter appends a query parameter to the request.
func (r *Request) AddQueryParameter(name, value string) {
	r.QueryParameters = append(r.QueryParameters, Parameter{Name: name, Value: value})
}

// Response is the response half of a mock exchange.
type Response struct {
	Name      string   `yaml:"name" json:"name"`
	MediaType string   `yaml:"mediaType,omitempty" json:"mediaType,omitempty"`
	Status    string   `yaml:"status" json:"status"`
	Content   string   `yaml:"content,omitempty" json:"content,omitempty"`
	Headers   []Header `yaml:"headers,omitempty" json:"headers,omitempty"`

	// Fault is true when the status does not indicate success (2xx).
	Fault bool `yaml:"fault,omitempty" json:"fault,omitempty"`

	// DispatchCriteria is the compiled routing key the runtime compares
	// against a key derived from the live request at match time. Empty when
	// the operation has no dispatcher.
	DispatchCriteria string `yaml:"dispatchCriteria,omitempty" json:"dispatchCriteria,omitempty"`
}

// AddHeader merges a header into the response, like [Request.AddHeader].
func (r *Response) AddHeader(header Header) {
	for i := range r.Headers {
		if r.Headers[i].Name == header.Name {
			for _, v := range header.Values {
				r.Headers[i].AddValue(v)
			}
			return
		}
	}
	r.Headers = append(r.Headers, header)
}

// Exchange pairs one mock request with the response the router should serve
// for it. Exchanges are created and discarded within a single extraction
// call; they are never shared or mutated after assembly.
type Exchange struct {
	Request  Request  `yaml:"request" json:"request"`
	Response Response `yaml:"response" json:"response"`
}
