package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasParts(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{pattern: "/pets", want: false},
		{pattern: "/pets/{id}", want: true},
		{pattern: "/pets/:id", want: true},
		{pattern: "/owners/{owner}/pets/{id}", want: true},
		{pattern: "/", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, HasParts(tt.pattern))
		})
	}
}

func TestExtractPartsFromURIPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{name: "no parts", pattern: "/pets", want: ""},
		{name: "single brace part", pattern: "/pets/{id}", want: "id"},
		{name: "single colon part", pattern: "/pets/:id", want: "id"},
		{name: "template order preserved", pattern: "/owners/{owner}/pets/{id}", want: "owner && id"},
		{name: "query string ignored", pattern: "/pets/{id}?refresh=true", want: "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPartsFromURIPattern(tt.pattern))
		})
	}
}

func TestBuildURIFromPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		parts   map[string]string
		want    string
	}{
		{
			name:    "brace substitution",
			pattern: "/pets/{id}",
			parts:   map[string]string{"id": "42"},
			want:    "/pets/42",
		},
		{
			name:    "colon substitution",
			pattern: "/pets/:id",
			parts:   map[string]string{"id": "42"},
			want:    "/pets/42",
		},
		{
			name:    "multiple parts",
			pattern: "/owners/{owner}/pets/{id}",
			parts:   map[string]string{"owner": "laurent", "id": "42"},
			want:    "/owners/laurent/pets/42",
		},
		{
			name:    "missing value leaves segment as authored",
			pattern: "/owners/{owner}/pets/{id}",
			parts:   map[string]string{"id": "42"},
			want:    "/owners/{owner}/pets/42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildURIFromPattern(tt.pattern, tt.parts))
		})
	}
}
