package naming

import "testing"

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple title", input: "Petstore API", want: "PetstoreAPI"},
		{name: "lowercase words title cased", input: "petstore api", want: "PetstoreApi"},
		{name: "extra whitespace collapsed", input: "Petstore   API ", want: "PetstoreAPI"},
		{name: "diacritics folded", input: "Café ordering", want: "CafeOrdering"},
		{name: "punctuation dropped", input: "Pets & Friends!", want: "PetsFriends"},
		{name: "safe characters kept", input: "orders.v2_beta-1", want: "orders.v2_beta-1"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResourceName(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		version string
		ext     string
		want    string
	}{
		{name: "yaml resource", title: "Petstore API", version: "1.0.0", ext: "yaml", want: "PetstoreAPI-1.0.0.yaml"},
		{name: "json resource", title: "Petstore API", version: "1.0.0", ext: "json", want: "PetstoreAPI-1.0.0.json"},
		{name: "empty title falls back", title: "", version: "2.0", ext: "yaml", want: "service-2.0.yaml"},
		{name: "no version", title: "Orders", version: "", ext: "json", want: "Orders.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResourceName(tt.title, tt.version, tt.ext)
			if got != tt.want {
				t.Errorf("ResourceName(%q, %q, %q) = %q, want %q", tt.title, tt.version, tt.ext, got, tt.want)
			}
		})
	}
}
