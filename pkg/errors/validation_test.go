package errors

import (
	"strings"
	"testing"
)

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Mary", false},
		{"numeric", "42", false},
		{"with spaces", "node one", false},
		{"unicode", "Ünïcødé", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidGraph) {
				t.Errorf("expected INVALID_GRAPH, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"forcegraph.toml", false},
		{"conf/graph.JSON", false},
		{"", true},
		{"config.yaml", true},
		{"bad\x00.toml", true},
	}

	for _, tt := range tests {
		err := ValidateConfigPath(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateConfigPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
