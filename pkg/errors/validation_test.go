package errors

import (
	"strings"
	"testing"
)

func TestValidateSequenceString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"single piece", "R", false},
		{"oval", "RRRSSRRRSS", false},
		{"all pieces", "RLS", false},

		{"lowercase", "rls", true},
		{"digit", "RR1", true},
		{"space", "R S", true},
		{"too long", strings.Repeat("S", 300), true},
		{"control char", "R\x01S", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSequenceString(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSequenceString(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "out/track.png", false},
		{"valid absolute", "/tmp/track.svg", false},
		{"valid simple", "layouts.dxf", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 600), true},
		{"path traversal", "../secret.png", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateStoreURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"redis url", "redis://localhost:6379/0", false},
		{"rediss url", "rediss://example.com:6380", false},
		{"directory", ".slotforge/store", false},

		{"empty", "", true},
		{"traversal dir", "../store", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStoreURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStoreURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
