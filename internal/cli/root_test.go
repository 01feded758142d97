package cli

import (
	"testing"
)

func TestSetVersion(t *testing.T) {
	SetVersion("v1.0.0", "abc123", "2026-01-01")

	if version != "v1.0.0" {
		t.Errorf("version = %q, want %q", version, "v1.0.0")
	}
	if commit != "abc123" {
		t.Errorf("commit = %q, want %q", commit, "abc123")
	}
	if date != "2026-01-01" {
		t.Errorf("date = %q, want %q", date, "2026-01-01")
	}
}
