package security

import (
	"net/url"
	"testing"
)

func TestGenerateShareToken(t *testing.T) {
	a, err := GenerateShareToken(24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GenerateShareToken(24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Error("tokens must be unique")
	}
	if len(a) != 32 {
		t.Errorf("expected 32 chars, got %d", len(a))
	}
	if escaped := url.PathEscape(a); escaped != a {
		t.Errorf("token not URL-safe: %q", a)
	}
}

func TestGenerateShareToken_MinimumEntropy(t *testing.T) {
	tok, err := GenerateShareToken(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tok) < 21 {
		t.Errorf("short byteLen must be clamped, got %d chars", len(tok))
	}
}
