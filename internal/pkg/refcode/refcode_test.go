package refcode

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := New()
		if len(code) != CodeLength {
			t.Fatalf("expected code of length %d, got %q", CodeLength, code)
		}
		for _, r := range code {
			if !strings.ContainsRune(Charset, r) {
				t.Fatalf("code %q contains character outside charset", code)
			}
		}
		seen[code] = true
	}
	// 1000 draws from a 60M space should essentially never all collide
	if len(seen) < 900 {
		t.Fatalf("expected mostly unique codes, got %d unique out of 1000", len(seen))
	}
}

func TestNewPurchaseOrderReference(t *testing.T) {
	ref := NewPurchaseOrderReference()
	if !strings.HasPrefix(ref, PurchaseOrderPrefix) {
		t.Fatalf("expected prefix %q, got %q", PurchaseOrderPrefix, ref)
	}
	if len(ref) != len(PurchaseOrderPrefix)+CodeLength {
		t.Fatalf("unexpected reference length: %q", ref)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid code", "A1B2C", true},
		{"all letters", "ABCDE", true},
		{"all digits", "12345", true},
		{"too short", "A1B2", false},
		{"too long", "A1B2C3", false},
		{"lowercase", "a1b2c", false},
		{"special characters", "A1B2#", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.input); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidPurchaseOrderReference(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid reference", "#POA1B2C", true},
		{"missing prefix", "A1B2C", false},
		{"wrong prefix", "#SOA1B2C", false},
		{"short code", "#POA1B", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidPurchaseOrderReference(tt.input); got != tt.want {
				t.Errorf("IsValidPurchaseOrderReference(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
