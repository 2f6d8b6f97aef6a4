// internal/pkg/refcode/refcode.go
package refcode

import (
	"math/rand"
	"strings"
)

// Charset is the alphabet used for generated reference codes.
const Charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeLength is the number of characters in a generated code.
// 36^5 gives roughly 60M combinations, so collisions are rare and
// handled by the caller's retry loop.
const CodeLength = 5

// PurchaseOrderPrefix is prepended to purchase order reference numbers.
const PurchaseOrderPrefix = "#PO"

// New returns a random uppercase alphanumeric code of CodeLength characters.
func New() string {
	var sb strings.Builder
	sb.Grow(CodeLength)
	for i := 0; i < CodeLength; i++ {
		sb.WriteByte(Charset[rand.Intn(len(Charset))])
	}
	return sb.String()
}

// NewPurchaseOrderReference returns a purchase order reference number,
// e.g. "#POA1B2C".
func NewPurchaseOrderReference() string {
	return PurchaseOrderPrefix + New()
}

// IsValid reports whether s is a bare reference code.
func IsValid(s string) bool {
	if len(s) != CodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(Charset, rune(s[i])) {
			return false
		}
	}
	return true
}

// IsValidPurchaseOrderReference reports whether s is a prefixed purchase
// order reference number.
func IsValidPurchaseOrderReference(s string) bool {
	return strings.HasPrefix(s, PurchaseOrderPrefix) &&
		IsValid(strings.TrimPrefix(s, PurchaseOrderPrefix))
}
