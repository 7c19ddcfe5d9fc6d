// Package ident canonicalizes the external identifiers (SKUs, order IDs,
// lot numbers) that the engine uses as map keys.
//
// Identifiers arrive from several paths with different provenance: seeded
// catalog data, CLI arguments, and rows read back from the ledger. Two
// visually identical strings with different Unicode composition would
// otherwise silently become two distinct keys, so every identifier is
// NFC-normalized and trimmed exactly once at the boundary.
package ident

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Canonical returns the canonical form of an external identifier:
// surrounding whitespace removed, Unicode NFC normalization applied.
//
// Canonical is idempotent: Canonical(Canonical(s)) == Canonical(s).
func Canonical(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
