// Package sanitizer normalizes party-supplied kiosk input before it is
// validated, compared or stored.
//
// All functions are idempotent: applying them twice yields the same result.
// They never fail; input that cannot be normalized is returned trimmed.
//
// Normalization includes:
//   - Emails: trimmed and lowercased, the identity key for a party
//   - Names: whitespace collapsed and trimmed, case preserved
//   - Phone numbers: E.164 when parseable against a default region
//   - ID references: whitespace collapsed and trimmed, case preserved
package sanitizer
