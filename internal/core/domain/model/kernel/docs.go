// Package kernel provides the value objects shared by every checkout aggregate:
//   - UUID: identifiers for cart lines, orders, order items and attachments
//   - PostalCode: a validated 5-digit code with numeric comparison
//   - phone helpers: digit normalization and the accepted stored phone shapes
//
// The types are immutable and safe to copy.
package kernel
