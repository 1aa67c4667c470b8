// Package shipping resolves 5-digit postal codes to shipping quotes using an ordered zone table.
//
// The table is static input maintained outside the checkout flow. DefaultTable returns the one
// embedded from zones.yaml; LoadTableFile reads a replacement with the same layout.
package shipping
