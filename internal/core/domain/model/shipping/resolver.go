package shipping

import "bloom/internal/core/domain/model/kernel"

// Resolver maps a postal code to a shipping quote. It is pure: no I/O, no clock, and the same
// input always yields the same quote.
//
// Matching order:
//  1. explicit code lists, in table order (a listed code wins over an overlapping range)
//  2. numeric ranges, in table order
//  3. the national fallback, which always matches
//
// Example:
//
//	resolver := shipping.NewResolver(shipping.DefaultTable())
//	q := resolver.Resolve("11560")
//	fmt.Println(q.Zone, q.Cost) // CDMX 89
type Resolver struct {
	table Table
}

// NewResolver creates a resolver over table.
func NewResolver(table Table) Resolver {
	return Resolver{table: table}
}

// Resolve never fails: malformed input yields InvalidQuote.
func (r Resolver) Resolve(postalCode string) Quote {
	code, err := kernel.ParsePostalCode(postalCode)
	if err != nil {
		return InvalidQuote()
	}

	for _, rule := range r.table.rules {
		if rule.HasCodes() && rule.ListsCode(code) {
			return rule.quote()
		}
	}
	for _, rule := range r.table.rules {
		if rule.InRange(code) {
			return rule.quote()
		}
	}
	return r.table.national.quote()
}
