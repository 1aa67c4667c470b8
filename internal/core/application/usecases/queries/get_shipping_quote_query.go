// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models shaped for a specific caller.
package queries

import (
	"errors"
	"strings"

	"bloom/internal/pkg/guard"
)

var ErrGetShippingQuoteQueryIsNotConstructed = errors.New(
	"GetShippingQuoteQuery must be created via NewGetShippingQuoteQuery constructor",
)

// GetShippingQuoteQuery asks for the shipping quote of a postal code. Any input is accepted:
// malformed codes come back as an invalid quote rather than an error.
//
// Example:
//
//	query := NewGetShippingQuoteQuery("11560")
//	quote, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(quote.Zone, quote.Cost)
type GetShippingQuoteQuery struct {
	postalCode string

	guard guard.ConstructorGuard
}

func NewGetShippingQuoteQuery(postalCode string) GetShippingQuoteQuery {
	return GetShippingQuoteQuery{
		postalCode: strings.TrimSpace(postalCode),
		guard:      guard.NewConstructorGuard(),
	}
}

func (q GetShippingQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetShippingQuoteQueryIsNotConstructed)
}

func (q GetShippingQuoteQuery) PostalCode() string {
	return q.postalCode
}
