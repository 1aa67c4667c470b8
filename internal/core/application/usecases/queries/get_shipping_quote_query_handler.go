package queries

import (
	"context"

	"bloom/internal/core/domain/model/shipping"
)

// QuoteResolver maps a postal code to a quote. shipping.Resolver satisfies it.
type QuoteResolver interface {
	Resolve(postalCode string) shipping.Quote
}

type GetShippingQuoteQueryHandler struct {
	resolver QuoteResolver
}

func NewGetShippingQuoteQueryHandler(resolver QuoteResolver) GetShippingQuoteQueryHandler {
	return GetShippingQuoteQueryHandler{resolver: resolver}
}

// Handle never fails for a constructed query.
func (h GetShippingQuoteQueryHandler) Handle(_ context.Context, query GetShippingQuoteQuery) (shipping.Quote, error) {
	if err := query.Validate(); err != nil {
		return shipping.Quote{}, err
	}
	return h.resolver.Resolve(query.PostalCode()), nil
}
