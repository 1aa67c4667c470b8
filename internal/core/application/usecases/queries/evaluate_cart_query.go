package queries

import (
	"errors"

	"bloom/internal/core/domain/model/cart"
	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/core/domain/services"
	"bloom/internal/pkg/guard"
)

var ErrEvaluateCartQueryIsNotConstructed = errors.New(
	"EvaluateCartQuery must be created via NewEvaluateCartQuery constructor",
)

// EvaluateCartQuery asks what blocks a cart from checkout and what it costs.
type EvaluateCartQuery struct {
	cart cart.Cart

	guard guard.ConstructorGuard
}

func NewEvaluateCartQuery(c cart.Cart) EvaluateCartQuery {
	return EvaluateCartQuery{cart: c, guard: guard.NewConstructorGuard()}
}

func (q EvaluateCartQuery) Validate() error {
	return q.guard.Validate(ErrEvaluateCartQueryIsNotConstructed)
}

func (q EvaluateCartQuery) Cart() cart.Cart {
	return q.cart
}

// EvaluateCartQueryResponse combines the checkout verdict with the cost summary. LateWarnings
// holds the cutoff notice for lines dated tomorrow when the order is placed late; it never
// blocks checkout.
type EvaluateCartQueryResponse struct {
	Verdict      services.Verdict
	Totals       cart.Totals
	LateWarnings map[kernel.UUID]string
}
