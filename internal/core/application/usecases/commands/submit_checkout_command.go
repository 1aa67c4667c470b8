package commands

import (
	"errors"

	"bloom/internal/core/domain/model/cart"
	"bloom/internal/pkg/guard"
)

var (
	ErrSubmitCheckoutCommandIsNotConstructed = errors.New(
		"SubmitCheckoutCommand must be created via NewSubmitCheckoutCommand constructor",
	)
	ErrCartSourceIsRequired = errors.New("cart source is required")
)

// CartSource exposes the live cart. cart.Store satisfies it.
type CartSource interface {
	State() cart.Cart
}

// SubmitCheckoutCommand asks to submit whatever the source holds when the handler snapshots it.
//
// Example:
//
//	cmd, err := NewSubmitCheckoutCommand(store)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type SubmitCheckoutCommand struct { //nolint:recvcheck //using for validation
	source CartSource

	guard guard.ConstructorGuard
}

// NewSubmitCheckoutCommand creates a submission over source.
func NewSubmitCheckoutCommand(source CartSource) (SubmitCheckoutCommand, error) {
	cmd := SubmitCheckoutCommand{guard: guard.NewConstructorGuard()}

	if err := cmd.setSource(source); err != nil {
		return SubmitCheckoutCommand{}, err
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitCheckoutCommand) Validate() error {
	return c.guard.Validate(ErrSubmitCheckoutCommandIsNotConstructed)
}

// Source returns the live cart the submission snapshots.
func (c SubmitCheckoutCommand) Source() CartSource {
	return c.source
}

func (c *SubmitCheckoutCommand) setSource(source CartSource) error {
	if source == nil {
		return ErrCartSourceIsRequired
	}
	c.source = source
	return nil
}
