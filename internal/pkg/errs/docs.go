// Package errs provides the typed errors shared by the checkout core and its adapters.
//
// Each error type pairs a sentinel (ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange,
// ErrObjectNotFound) with a struct carrying the offending parameter and an optional cause.
// Unwrap always returns the sentinel, so callers classify failures with errors.Is:
//
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return ctx.JSON(http.StatusNotFound, ...)
//	}
//
// Validation of user input in the cart is NOT reported through these types; the validation
// engine returns plain messages as data. These errors guard constructors and repositories.
package errs
