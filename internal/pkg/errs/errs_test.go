package errs_test

import (
	"errors"
	"testing"

	"bloom/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	cause := errors.New("bucket unavailable")

	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "object not found",
			err:      errs.NewObjectNotFoundError("grant", "orders/abc"),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: orders/abc",
		},
		{
			name:     "object not found with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("grant", "orders/abc", cause),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: param is: grant, ID is: orders/abc (cause: bucket unavailable)",
		},
		{
			name:     "value is invalid",
			err:      errs.NewValueIsInvalidError("content type"),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: content type",
		},
		{
			name:     "value is invalid with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("content type", cause),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: content type (cause: bucket unavailable)",
		},
		{
			name:     "value is out of range",
			err:      errs.NewValueIsOutOfRangeError("quantity", 0, 1, 99),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: 0 is quantity, min value is 1, max value is 99",
		},
		{
			name:     "value is required",
			err:      errs.NewValueIsRequiredError("storage key"),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: storage key",
		},
		{
			name:     "value is required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("storage key", cause),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: storage key (cause: bucket unavailable)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}

func TestValueIsOutOfRangeError_KeepsSingleLine(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("title", "happy\nbirthday", 0, 60)

	assert.Contains(t, err.Error(), "happy birthday")
	assert.NotContains(t, err.Error(), "\n")
}

func TestErrors_WrappedWithFmt(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), errs.NewValueIsRequiredError("key"))

	require.ErrorIs(t, wrapped, errs.ErrValueIsRequired)
	require.NotErrorIs(t, wrapped, errs.ErrValueIsInvalid)
}
