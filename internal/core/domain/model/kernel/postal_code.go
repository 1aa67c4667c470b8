package kernel

import (
	"fmt"
	"strconv"

	"bloom/internal/pkg/errs"
)

// PostalCodeLength is the number of digits in a Mexican código postal.
const PostalCodeLength = 5

// PostalCode is a validated 5-digit postal code. Its numeric value is what zone ranges compare
// against, so "01000" orders before "10000" as it should.
type PostalCode struct {
	raw   string
	value int
}

// ParsePostalCode accepts exactly five ASCII digits.
func ParsePostalCode(s string) (PostalCode, error) {
	if !IsPostalCode(s) {
		return PostalCode{}, errs.NewValueIsInvalidErrorWithCause(
			"postal code",
			fmt.Errorf("%q is not %d digits", s, PostalCodeLength),
		)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return PostalCode{}, errs.NewValueIsInvalidErrorWithCause("postal code", err)
	}
	return PostalCode{raw: s, value: n}, nil
}

// IsPostalCode reports whether s is exactly five ASCII digits.
func IsPostalCode(s string) bool {
	if len(s) != PostalCodeLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String returns the code as entered, leading zeros included.
func (p PostalCode) String() string {
	return p.raw
}

// Int returns the numeric value of the code.
func (p PostalCode) Int() int {
	return p.value
}
