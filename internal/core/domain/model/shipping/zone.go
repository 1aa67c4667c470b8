package shipping

import (
	"errors"
	"fmt"
	"slices"

	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// NationalZoneID identifies the fallback rule that matches every valid postal code.
const NationalZoneID = "national"

// ZoneRule is one row of the shipping zone table. A rule matches either an explicit set of
// postal codes or an inclusive numeric range, never both.
type ZoneRule struct {
	ID      string
	Label   string
	City    string
	Codes   []string
	Min     int
	Max     int
	Price   decimal.Decimal
	ETADays string
	Note    string
}

// HasCodes reports whether the rule matches by explicit list.
func (r ZoneRule) HasCodes() bool {
	return len(r.Codes) > 0
}

// ListsCode reports whether the rule's explicit list contains code.
func (r ZoneRule) ListsCode(code kernel.PostalCode) bool {
	return slices.Contains(r.Codes, code.String())
}

// InRange reports whether code falls inside the rule's numeric range.
// List-based rules never match by range.
func (r ZoneRule) InRange(code kernel.PostalCode) bool {
	if r.HasCodes() {
		return false
	}
	n := code.Int()
	return n >= r.Min && n <= r.Max
}

// Validate checks the rule is usable by the resolver.
func (r ZoneRule) Validate() error {
	var problems []error
	if r.ID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("zone id"))
	}
	if r.Label == "" {
		problems = append(problems, errs.NewValueIsRequiredError("zone label"))
	}
	if !r.Price.IsPositive() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"zone price", fmt.Errorf("%s: %s is not greater than 0", r.ID, r.Price)))
	}
	if r.HasCodes() {
		for _, c := range r.Codes {
			if !kernel.IsPostalCode(c) {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
					"zone codes", fmt.Errorf("%s: %q is not a postal code", r.ID, c)))
			}
		}
		if r.Min != 0 || r.Max != 0 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				"zone matcher", fmt.Errorf("%s: codes and range are mutually exclusive", r.ID)))
		}
	} else if r.Min > r.Max || r.Max <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("zone range "+r.ID, r.Min, 0, r.Max))
	}
	return errors.Join(problems...)
}

// quote builds the successful quote for this rule.
func (r ZoneRule) quote() Quote {
	return Quote{
		Valid:   true,
		ZoneID:  r.ID,
		Zone:    r.Label,
		City:    r.City,
		Cost:    r.Price,
		ETADays: r.ETADays,
		Note:    r.Note,
	}
}
