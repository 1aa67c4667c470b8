package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"bloom/internal/core/domain/model/cart"
	"bloom/internal/core/domain/model/kernel"
)

// Buyer and line issue messages, in the order they are reported.
const (
	MsgCartEmpty = "cart is empty"

	MsgFirstNameRequired = "first name is required"
	MsgLastNameRequired  = "last name is required"
	MsgPhoneInvalid      = "phone number is invalid"
	MsgEmailInvalid      = "email address is invalid"

	MsgRecipientRequired     = "recipient name is required"
	MsgStreetRequired        = "street is required"
	MsgNeighborhoodRequired  = "neighborhood is required"
	MsgRecipientPhoneInvalid = "recipient phone is invalid"
	MsgPostalCodeInvalid     = "postal code must be 5 digits"
	MsgShippingNotResolved   = "shipping has not been resolved for this postal code"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Verdict is the checkout readiness of a cart. It is data, never an error: the UI renders it and
// the checkout flow refuses to start while BlockingMessages is non-empty.
type Verdict struct {
	BuyerOK          bool
	BuyerIssues      []string
	LineIssues       map[kernel.UUID][]string
	BlockingMessages []string
}

// CanCheckout reports whether nothing blocks submission.
func (v Verdict) CanCheckout() bool {
	return len(v.BlockingMessages) == 0
}

// ValidationEngine derives a Verdict from a cart. It holds no cart state; the only ambient input
// is the clock used for delivery date rules.
type ValidationEngine struct {
	calendar DeliveryCalendar
	now      func() time.Time
}

// EngineOption customizes a ValidationEngine.
type EngineOption func(*ValidationEngine)

// WithCalendar replaces the default delivery calendar.
func WithCalendar(c DeliveryCalendar) EngineOption {
	return func(e *ValidationEngine) { e.calendar = c }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) EngineOption {
	return func(e *ValidationEngine) { e.now = now }
}

// NewValidationEngine creates an engine using DefaultDeliveryCalendar and time.Now.
func NewValidationEngine(opts ...EngineOption) *ValidationEngine {
	e := &ValidationEngine{calendar: DefaultDeliveryCalendar(), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Calendar returns the delivery calendar the engine checks dates against.
func (e *ValidationEngine) Calendar() DeliveryCalendar {
	return e.calendar
}

// Evaluate checks c at the engine's current time.
func (e *ValidationEngine) Evaluate(c cart.Cart) Verdict {
	return e.EvaluateAt(c, e.now())
}

// EvaluateAt applies the checkout rules in a fixed order so the messages are reproducible:
//  1. an empty cart blocks with MsgCartEmpty alone
//  2. buyer fields, one message per failing check
//  3. each line in cart order: delivery details for delivery lines, then the delivery date
func (e *ValidationEngine) EvaluateAt(c cart.Cart, now time.Time) Verdict {
	v := Verdict{
		BuyerIssues:      buyerIssues(c.Buyer()),
		LineIssues:       make(map[kernel.UUID][]string),
		BlockingMessages: []string{},
	}
	v.BuyerOK = len(v.BuyerIssues) == 0

	if c.IsEmpty() {
		v.BlockingMessages = append(v.BlockingMessages, MsgCartEmpty)
		return v
	}

	v.BlockingMessages = append(v.BlockingMessages, v.BuyerIssues...)
	for i, line := range c.Lines() {
		issues := e.lineIssues(line, now)
		if len(issues) == 0 {
			continue
		}
		v.LineIssues[line.ID] = issues
		v.BlockingMessages = append(v.BlockingMessages,
			fmt.Sprintf("item %d (%s): %s", i+1, line.Product.Name, strings.Join(issues, "; ")))
	}
	return v
}

func buyerIssues(b cart.Buyer) []string {
	issues := []string{}
	if strings.TrimSpace(b.FirstName) == "" {
		issues = append(issues, MsgFirstNameRequired)
	}
	if strings.TrimSpace(b.LastName) == "" {
		issues = append(issues, MsgLastNameRequired)
	}
	if !kernel.IsValidPhone(b.Phone) {
		issues = append(issues, MsgPhoneInvalid)
	}
	if !emailPattern.MatchString(strings.TrimSpace(b.Email)) {
		issues = append(issues, MsgEmailInvalid)
	}
	return issues
}

func (e *ValidationEngine) lineIssues(line cart.Line, now time.Time) []string {
	var issues []string
	if line.IsDelivery() {
		var addr cart.DeliveryAddress
		if line.Address != nil {
			addr = *line.Address
		}
		if strings.TrimSpace(addr.FullName) == "" {
			issues = append(issues, MsgRecipientRequired)
		}
		if strings.TrimSpace(addr.Street) == "" {
			issues = append(issues, MsgStreetRequired)
		}
		if strings.TrimSpace(addr.Neighborhood) == "" {
			issues = append(issues, MsgNeighborhoodRequired)
		}
		if !kernel.IsValidPhone(addr.Phone) {
			issues = append(issues, MsgRecipientPhoneInvalid)
		}
		if !kernel.IsPostalCode(addr.PostalCode) {
			issues = append(issues, MsgPostalCodeInvalid)
		}
		if line.Shipping == nil || !line.Shipping.Valid {
			issues = append(issues, MsgShippingNotResolved)
		}
	}
	if line.DeliveryDate != "" {
		if err := e.calendar.Check(line.DeliveryDate, LineCity(line), now); err != nil {
			issues = append(issues, err.Error())
		}
	}
	return issues
}

// LineCity is the city a line is fulfilled from: the quoted zone for deliveries, the pickup city
// otherwise.
func LineCity(line cart.Line) string {
	if line.IsDelivery() && line.Shipping != nil && line.Shipping.City != "" {
		return line.Shipping.City
	}
	return line.PickupCity
}
