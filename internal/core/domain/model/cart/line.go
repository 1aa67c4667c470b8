package cart

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"

	"bloom/internal/core/domain/model/attachment"
	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/core/domain/model/shipping"
	"bloom/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// MaxTitleLength limits the card title, in characters.
	MaxTitleLength = 60
	// MaxMessageLength limits the card message, in characters.
	MaxMessageLength = 240
)

// DeliveryMode says whether a line is picked up at the shop or delivered to an address.
type DeliveryMode string

const (
	ModePickup   DeliveryMode = "pickup"
	ModeDelivery DeliveryMode = "delivery"
)

// Validate accepts only pickup and delivery.
func (m DeliveryMode) Validate() error {
	switch m {
	case ModePickup, ModeDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("delivery mode", fmt.Errorf("%q is not a delivery mode", m))
	}
}

// Product references a catalog entry.
type Product struct {
	ID       string
	Name     string
	Subtitle string
}

// Customization is the card printed with the bouquet.
type Customization struct {
	Title   string
	Message string
}

// LineInput is what the form layer hands to AddLine.
type LineInput struct {
	Product       Product
	UnitPrice     decimal.Decimal
	Quantity      int
	Customization Customization
	Mode          DeliveryMode
	PickupCity    string
	DeliveryDate  string
}

// Validate checks the shape rules enforced by the form layer before a line reaches the cart.
func (in LineInput) Validate() error {
	var problems []error
	if in.Product.ID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("product id"))
	}
	if in.UnitPrice.IsNegative() {
		problems = append(problems, errs.NewValueIsOutOfRangeError("unit price", in.UnitPrice, 0, "unbounded"))
	}
	if in.Quantity < 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("quantity", in.Quantity, 1, "unbounded"))
	}
	if n := utf8.RuneCountInString(in.Customization.Title); n > MaxTitleLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("title length", n, 0, MaxTitleLength))
	}
	if n := utf8.RuneCountInString(in.Customization.Message); n > MaxMessageLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("message length", n, 0, MaxMessageLength))
	}
	if err := in.Mode.Validate(); err != nil {
		problems = append(problems, err)
	}
	return errors.Join(problems...)
}

// Line is one customizable product entry. Address and Shipping are only set on delivery lines.
type Line struct {
	ID            kernel.UUID
	Product       Product
	UnitPrice     decimal.Decimal
	Quantity      int
	Customization Customization
	Mode          DeliveryMode
	PickupCity    string
	DeliveryDate  string
	Address       *DeliveryAddress
	Shipping      *shipping.Quote
	Images        []attachment.Image
}

// IsDelivery reports whether the line ships to an address.
func (l Line) IsDelivery() bool {
	return l.Mode == ModeDelivery
}

// Subtotal is unit price times quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l Line) clone() Line {
	if l.Address != nil {
		a := *l.Address
		l.Address = &a
	}
	if l.Shipping != nil {
		q := *l.Shipping
		l.Shipping = &q
	}
	l.Images = slices.Clone(l.Images)
	if l.Images == nil {
		l.Images = []attachment.Image{}
	}
	return l
}

func newLine(id kernel.UUID, in LineInput) Line {
	return Line{
		ID:            id,
		Product:       in.Product,
		UnitPrice:     in.UnitPrice,
		Quantity:      in.Quantity,
		Customization: in.Customization,
		Mode:          in.Mode,
		PickupCity:    in.PickupCity,
		DeliveryDate:  in.DeliveryDate,
		Images:        []attachment.Image{},
	}
}
