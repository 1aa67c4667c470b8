package http

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"bloom/internal/core/application/usecases/queries"
	"bloom/internal/core/domain/model/cart"
	"bloom/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Address fields have gone by several names over the storefront's life. The first alias that
// carries a non-empty value wins.
var addressAliases = map[string][]string{
	"fullName":       {"fullName", "name"},
	"phone":          {"phone", "tel"},
	"postalCode":     {"postalCode", "cp", "zip"},
	"street":         {"street", "calle", "line1"},
	"exteriorNumber": {"exteriorNumber", "number", "extNumber"},
	"interiorNumber": {"interiorNumber", "intNumber", "interior"},
	"neighborhood":   {"neighborhood", "colonia", "town"},
	"references":     {"references", "notes"},
}

// combinedNumber matches the legacy "12 Int 4" form of exterior plus interior number.
var combinedNumber = regexp.MustCompile(`(?i)^\s*(\S+)\s+(?:interior|int\.?)\s*(\S.*?)\s*$`)

type cartPayload struct {
	Buyer buyerPayload  `json:"buyer"`
	Items []itemPayload `json:"items"`
}

type buyerPayload struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type itemPayload struct {
	Product struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Subtitle string `json:"subtitle"`
	} `json:"product"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Message   struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	} `json:"message"`
	DeliveryMode string         `json:"deliveryMode"`
	PickupCity   string         `json:"pickupCity"`
	DeliveryDate string         `json:"deliveryDate"`
	Address      map[string]any `json:"address"`
}

// NormalizeAddress maps a loosely named address object onto the canonical DeliveryAddress.
// Numeric postal codes are zero-padded to five digits.
func NormalizeAddress(raw map[string]any) cart.DeliveryAddress {
	field := func(name string) string {
		for _, alias := range addressAliases[name] {
			if s := stringValue(raw[alias], name == "postalCode"); s != "" {
				return s
			}
		}
		return ""
	}

	addr := cart.DeliveryAddress{
		FullName:       field("fullName"),
		Phone:          field("phone"),
		PostalCode:     field("postalCode"),
		Street:         field("street"),
		ExteriorNumber: field("exteriorNumber"),
		InteriorNumber: field("interiorNumber"),
		Neighborhood:   field("neighborhood"),
		References:     field("references"),
	}
	if addr.InteriorNumber == "" {
		if m := combinedNumber.FindStringSubmatch(addr.ExteriorNumber); m != nil {
			addr.ExteriorNumber, addr.InteriorNumber = m[1], m[2]
		}
	}
	return addr
}

func stringValue(v any, postal bool) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if postal && t == float64(int64(t)) {
			return fmt.Sprintf("%05d", int64(t))
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		if postal {
			return fmt.Sprintf("%05d", t)
		}
		return strconv.Itoa(t)
	default:
		return ""
	}
}

// toCart replays the payload through the same cart operations the storefront dispatches. Delivery
// lines get their quote from resolver, the way the form resolves it when the postal code changes.
func (p cartPayload) toCart(resolver queries.QuoteResolver) (cart.Cart, error) {
	c := cart.New().SetBuyer(cart.BuyerPatch{
		FirstName: &p.Buyer.FirstName,
		LastName:  &p.Buyer.LastName,
		Phone:     &p.Buyer.Phone,
		Email:     &p.Buyer.Email,
	})

	var problems []error
	for i, item := range p.Items {
		in := cart.LineInput{
			Product: cart.Product{
				ID:       item.Product.ID,
				Name:     item.Product.Name,
				Subtitle: item.Product.Subtitle,
			},
			UnitPrice:     item.UnitPrice,
			Quantity:      item.Quantity,
			Customization: cart.Customization{Title: item.Message.Title, Message: item.Message.Message},
			Mode:          cart.DeliveryMode(strings.ToLower(strings.TrimSpace(item.DeliveryMode))),
			PickupCity:    item.PickupCity,
			DeliveryDate:  strings.TrimSpace(item.DeliveryDate),
		}
		if err := in.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("item %d: %w", i+1, err))
			continue
		}

		var lineID kernel.UUID
		c, lineID = c.AddLine(in)
		if in.Mode == cart.ModeDelivery && item.Address != nil {
			addr := NormalizeAddress(item.Address)
			c = c.SetLineAddress(lineID, addr)
			c = c.SetLineShipping(lineID, resolver.Resolve(addr.PostalCode))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return cart.Cart{}, err
	}
	return c, nil
}
