package services_test

import (
	"testing"
	"time"

	"bloom/internal/core/domain/model/cart"
	"bloom/internal/core/domain/model/shipping"
	"bloom/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *services.ValidationEngine {
	return services.NewValidationEngine(
		services.WithCalendar(services.NewDeliveryCalendar(services.WithHolidays("2030-05-10"))),
		services.WithClock(func() time.Time { return monday }),
	)
}

func str(s string) *string { return &s }

func validBuyer() cart.BuyerPatch {
	return cart.BuyerPatch{
		FirstName: str("Ana"),
		LastName:  str("López"),
		Phone:     str("525512345678"),
		Email:     str("ana@example.com"),
	}
}

func validAddress() cart.DeliveryAddress {
	return cart.DeliveryAddress{
		FullName:       "María Pérez",
		Phone:          "5512345678",
		PostalCode:     "11560",
		Street:         "Sócrates",
		ExteriorNumber: "128",
		Neighborhood:   "Polanco",
	}
}

func lineInput(mode cart.DeliveryMode) cart.LineInput {
	return cart.LineInput{
		Product:   cart.Product{ID: "rose", Name: "RAMO ROSE"},
		UnitPrice: decimal.NewFromInt(800),
		Quantity:  1,
		Mode:      mode,
	}
}

func readyCart() cart.Cart {
	c := cart.New().SetBuyer(validBuyer())
	c, id := c.AddLine(lineInput(cart.ModeDelivery))
	c = c.SetLineAddress(id, validAddress())
	return c.SetLineShipping(id, shipping.NewResolver(shipping.DefaultTable()).Resolve("11560"))
}

func TestValidationEngine_EmptyCart(t *testing.T) {
	t.Run("should block with only the empty cart message", func(t *testing.T) {
		v := newEngine().Evaluate(cart.New())

		assert.Equal(t, []string{services.MsgCartEmpty}, v.BlockingMessages)
		assert.False(t, v.BuyerOK)
		assert.Empty(t, v.LineIssues)
		assert.False(t, v.CanCheckout())
	})

	t.Run("should still report buyer readiness", func(t *testing.T) {
		v := newEngine().Evaluate(cart.New().SetBuyer(validBuyer()))

		assert.Equal(t, []string{services.MsgCartEmpty}, v.BlockingMessages)
		assert.True(t, v.BuyerOK)
	})
}

func TestValidationEngine_ReadyCart(t *testing.T) {
	v := newEngine().Evaluate(readyCart())

	assert.True(t, v.BuyerOK)
	assert.Empty(t, v.LineIssues)
	assert.Empty(t, v.BlockingMessages)
	assert.True(t, v.CanCheckout())
}

func TestValidationEngine_Buyer(t *testing.T) {
	c := readyCart().SetBuyer(cart.BuyerPatch{
		FirstName: str("  "),
		LastName:  str(""),
		Phone:     str("12345"),
		Email:     str("ana@"),
	})

	v := newEngine().Evaluate(c)

	assert.False(t, v.BuyerOK)
	assert.Equal(t, []string{
		services.MsgFirstNameRequired,
		services.MsgLastNameRequired,
		services.MsgPhoneInvalid,
		services.MsgEmailInvalid,
	}, v.BlockingMessages)
}

func TestValidationEngine_BuyerPhoneShapes(t *testing.T) {
	for phone, ok := range map[string]bool{
		"525512345678":     true,
		"+52 55 1234 5678": true,
		"15551234567":      true,
		"5512345678":       true,
		"12345":            false,
		"535512345678":     false,
		"":                 false,
	} {
		t.Run(phone, func(t *testing.T) {
			v := newEngine().Evaluate(readyCart().SetBuyer(cart.BuyerPatch{Phone: str(phone)}))

			assert.Equal(t, ok, v.BuyerOK)
		})
	}
}

func TestValidationEngine_MissingShippingBlocksCheckout(t *testing.T) {
	c := cart.New().SetBuyer(validBuyer())
	c, id := c.AddLine(lineInput(cart.ModeDelivery))
	addr := validAddress()
	addr.PostalCode = ""
	c = c.SetLineAddress(id, addr)
	c = c.SetLineShipping(id, shipping.NewResolver(shipping.DefaultTable()).Resolve(""))

	v := newEngine().Evaluate(c)

	assert.True(t, v.BuyerOK)
	assert.Equal(t, []string{services.MsgPostalCodeInvalid, services.MsgShippingNotResolved}, v.LineIssues[id])
	require.Len(t, v.BlockingMessages, 1)
	assert.Equal(t,
		"item 1 (RAMO ROSE): postal code must be 5 digits; shipping has not been resolved for this postal code",
		v.BlockingMessages[0])
}

func TestValidationEngine_DeliveryLineWithoutDetails(t *testing.T) {
	c := cart.New().SetBuyer(validBuyer())
	c, id := c.AddLine(lineInput(cart.ModeDelivery))

	v := newEngine().Evaluate(c)

	assert.Equal(t, []string{
		services.MsgRecipientRequired,
		services.MsgStreetRequired,
		services.MsgNeighborhoodRequired,
		services.MsgRecipientPhoneInvalid,
		services.MsgPostalCodeInvalid,
		services.MsgShippingNotResolved,
	}, v.LineIssues[id])
}

func TestValidationEngine_PickupLinesAreExempt(t *testing.T) {
	c := cart.New().SetBuyer(validBuyer())
	in := lineInput(cart.ModePickup)
	in.PickupCity = "CDMX"
	c, _ = c.AddLine(in)

	v := newEngine().Evaluate(c)

	assert.True(t, v.CanCheckout())
}

func TestValidationEngine_LineOrderIsStable(t *testing.T) {
	c := readyCart()
	c, second := c.AddLine(lineInput(cart.ModeDelivery))
	in := lineInput(cart.ModePickup)
	in.Product.Name = "RAMO LINO"
	in.DeliveryDate = "2030-05-12"
	c, third := c.AddLine(in)

	v := newEngine().Evaluate(c)

	require.Len(t, v.BlockingMessages, 2)
	assert.Contains(t, v.BlockingMessages[0], "item 2 (RAMO ROSE)")
	assert.Equal(t, "item 3 (RAMO LINO): no deliveries on Sundays", v.BlockingMessages[1])
	assert.Contains(t, v.LineIssues, second)
	assert.Equal(t, []string{services.ErrDateSunday.Error()}, v.LineIssues[third])
	assert.Len(t, v.LineIssues, 2)
}

func TestValidationEngine_DeliveryDateUsesQuotedCity(t *testing.T) {
	engine := services.NewValidationEngine(
		services.WithCalendar(services.NewDeliveryCalendar(services.WithBlockedDates("Monterrey", "2030-05-08"))),
		services.WithClock(func() time.Time { return monday }),
	)
	c := cart.New().SetBuyer(validBuyer())
	c, id := c.AddLine(lineInput(cart.ModeDelivery))
	addr := validAddress()
	addr.PostalCode = "64000"
	c = c.SetLineAddress(id, addr)
	c = c.SetLineShipping(id, shipping.NewResolver(shipping.DefaultTable()).Resolve("64000"))
	c = c.SetLineDeliveryDate(id, "2030-05-08")

	v := engine.Evaluate(c)

	assert.Equal(t, []string{services.ErrDateBlocked.Error()}, v.LineIssues[id])
}
