package cart_test

import (
	"strings"
	"testing"

	"bloom/internal/core/domain/model/attachment"
	"bloom/internal/core/domain/model/cart"
	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/core/domain/model/shipping"
	"bloom/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deliveryInput() cart.LineInput {
	return cart.LineInput{
		Product:       cart.Product{ID: "rose", Name: "RAMO ROSE", Subtitle: "24 rosas"},
		UnitPrice:     decimal.NewFromInt(800),
		Quantity:      1,
		Customization: cart.Customization{Title: "Feliz cumpleaños", Message: "Con cariño"},
		Mode:          cart.ModeDelivery,
	}
}

func pickupInput() cart.LineInput {
	in := deliveryInput()
	in.Product = cart.Product{ID: "lino", Name: "RAMO LINO"}
	in.Mode = cart.ModePickup
	in.PickupCity = "CDMX"
	return in
}

func strPtr(s string) *string { return &s }

func TestCart_AddRemoveRoundTrip(t *testing.T) {
	original := cart.New().SetBuyer(cart.BuyerPatch{FirstName: strPtr("Ana")})
	original, _ = original.AddLine(pickupInput())

	withLine, id := original.AddLine(deliveryInput())
	restored, released := withLine.RemoveLine(id)

	assert.Equal(t, original, restored)
	assert.Empty(t, released)
	assert.Equal(t, 2, withLine.Len())
}

func TestCart_AddLine_MintsUniqueIDs(t *testing.T) {
	c := cart.New()
	seen := make(map[kernel.UUID]struct{})

	for range 50 {
		var id kernel.UUID
		c, id = c.AddLine(deliveryInput())
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
	assert.Equal(t, 50, c.Len())
}

func TestCart_IsImmutable(t *testing.T) {
	before, id := cart.New().AddLine(deliveryInput())

	after := before.SetLineAddress(id, cart.DeliveryAddress{Street: "Sócrates"})
	after = after.SetLineShipping(id, shipping.NewResolver(shipping.DefaultTable()).Resolve("11560"))
	after = after.SetBuyer(cart.BuyerPatch{Email: strPtr("ana@example.com")})

	line, ok := before.Line(id)
	require.True(t, ok)
	assert.Nil(t, line.Address)
	assert.Nil(t, line.Shipping)
	assert.Empty(t, before.Buyer().Email)

	line, _ = after.Line(id)
	require.NotNil(t, line.Address)
	line.Address.Street = "mutated"
	again, _ := after.Line(id)
	assert.Equal(t, "Sócrates", again.Address.Street)
}

func TestCart_SetLineAddress_KeepsShipping(t *testing.T) {
	resolver := shipping.NewResolver(shipping.DefaultTable())
	c, id := cart.New().AddLine(deliveryInput())
	c = c.SetLineAddress(id, cart.DeliveryAddress{PostalCode: "11560"})
	c = c.SetLineShipping(id, resolver.Resolve("11560"))

	c = c.SetLineAddress(id, cart.DeliveryAddress{PostalCode: "99999"})

	line, _ := c.Line(id)
	require.NotNil(t, line.Shipping)
	assert.Equal(t, "cdmx", line.Shipping.ZoneID)
	assert.Equal(t, "99999", line.Address.PostalCode)
}

func TestCart_PickupLineIgnoresDeliveryDetails(t *testing.T) {
	c, id := cart.New().AddLine(pickupInput())

	c = c.SetLineAddress(id, cart.DeliveryAddress{Street: "X"})
	c = c.SetLineShipping(id, shipping.InvalidQuote())

	line, _ := c.Line(id)
	assert.Nil(t, line.Address)
	assert.Nil(t, line.Shipping)
}

func TestCart_SetLineMode_ToPickupDropsDeliveryDetails(t *testing.T) {
	c, id := cart.New().AddLine(deliveryInput())
	c = c.SetLineAddress(id, cart.DeliveryAddress{Street: "X"})
	c = c.SetLineShipping(id, shipping.InvalidQuote())

	c = c.SetLineMode(id, cart.ModePickup, "CDMX")

	line, _ := c.Line(id)
	assert.Equal(t, cart.ModePickup, line.Mode)
	assert.Equal(t, "CDMX", line.PickupCity)
	assert.Nil(t, line.Address)
	assert.Nil(t, line.Shipping)
}

func TestCart_UnknownLineIsNoOp(t *testing.T) {
	c, _ := cart.New().AddLine(deliveryInput())
	unknown := kernel.NewUUID()

	assert.Equal(t, c, c.SetLineAddress(unknown, cart.DeliveryAddress{Street: "X"}))
	assert.Equal(t, c, c.SetLineDeliveryDate(unknown, "2030-01-02"))
	removed, released := c.RemoveLine(unknown)
	assert.Equal(t, c, removed)
	assert.Nil(t, released)
	_, ok := c.Line(unknown)
	assert.False(t, ok)
}

func TestCart_SetLineImagesAndClear(t *testing.T) {
	img1 := attachment.Image{ID: kernel.NewUUID(), OriginalName: "a.jpg", Preview: "p1"}
	img2 := attachment.Image{ID: kernel.NewUUID(), OriginalName: "b.jpg", Preview: "p2"}
	c, first := cart.New().AddLine(deliveryInput())
	c, second := c.AddLine(pickupInput())

	c, previous := c.SetLineImages(first, []attachment.Image{img1})
	assert.Empty(t, previous)
	c, previous = c.SetLineImages(first, []attachment.Image{img2})
	assert.Equal(t, []attachment.Image{img1}, previous)
	c, _ = c.SetLineImages(second, []attachment.Image{img1})

	cleared, released := c.Clear()

	assert.True(t, cleared.IsEmpty())
	assert.ElementsMatch(t, []attachment.Image{img1, img2}, released)
	assert.Equal(t, 2, c.Len())
}

func TestBuyer_Merge(t *testing.T) {
	b := cart.Buyer{FirstName: "Ana", LastName: "López", Phone: "5512345678"}

	merged := b.Merge(cart.BuyerPatch{Phone: strPtr("525512345678"), Email: strPtr("ana@example.com")})

	assert.Equal(t, cart.Buyer{
		FirstName: "Ana",
		LastName:  "López",
		Phone:     "525512345678",
		Email:     "ana@example.com",
	}, merged)
}

func TestLineInput_Validate(t *testing.T) {
	t.Run("should accept a valid input", func(t *testing.T) {
		in := deliveryInput()
		in.Customization.Title = strings.Repeat("ñ", cart.MaxTitleLength)
		in.Customization.Message = strings.Repeat("é", cart.MaxMessageLength)

		require.NoError(t, in.Validate())
	})

	t.Run("should reject every broken field", func(t *testing.T) {
		in := cart.LineInput{
			UnitPrice:     decimal.NewFromInt(-1),
			Quantity:      0,
			Customization: cart.Customization{Title: strings.Repeat("a", 61), Message: strings.Repeat("a", 241)},
			Mode:          "drone",
		}

		err := in.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "title length")
		assert.Contains(t, err.Error(), "message length")
		assert.Contains(t, err.Error(), "quantity")
	})
}
