package cart_test

import (
	"testing"

	"bloom/internal/core/domain/model/cart"
	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/core/domain/model/shipping"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	resolver := shipping.NewResolver(shipping.DefaultTable())
	in := deliveryInput()
	in.Quantity = 2
	c, delivered := cart.New().AddLine(in)
	c = c.SetLineShipping(delivered, resolver.Resolve("11560"))
	c, _ = c.AddLine(pickupInput())
	c, pending := c.AddLine(deliveryInput())
	c = c.SetLineShipping(pending, shipping.InvalidQuote())

	totals := cart.Summarize(c)

	require.Len(t, totals.Lines, 3)
	assert.Equal(t, "178", totals.Lines[0].Shipping.String())
	assert.Equal(t, "3200", totals.Products.String())
	assert.Equal(t, "178", totals.Shipping.String())
	assert.Equal(t, "3378", totals.Subtotal.String())
	assert.Equal(t, "540", totals.IVA.String())
	assert.Equal(t, "3918", totals.Total.String())
	assert.Equal(t, []kernel.UUID{pending}, totals.PendingShipping)
}

func TestSummarize_EmptyCart(t *testing.T) {
	totals := cart.Summarize(cart.New())

	assert.True(t, totals.Total.IsZero())
	assert.Empty(t, totals.Lines)
	assert.Empty(t, totals.PendingShipping)
}

func TestSummarize_RoundsIVA(t *testing.T) {
	in := pickupInput()
	in.UnitPrice = decimal.RequireFromString("99.90")
	c, _ := cart.New().AddLine(in)

	totals := cart.Summarize(c)

	// 99.90 * 0.16 = 15.984
	assert.Equal(t, "16", totals.IVA.String())
	assert.Equal(t, "115.9", totals.Total.String())
}
