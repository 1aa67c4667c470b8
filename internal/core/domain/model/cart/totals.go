package cart

import (
	"bloom/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// IVARate is the value added tax applied to the subtotal.
var IVARate = decimal.RequireFromString("0.16")

// LineTotals is the cost breakdown of one line.
type LineTotals struct {
	LineID   kernel.UUID
	Products decimal.Decimal
	Shipping decimal.Decimal
}

// Totals is the cost summary shown before checkout. Shipping only counts delivery lines with a
// valid quote; the rest are listed in PendingShipping.
type Totals struct {
	Lines           []LineTotals
	Products        decimal.Decimal
	Shipping        decimal.Decimal
	Subtotal        decimal.Decimal
	IVA             decimal.Decimal
	Total           decimal.Decimal
	PendingShipping []kernel.UUID
}

// Summarize computes totals for c. Shipping is charged per unit and IVA is rounded to whole pesos.
func Summarize(c Cart) Totals {
	t := Totals{
		Lines:           make([]LineTotals, 0, len(c.lines)),
		PendingShipping: []kernel.UUID{},
	}
	for _, l := range c.lines {
		lt := LineTotals{LineID: l.ID, Products: l.Subtotal(), Shipping: decimal.Zero}
		if l.IsDelivery() {
			if l.Shipping != nil && l.Shipping.Valid {
				lt.Shipping = l.Shipping.Cost.Mul(decimal.NewFromInt(int64(l.Quantity)))
			} else {
				t.PendingShipping = append(t.PendingShipping, l.ID)
			}
		}
		t.Products = t.Products.Add(lt.Products)
		t.Shipping = t.Shipping.Add(lt.Shipping)
		t.Lines = append(t.Lines, lt)
	}
	t.Subtotal = t.Products.Add(t.Shipping)
	t.IVA = t.Subtotal.Mul(IVARate).Round(0)
	t.Total = t.Subtotal.Add(t.IVA)
	return t
}
