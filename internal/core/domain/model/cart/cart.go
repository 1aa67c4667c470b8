package cart

import (
	"slices"

	"bloom/internal/core/domain/model/attachment"
	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/core/domain/model/shipping"
)

// Cart is the immutable state of a buyer's order in progress.
//
// Line ids are minted by AddLine and never reused, so no two lines share an id.
//
// Example:
//
//	c := cart.New()
//	c, lineID := c.AddLine(input)
//	c = c.SetLineShipping(lineID, resolver.Resolve("11560"))
type Cart struct {
	buyer Buyer
	lines []Line
}

// New returns an empty cart.
func New() Cart {
	return Cart{lines: []Line{}}
}

// Buyer returns the buyer details.
func (c Cart) Buyer() Buyer {
	return c.buyer
}

// Lines returns copies of the lines in insertion order.
func (c Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	for i, l := range c.lines {
		out[i] = l.clone()
	}
	return out
}

// Len returns the number of lines.
func (c Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Line returns a copy of the line with id.
func (c Cart) Line(id kernel.UUID) (Line, bool) {
	if i := c.index(id); i >= 0 {
		return c.lines[i].clone(), true
	}
	return Line{}, false
}

// AddLine appends a line built from in and returns its new id.
func (c Cart) AddLine(in LineInput) (Cart, kernel.UUID) {
	id := kernel.NewUUID()
	lines := make([]Line, 0, len(c.lines)+1)
	lines = append(lines, c.lines...)
	lines = append(lines, newLine(id, in))
	return Cart{buyer: c.buyer, lines: lines}, id
}

// RemoveLine drops the line and returns its images, whose previews the caller must release.
func (c Cart) RemoveLine(id kernel.UUID) (Cart, []attachment.Image) {
	i := c.index(id)
	if i < 0 {
		return c, nil
	}
	released := slices.Clone(c.lines[i].Images)
	lines := make([]Line, 0, len(c.lines)-1)
	lines = append(lines, c.lines[:i]...)
	lines = append(lines, c.lines[i+1:]...)
	return Cart{buyer: c.buyer, lines: lines}, released
}

// SetLineMode switches a line between pickup and delivery. Switching to pickup drops the
// address and the shipping quote.
func (c Cart) SetLineMode(id kernel.UUID, mode DeliveryMode, pickupCity string) Cart {
	return c.update(id, func(l *Line) {
		l.Mode = mode
		l.PickupCity = pickupCity
		if mode == ModePickup {
			l.Address = nil
			l.Shipping = nil
		}
	})
}

// SetLineDeliveryDate replaces the requested date (YYYY-MM-DD, empty to unset).
func (c Cart) SetLineDeliveryDate(id kernel.UUID, date string) Cart {
	return c.update(id, func(l *Line) { l.DeliveryDate = date })
}

// SetLineAddress replaces the address of a delivery line. The shipping quote is kept as is;
// callers resolve it again after a postal code change.
func (c Cart) SetLineAddress(id kernel.UUID, addr DeliveryAddress) Cart {
	return c.update(id, func(l *Line) {
		if l.IsDelivery() {
			l.Address = &addr
		}
	})
}

// SetLineShipping stores the resolver's quote on a delivery line.
func (c Cart) SetLineShipping(id kernel.UUID, q shipping.Quote) Cart {
	return c.update(id, func(l *Line) {
		if l.IsDelivery() {
			l.Shipping = &q
		}
	})
}

// SetLineImages replaces the images and returns the previous list.
func (c Cart) SetLineImages(id kernel.UUID, images []attachment.Image) (Cart, []attachment.Image) {
	var previous []attachment.Image
	next := c.update(id, func(l *Line) {
		previous = l.Images
		l.Images = append([]attachment.Image{}, images...)
	})
	return next, previous
}

// SetBuyer merges p into the buyer.
func (c Cart) SetBuyer(p BuyerPatch) Cart {
	return Cart{buyer: c.buyer.Merge(p), lines: c.lines}
}

// Clear empties the line list and returns every image it held.
func (c Cart) Clear() (Cart, []attachment.Image) {
	var released []attachment.Image
	for _, l := range c.lines {
		released = append(released, l.Images...)
	}
	return Cart{buyer: c.buyer, lines: []Line{}}, released
}

func (c Cart) index(id kernel.UUID) int {
	for i, l := range c.lines {
		if l.ID.IsEqual(id) {
			return i
		}
	}
	return -1
}

func (c Cart) update(id kernel.UUID, fn func(*Line)) Cart {
	i := c.index(id)
	if i < 0 {
		return c
	}
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	l := lines[i].clone()
	fn(&l)
	lines[i] = l
	return Cart{buyer: c.buyer, lines: lines}
}
