package cart

// Buyer is the person paying for the order.
type Buyer struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// BuyerPatch carries the fields to overwrite; nil fields are left as they are.
type BuyerPatch struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Email     *string
}

// Merge applies p on top of b.
func (b Buyer) Merge(p BuyerPatch) Buyer {
	if p.FirstName != nil {
		b.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		b.LastName = *p.LastName
	}
	if p.Phone != nil {
		b.Phone = *p.Phone
	}
	if p.Email != nil {
		b.Email = *p.Email
	}
	return b
}
