package cart

// DeliveryAddress is the canonical address schema. Historical field names are mapped onto it at
// the HTTP boundary and never reach the domain.
type DeliveryAddress struct {
	FullName       string
	Phone          string
	PostalCode     string
	Street         string
	ExteriorNumber string
	InteriorNumber string
	Neighborhood   string
	References     string
}
