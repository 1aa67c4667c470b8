package orderapi

import (
	"bloom/internal/core/domain/model/checkout"
)

// orderDraftDTO is the JSON body of the order-creation request. Its field names are the ones the
// order query and admin status endpoints already read.
type orderDraftDTO struct {
	OrderID string    `json:"orderId"`
	City    string    `json:"city"`
	Buyer   buyerDTO  `json:"buyer"`
	Items   []itemDTO `json:"items"`
}

type buyerDTO struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type itemDTO struct {
	ItemID       string       `json:"itemId"`
	Product      productDTO   `json:"product"`
	UnitPrice    float64      `json:"unitPrice"`
	Quantity     int          `json:"quantity"`
	Message      *messageDTO  `json:"message,omitempty"`
	DeliveryMode string       `json:"deliveryMode"`
	PickupCity   string       `json:"pickupCity,omitempty"`
	DeliveryDate string       `json:"deliveryDate,omitempty"`
	Delivery     *deliveryDTO `json:"delivery,omitempty"`
	Images       []imageDTO   `json:"images"`
}

type productDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Subtitle string `json:"subtitle,omitempty"`
}

type messageDTO struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type deliveryDTO struct {
	Name    string     `json:"name"`
	Phone   string     `json:"phone"`
	Address addressDTO `json:"address"`
}

type addressDTO struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Interior   string `json:"interior,omitempty"`
	Town       string `json:"town"`
	CP         string `json:"cp"`
	References string `json:"references,omitempty"`
}

type imageDTO struct {
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Name        string `json:"name"`
	Size        int64  `json:"size"`
}

func fromDraft(d checkout.OrderDraft) orderDraftDTO {
	dto := orderDraftDTO{
		OrderID: d.OrderID.String(),
		City:    d.City,
		Buyer: buyerDTO{
			FirstName: d.Buyer.FirstName,
			LastName:  d.Buyer.LastName,
			Phone:     d.Buyer.Phone,
			Email:     d.Buyer.Email,
		},
		Items: make([]itemDTO, 0, len(d.Items)),
	}
	for _, it := range d.Items {
		item := itemDTO{
			ItemID: it.ItemID.String(),
			Product: productDTO{
				ID:       it.Product.ID,
				Name:     it.Product.Name,
				Subtitle: it.Product.Subtitle,
			},
			UnitPrice:    it.UnitPrice.InexactFloat64(),
			Quantity:     it.Quantity,
			DeliveryMode: string(it.Mode),
			PickupCity:   it.PickupCity,
			DeliveryDate: it.DeliveryDate,
			Images:       make([]imageDTO, 0, len(it.Images)),
		}
		if it.Customization.Title != "" || it.Customization.Message != "" {
			item.Message = &messageDTO{Title: it.Customization.Title, Message: it.Customization.Message}
		}
		if a := it.Address; a != nil {
			item.Delivery = &deliveryDTO{
				Name:  a.FullName,
				Phone: a.Phone,
				Address: addressDTO{
					Street:     a.Street,
					Number:     a.ExteriorNumber,
					Interior:   a.InteriorNumber,
					Town:       a.Neighborhood,
					CP:         a.PostalCode,
					References: a.References,
				},
			}
		}
		for _, img := range it.Images {
			item.Images = append(item.Images, imageDTO{
				Key:         img.Key,
				ContentType: img.ContentType,
				Name:        img.Name,
				Size:        img.Size,
			})
		}
		dto.Items = append(dto.Items, item)
	}
	return dto
}
