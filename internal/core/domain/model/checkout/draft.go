package checkout

import (
	"path"
	"strings"

	"bloom/internal/core/domain/model/attachment"
	"bloom/internal/core/domain/model/cart"
	"bloom/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

const (
	// DefaultCity is used when no line reveals where the order is fulfilled.
	DefaultCity = "CDMX"

	defaultImageExt = "jpg"
	maxKeyExtLength = 10
)

// OrderDraft is the order as sent to the order-creation endpoint. It exists only during a
// submission and is built from a cart snapshot.
type OrderDraft struct {
	OrderID kernel.UUID
	City    string
	Buyer   cart.Buyer
	Items   []ItemDescriptor
}

// ItemDescriptor describes one cart line under a fresh item id.
type ItemDescriptor struct {
	ItemID        kernel.UUID
	LineID        kernel.UUID
	Product       cart.Product
	UnitPrice     decimal.Decimal
	Quantity      int
	Customization cart.Customization
	Mode          cart.DeliveryMode
	PickupCity    string
	DeliveryDate  string
	Address       *cart.DeliveryAddress
	Images        []ImageUpload
}

// ImageUpload is an image bound to the storage key it will be written to.
type ImageUpload struct {
	Key         string
	ContentType string
	Name        string
	Size        int64
	Payload     attachment.Payload
}

// StorageKey derives orders/{orderId}/{itemId}/{fileId}.{ext}. The extension is taken from name,
// lower-cased, and defaults to jpg when it is missing or is not 1 to 10 ASCII letters and digits.
func StorageKey(orderID, itemID, fileID kernel.UUID, name string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if !isKeyExtension(ext) {
		ext = defaultImageExt
	}
	return "orders/" + orderID.String() + "/" + itemID.String() + "/" + fileID.String() + "." + ext
}

// BuildDraft assembles the draft for snapshot under orderID. Every line gets a fresh item id and
// every image a fresh file id. Phones are normalized to their country-prefixed form.
func BuildDraft(orderID kernel.UUID, snapshot cart.Cart) OrderDraft {
	lines := snapshot.Lines()
	buyer := snapshot.Buyer()
	buyer.Phone = kernel.NormalizePhone(buyer.Phone)

	d := OrderDraft{
		OrderID: orderID,
		City:    InferCity(lines),
		Buyer:   buyer,
		Items:   make([]ItemDescriptor, 0, len(lines)),
	}
	for _, l := range lines {
		item := ItemDescriptor{
			ItemID:        kernel.NewUUID(),
			LineID:        l.ID,
			Product:       l.Product,
			UnitPrice:     l.UnitPrice,
			Quantity:      l.Quantity,
			Customization: l.Customization,
			Mode:          l.Mode,
			PickupCity:    l.PickupCity,
			DeliveryDate:  l.DeliveryDate,
			Images:        make([]ImageUpload, 0, len(l.Images)),
		}
		if l.IsDelivery() && l.Address != nil {
			addr := *l.Address
			addr.Phone = kernel.NormalizePhone(addr.Phone)
			item.Address = &addr
		}
		for _, img := range l.Images {
			item.Images = append(item.Images, ImageUpload{
				Key:         StorageKey(orderID, item.ItemID, kernel.NewUUID(), img.OriginalName),
				ContentType: img.MimeType,
				Name:        img.OriginalName,
				Size:        img.SizeBytes,
				Payload:     img.Payload,
			})
		}
		d.Items = append(d.Items, item)
	}
	return d
}

// Uploads lists every image of the draft in line order, then image order.
func (d OrderDraft) Uploads() []ImageUpload {
	var out []ImageUpload
	for _, item := range d.Items {
		out = append(out, item.Images...)
	}
	return out
}

// InferCity picks the city of the first delivery line with a resolved zone city, else the first
// pickup city, else DefaultCity.
func InferCity(lines []cart.Line) string {
	for _, l := range lines {
		if l.IsDelivery() && l.Shipping != nil && l.Shipping.Valid && l.Shipping.City != "" {
			return l.Shipping.City
		}
	}
	for _, l := range lines {
		if !l.IsDelivery() && l.PickupCity != "" {
			return l.PickupCity
		}
	}
	return DefaultCity
}

func isKeyExtension(ext string) bool {
	if ext == "" || len(ext) > maxKeyExtLength {
		return false
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
