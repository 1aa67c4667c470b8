// Package ports defines the contracts between the checkout core and the outside world: the
// endpoints a submission talks to, and the persistence and signing used by the upload service.
package ports

import (
	"context"
	"io"
	"time"

	"bloom/internal/core/domain/model/checkout"
)

// PresignedUpload is a single-use, short-lived PUT URL.
type PresignedUpload struct {
	URL       string
	ExpiresAt time.Time
}

// UploadPresigner requests a write credential for one storage key.
type UploadPresigner interface {
	Presign(ctx context.Context, key, contentType string) (PresignedUpload, error)
}

// ObjectUploader writes raw bytes to a presigned URL with the content type it was signed for.
type ObjectUploader interface {
	Put(ctx context.Context, url, contentType string, body io.Reader, size int64) error
}

// CreatedOrder is the order-creation endpoint's answer. OrderID may be empty when the endpoint
// does not echo it; CheckoutURL is an optional payment reference.
type CreatedOrder struct {
	OrderID     string
	CheckoutURL string
}

// OrderGateway posts a complete draft to the order-creation endpoint.
type OrderGateway interface {
	CreateOrder(ctx context.Context, draft checkout.OrderDraft) (CreatedOrder, error)
}

// Navigator sends the buyer to a destination once the order exists.
type Navigator interface {
	Navigate(ctx context.Context, destination string) error
}
