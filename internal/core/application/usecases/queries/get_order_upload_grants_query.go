package queries

import (
	"errors"
	"time"

	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/pkg/guard"
)

var ErrGetOrderUploadGrantsQueryIsNotConstructed = errors.New(
	"GetOrderUploadGrantsQuery must be created via NewGetOrderUploadGrantsQuery constructor",
)

// GetOrderUploadGrantsQuery lists the presigned uploads issued for one client order id. Operators
// use it to find images left in storage by a submission that failed after some uploads.
//
// Example:
//
//	query, err := NewGetOrderUploadGrantsQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	grants, err := handler.Handle(ctx, query)
type GetOrderUploadGrantsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderUploadGrantsQuery(orderID kernel.UUID) (GetOrderUploadGrantsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderUploadGrantsQuery{}, err
	}
	return GetOrderUploadGrantsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderUploadGrantsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderUploadGrantsQueryIsNotConstructed)
}

func (q GetOrderUploadGrantsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderUploadGrantsQueryResponse is one ledger row.
type GetOrderUploadGrantsQueryResponse struct {
	GrantID     kernel.UUID
	ItemID      kernel.UUID
	ObjectKey   string
	ContentType string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}
