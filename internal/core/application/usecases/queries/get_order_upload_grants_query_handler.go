package queries

import (
	"context"

	"bloom/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderUploadGrantsQueryHandler reads the grant ledger with plain SQL.
type GetOrderUploadGrantsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderUploadGrantsQueryHandler(db *gorm.DB) GetOrderUploadGrantsQueryHandler {
	return GetOrderUploadGrantsQueryHandler{db: db}
}

// Handle returns the order's grants, oldest first.
func (h GetOrderUploadGrantsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderUploadGrantsQuery,
) ([]GetOrderUploadGrantsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	grants := make([]GetOrderUploadGrantsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			item_id,
			object_key,
			content_type,
			issued_at,
			expires_at
		FROM upload_grants
		WHERE order_id = ?
		ORDER BY issued_at, object_key
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var grant GetOrderUploadGrantsQueryResponse
		var id, itemID uuid.UUID

		err = rows.Scan(
			&id,
			&itemID,
			&grant.ObjectKey,
			&grant.ContentType,
			&grant.IssuedAt,
			&grant.ExpiresAt,
		)
		if err != nil {
			return nil, err
		}

		if grant.GrantID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if grant.ItemID, err = kernel.UUIDFromBytes(itemID[:]); err != nil {
			return nil, err
		}
		grant.IssuedAt = grant.IssuedAt.UTC()
		grant.ExpiresAt = grant.ExpiresAt.UTC()
		grants = append(grants, grant)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return grants, nil
}
