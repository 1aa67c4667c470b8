// Package grantrepo persists the ledger of presigned upload grants.
package grantrepo

import (
	"time"

	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/core/domain/model/upload"

	"github.com/google/uuid"
)

// UploadGrantDTO is one row of upload_grants. The key's UUID parts are stored in their own
// columns so grants can be listed per order without parsing keys in SQL.
type UploadGrantDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ObjectKey   string    `gorm:"type:varchar(200);uniqueIndex;not null"`
	OrderID     uuid.UUID `gorm:"type:uuid;index;not null"`
	ItemID      uuid.UUID `gorm:"type:uuid;not null"`
	FileID      uuid.UUID `gorm:"type:uuid;not null"`
	ContentType string    `gorm:"type:varchar(100);not null"`
	IssuedAt    time.Time `gorm:"not null"`
	ExpiresAt   time.Time `gorm:"index;not null"`
}

func (UploadGrantDTO) TableName() string {
	return "upload_grants"
}

func fromDomain(g *upload.Grant) UploadGrantDTO {
	key := g.Key()
	return UploadGrantDTO{
		ID:          g.ID().Bytes(),
		ObjectKey:   key.String(),
		OrderID:     key.OrderID().Bytes(),
		ItemID:      key.ItemID().Bytes(),
		FileID:      key.FileID().Bytes(),
		ContentType: g.ContentType(),
		IssuedAt:    g.IssuedAt(),
		ExpiresAt:   g.ExpiresAt(),
	}
}

func toDomain(dto UploadGrantDTO) (*upload.Grant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	key, err := upload.ParseObjectKey(dto.ObjectKey)
	if err != nil {
		return nil, err
	}
	return upload.RestoreGrant(id, key, dto.ContentType, dto.IssuedAt, dto.ExpiresAt)
}
