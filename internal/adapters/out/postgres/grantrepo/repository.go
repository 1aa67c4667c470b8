package grantrepo

import (
	"context"
	"errors"
	"time"

	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/core/domain/model/upload"
	"bloom/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUploadGrantRepository implements ports.UploadGrantRepository using GORM.
type GormUploadGrantRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormUploadGrantRepository(db *gorm.DB, tracker aggregateTracker) *GormUploadGrantRepository {
	return &GormUploadGrantRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a grant. A second grant for the same object key violates the unique index.
func (r *GormUploadGrantRepository) Add(ctx context.Context, grant *upload.Grant) error {
	if err := grant.Validate(); err != nil {
		return err
	}

	dto := fromDomain(grant)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(grant.ID(), grant)
	return nil
}

func (r *GormUploadGrantRepository) Get(ctx context.Context, id kernel.UUID) (*upload.Grant, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UploadGrantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("upload grant", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormUploadGrantRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", cutoff.UTC()).Delete(&UploadGrantDTO{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
