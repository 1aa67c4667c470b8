package ports

import (
	"context"
	"time"

	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/core/domain/model/upload"
)

// UploadGrantRepository persists the ledger of issued upload grants.
type UploadGrantRepository interface {
	// Add stores a new grant.
	Add(ctx context.Context, grant *upload.Grant) error

	// Get retrieves a grant by id.
	Get(ctx context.Context, id kernel.UUID) (*upload.Grant, error)

	// DeleteExpiredBefore removes grants whose expiry is earlier than cutoff and returns how many
	// were removed.
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// URLSigner issues a V4 signed PUT URL for an object, bound to a content type.
type URLSigner interface {
	SignPut(ctx context.Context, key, contentType string, expires time.Time) (string, error)
}
