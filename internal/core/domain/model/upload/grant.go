package upload

import (
	"errors"
	"fmt"
	"time"

	"bloom/internal/core/domain/model/attachment"
	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/pkg/errs"
	"bloom/internal/pkg/guard"
)

var (
	// ErrGrantIsNotConstructed is returned when using a zero-value Grant.
	ErrGrantIsNotConstructed = errors.New("Grant must be created via NewGrant constructor")
	// ErrObjectKeyIsRequired is returned for a zero-value key.
	ErrObjectKeyIsRequired = errs.NewValueIsRequiredError("object key")
	// ErrTTLIsInvalid is returned for a non-positive lifetime.
	ErrTTLIsInvalid = errs.NewValueIsInvalidError("grant ttl")
)

// IsImageContentType reports whether ct is a well-formed image/* media type.
func IsImageContentType(ct string) bool {
	return attachment.IsImageType(ct)
}

// Grant records one presigned write URL: which object it allows writing, with which content
// type, and until when. Grants for an order let operators find objects left behind by a
// submission that failed after some uploads succeeded.
//
// Example:
//
//	key, _ := upload.ParseObjectKey("orders/…/…/….jpg")
//	grant, err := upload.NewGrant(kernel.NewUUID(), key, "image/jpeg", time.Now(), 15*time.Minute)
type Grant struct {
	id          kernel.UUID
	key         ObjectKey
	contentType string
	issuedAt    time.Time
	expiresAt   time.Time

	guard guard.ConstructorGuard
}

// NewGrant creates a grant valid for ttl from issuedAt.
func NewGrant(id kernel.UUID, key ObjectKey, contentType string, issuedAt time.Time, ttl time.Duration) (*Grant, error) {
	if ttl <= 0 {
		return nil, ErrTTLIsInvalid
	}
	return RestoreGrant(id, key, contentType, issuedAt, issuedAt.Add(ttl))
}

// RestoreGrant rebuilds a grant from storage.
func RestoreGrant(
	id kernel.UUID,
	key ObjectKey,
	contentType string,
	issuedAt, expiresAt time.Time,
) (*Grant, error) {
	g := &Grant{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		g.setID(id),
		g.setKey(key),
		g.setContentType(contentType),
		g.setPeriod(issuedAt, expiresAt),
	); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate ensures the grant was built by a constructor.
func (g *Grant) Validate() error {
	return g.guard.Validate(ErrGrantIsNotConstructed)
}

func (g *Grant) ID() kernel.UUID      { return g.id }
func (g *Grant) Key() ObjectKey       { return g.key }
func (g *Grant) ContentType() string  { return g.contentType }
func (g *Grant) IssuedAt() time.Time  { return g.issuedAt }
func (g *Grant) ExpiresAt() time.Time { return g.expiresAt }

// IsExpired reports whether the URL can no longer be used at now.
func (g *Grant) IsExpired(now time.Time) bool {
	return !now.Before(g.expiresAt)
}

func (g *Grant) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	g.id = id
	return nil
}

func (g *Grant) setKey(key ObjectKey) error {
	if key.IsZero() {
		return ErrObjectKeyIsRequired
	}
	g.key = key
	return nil
}

func (g *Grant) setContentType(ct string) error {
	if !IsImageContentType(ct) {
		return errs.NewValueIsInvalidErrorWithCause("content type", fmt.Errorf("%q is not an image type", ct))
	}
	g.contentType = ct
	return nil
}

func (g *Grant) setPeriod(issuedAt, expiresAt time.Time) error {
	if issuedAt.IsZero() {
		return errs.NewValueIsRequiredError("issued at")
	}
	if !expiresAt.After(issuedAt) {
		return errs.NewValueIsInvalidErrorWithCause(
			"grant period", fmt.Errorf("expiry %s is not after issue %s", expiresAt, issuedAt))
	}
	g.issuedAt = issuedAt.UTC()
	g.expiresAt = expiresAt.UTC()
	return nil
}
