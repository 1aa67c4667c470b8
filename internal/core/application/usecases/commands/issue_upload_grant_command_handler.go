package commands

import (
	"context"
	"fmt"
	"time"

	"bloom/internal/core/domain/model/kernel"
	"bloom/internal/core/domain/model/upload"
	"bloom/internal/core/ports"
)

// DefaultUploadGrantTTL is how long a signed upload URL stays usable.
const DefaultUploadGrantTTL = 15 * time.Minute

// IssuedUploadGrant is the answer to a presign request.
type IssuedUploadGrant struct {
	GrantID   kernel.UUID
	URL       string
	ExpiresAt time.Time
}

// IssueUploadGrantCommandHandler signs a PUT URL for a checkout image and records the grant in
// the ledger. The URL is signed before the transaction starts so a signer failure leaves no row.
type IssueUploadGrantCommandHandler struct {
	uowFactory UploadGrantUoWFactory
	signer     ports.URLSigner
	ttl        time.Duration
	now        func() time.Time
}

// NewIssueUploadGrantCommandHandler creates the handler. A non-positive ttl falls back to
// DefaultUploadGrantTTL and a nil clock to time.Now.
func NewIssueUploadGrantCommandHandler(
	uowFactory UploadGrantUoWFactory,
	signer ports.URLSigner,
	ttl time.Duration,
	now func() time.Time,
) IssueUploadGrantCommandHandler {
	if ttl <= 0 {
		ttl = DefaultUploadGrantTTL
	}
	if now == nil {
		now = time.Now
	}
	return IssueUploadGrantCommandHandler{uowFactory: uowFactory, signer: signer, ttl: ttl, now: now}
}

func (h *IssueUploadGrantCommandHandler) Handle(
	ctx context.Context,
	cmd IssueUploadGrantCommand,
) (IssuedUploadGrant, error) {
	if err := cmd.Validate(); err != nil {
		return IssuedUploadGrant{}, err
	}

	grant, err := upload.NewGrant(kernel.NewUUID(), cmd.Key(), cmd.ContentType(), h.now(), h.ttl)
	if err != nil {
		return IssuedUploadGrant{}, err
	}

	signed, err := h.signer.SignPut(ctx, grant.Key().String(), grant.ContentType(), grant.ExpiresAt())
	if err != nil {
		return IssuedUploadGrant{}, fmt.Errorf("sign %s: %w", grant.Key(), err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return IssuedUploadGrant{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UploadGrantRepository().Add(ctx, grant); err != nil {
		return IssuedUploadGrant{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return IssuedUploadGrant{}, err
	}

	return IssuedUploadGrant{GrantID: grant.ID(), URL: signed, ExpiresAt: grant.ExpiresAt()}, nil
}
