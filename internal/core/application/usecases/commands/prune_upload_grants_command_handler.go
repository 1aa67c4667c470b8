package commands

import (
	"context"
)

// PruneUploadGrantsCommandHandler deletes stale rows from the grant ledger.
type PruneUploadGrantsCommandHandler struct {
	uowFactory UploadGrantUoWFactory
}

func NewPruneUploadGrantsCommandHandler(uowFactory UploadGrantUoWFactory) PruneUploadGrantsCommandHandler {
	return PruneUploadGrantsCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of grants removed.
func (h *PruneUploadGrantsCommandHandler) Handle(ctx context.Context, cmd PruneUploadGrantsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	removed, err := uow.UploadGrantRepository().DeleteExpiredBefore(ctx, cmd.Cutoff())
	if err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return removed, nil
}
