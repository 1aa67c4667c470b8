package commands

import (
	"errors"
	"math"
	"time"

	"bloom/internal/pkg/errs"
	"bloom/internal/pkg/guard"
)

var ErrPruneUploadGrantsCommandIsNotConstructed = errors.New(
	"PruneUploadGrantsCommand must be created via NewPruneUploadGrantsCommand constructor",
)

// PruneUploadGrantsCommand removes grants that expired more than retention before now.
type PruneUploadGrantsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

func NewPruneUploadGrantsCommand(now time.Time, retention time.Duration) (PruneUploadGrantsCommand, error) {
	cmd := PruneUploadGrantsCommand{guard: guard.NewConstructorGuard()}

	if now.IsZero() {
		return PruneUploadGrantsCommand{}, errs.NewValueIsRequiredError("now")
	}
	if retention < 0 {
		return PruneUploadGrantsCommand{}, errs.NewValueIsOutOfRangeError("retention", retention, time.Duration(0), time.Duration(math.MaxInt64))
	}
	cmd.cutoff = now.Add(-retention).UTC()
	return cmd, nil
}

func (c PruneUploadGrantsCommand) Validate() error {
	return c.guard.Validate(ErrPruneUploadGrantsCommandIsNotConstructed)
}

// Cutoff is the expiry before which grants are removed.
func (c PruneUploadGrantsCommand) Cutoff() time.Time {
	return c.cutoff
}
