// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every command is built by a constructor that validates it and is run by a Handler with a
// Handle(ctx, cmd) method.
package commands

import (
	"context"

	"bloom/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// UploadGrantRepoFactory provides access to the grant ledger within a transaction.
	UploadGrantRepoFactory interface {
		UploadGrantRepository() ports.UploadGrantRepository
	}

	// UploadGrantUoW manages transactions for grant ledger operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.UploadGrantRepository().Add(ctx, grant)
	//   err = uow.Commit(ctx)
	UploadGrantUoW interface {
		TxManager
		UploadGrantRepoFactory
	}

	// UploadGrantUoWFactory creates new grant unit of work instances.
	UploadGrantUoWFactory interface {
		Create() UploadGrantUoW
	}
)
