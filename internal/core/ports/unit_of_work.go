package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the current transaction.
	OrderRepository() OrderRepository

	// DeliveryRepository returns a repository bound to the current transaction.
	DeliveryRepository() DeliveryRepository

	// OrderEventLog returns an event log bound to the current transaction.
	OrderEventLog() OrderEventLog
}
