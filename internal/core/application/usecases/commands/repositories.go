// Package commands contains business operations that modify system state.
// Every command is built through its NewXxxCommand constructor and executed by
// an XxxCommandHandler: validate, open a unit of work, persist, commit, then
// publish.
package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	OrderEventLogFactory interface {
		OrderEventLog() ports.OrderEventLog
	}

	// OrderUoW manages transactions for sales-side order operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DeliveryUoW manages transactions for delivery-side operations.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// OrderEventLogUoW manages transactions for timeline projection.
	OrderEventLogUoW interface {
		TxManager
		OrderEventLogFactory
	}

	OrderEventLogUoWFactory interface {
		Create() OrderEventLogUoW
	}
)

// TrackingNumberGenerator issues tracking numbers at ship time.
type TrackingNumberGenerator interface {
	Generate() (kernel.TrackingNumber, error)
}
