package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrDeleteOrderCommandIsNotConstructed = errors.New(
		"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
	)
	ErrDeleteAllOrdersCommandIsNotConstructed = errors.New(
		"DeleteAllOrdersCommand must be created via NewDeleteAllOrdersCommand constructor",
	)
)

// DeleteOrderCommand removes one order. Deleting an unknown or malformed id
// succeeds without effect.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	valid   bool
	guard   guard.ConstructorGuard
}

func NewDeleteOrderCommand(rawID string) DeleteOrderCommand {
	cmd := DeleteOrderCommand{guard: guard.NewConstructorGuard()}
	if id, err := kernel.UUIDFromString(rawID); err == nil && id.Validate() == nil {
		cmd.orderID = id
		cmd.valid = true
	}
	return cmd
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) OrderID() kernel.UUID { return c.orderID }

// DeleteAllOrdersCommand empties the orders table. Administrative only.
type DeleteAllOrdersCommand struct {
	guard guard.ConstructorGuard
}

func NewDeleteAllOrdersCommand() DeleteAllOrdersCommand {
	return DeleteAllOrdersCommand{guard: guard.NewConstructorGuard()}
}

func (c DeleteAllOrdersCommand) Validate() error {
	return c.guard.Validate(ErrDeleteAllOrdersCommandIsNotConstructed)
}
