package commands

import (
	"context"
)

type DeleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDeleteOrderCommandHandler(uowFactory OrderUoWFactory) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory}
}

func (h *DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if !cmd.valid {
		return nil
	}

	return h.uowFactory.Create().OrderRepository().Delete(ctx, cmd.orderID)
}

type DeleteAllOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewDeleteAllOrdersCommandHandler(uowFactory OrderUoWFactory) DeleteAllOrdersCommandHandler {
	return DeleteAllOrdersCommandHandler{uowFactory: uowFactory}
}

func (h *DeleteAllOrdersCommandHandler) Handle(ctx context.Context, cmd DeleteAllOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.uowFactory.Create().OrderRepository().DeleteAll(ctx)
}
