package commands

import (
	"context"
)

// RecordOrderEventCommandHandler projects log records into the order timeline.
// A record seen twice is stored once.
type RecordOrderEventCommandHandler struct {
	uowFactory OrderEventLogUoWFactory
}

func NewRecordOrderEventCommandHandler(uowFactory OrderEventLogUoWFactory) RecordOrderEventCommandHandler {
	return RecordOrderEventCommandHandler{uowFactory: uowFactory}
}

// Handle reports whether the record was new.
func (h *RecordOrderEventCommandHandler) Handle(ctx context.Context, cmd RecordOrderEventCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	appended, err := uow.OrderEventLog().Append(ctx, cmd.Record())
	if err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return appended, nil
}
