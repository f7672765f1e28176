package commands

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/events"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// CreateOrderResult carries the created order, or the earlier order when the
// idempotency key was already used (Replayed).
type CreateOrderResult struct {
	Order    *order.Order
	Replayed bool
}

// CreateOrderCommandHandler creates Pending orders and announces them.
//
// Flow: replay check -> availability -> persist -> commit -> publish
// OrderCreated. A failed publish is returned with the persisted order; the
// order is not rolled back.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.ProductCatalog
	publisher  ports.EventPublisher
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	catalog ports.ProductCatalog,
	publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		publisher:  publisher,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	if cmd.IdempotencyKey() != "" {
		existing, err := h.findByKey(ctx, cmd.IdempotencyKey())
		if err != nil {
			return CreateOrderResult{}, err
		}
		if existing != nil {
			return CreateOrderResult{Order: existing, Replayed: true}, nil
		}
	}

	available, err := h.catalog.IsAvailable(ctx, cmd.ProductID(), cmd.Quantity())
	if err != nil {
		return CreateOrderResult{}, err
	}
	if !available {
		return CreateOrderResult{}, errs.NewUnavailableError(cmd.ProductID(), cmd.Quantity().Int())
	}

	now := time.Now().UTC()
	o, err := order.NewOrder(kernel.NewUUID(), cmd.UserID(), cmd.ProductID(), cmd.Quantity().Int(), cmd.IdempotencyKey(), now)
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = h.persist(ctx, o); err != nil {
		if errors.Is(err, errs.ErrConflict) && cmd.IdempotencyKey() != "" {
			// lost a race with a concurrent request carrying the same key
			existing, findErr := h.findByKey(ctx, cmd.IdempotencyKey())
			if findErr == nil && existing != nil {
				return CreateOrderResult{Order: existing, Replayed: true}, nil
			}
		}
		return CreateOrderResult{}, err
	}

	if err = h.publisher.Publish(ctx, events.NewOrderCreated(o, now)); err != nil {
		return CreateOrderResult{Order: o}, err
	}

	return CreateOrderResult{Order: o}, nil
}

func (h *CreateOrderCommandHandler) persist(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// findByKey returns nil, nil when the key is unused.
func (h *CreateOrderCommandHandler) findByKey(ctx context.Context, key string) (*order.Order, error) {
	existing, err := h.uowFactory.Create().OrderRepository().GetByIdempotencyKey(ctx, key)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return existing, nil
}
