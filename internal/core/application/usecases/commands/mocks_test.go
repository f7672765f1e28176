package commands_test

import (
	"context"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/events"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByIdempotencyKey(ctx context.Context, key string) (*order.Order, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, status *order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	return m.Called(ctx, o, expected).Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderRepository) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) List(ctx context.Context, status *delivery.Status) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) UpdateStatus(ctx context.Context, d *delivery.Delivery, expected delivery.Status) error {
	return m.Called(ctx, d, expected).Error(0)
}

type MockOrderEventLog struct{ mock.Mock }

func (m *MockOrderEventLog) Append(ctx context.Context, record events.Record) (bool, error) {
	args := m.Called(ctx, record)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderEventLog) ListByOrderID(ctx context.Context, orderID kernel.UUID) ([]events.Record, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]events.Record), args.Error(1)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error    { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error   { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	return m.Called().Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	return m.Called().Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) OrderEventLog() ports.OrderEventLog {
	return m.Called().Get(0).(ports.OrderEventLog)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	return m.Called().Get(0).(commands.OrderUoW)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return m.Called().Get(0).(commands.DeliveryUoW)
}

type MockOrderEventLogUoWFactory struct{ mock.Mock }

func (m *MockOrderEventLogUoWFactory) Create() commands.OrderEventLogUoW {
	return m.Called().Get(0).(commands.OrderEventLogUoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

type MockCatalog struct{ mock.Mock }

func (m *MockCatalog) IsAvailable(ctx context.Context, productID string, quantity kernel.Quantity) (bool, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Bool(0), args.Error(1)
}

type fixedTracking struct {
	tn  kernel.TrackingNumber
	err error
}

func (f fixedTracking) Generate() (kernel.TrackingNumber, error) { return f.tn, f.err }
