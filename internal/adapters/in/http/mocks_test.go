package http_test

import (
	"context"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/delivery"

	"github.com/stretchr/testify/mock"
)

type MockCreateOrder struct{ mock.Mock }

func (m *MockCreateOrder) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (commands.CreateOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CreateOrderResult), args.Error(1)
}

type MockDeleteOrder struct{ mock.Mock }

func (m *MockDeleteOrder) Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockDeleteAllOrders struct{ mock.Mock }

func (m *MockDeleteAllOrders) Handle(ctx context.Context, cmd commands.DeleteAllOrdersCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockGetOrder struct{ mock.Mock }

func (m *MockGetOrder) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.OrderView), args.Error(1)
}

type MockListOrders struct{ mock.Mock }

func (m *MockListOrders) Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.OrderView), args.Error(1)
}

type MockGetOrderTimeline struct{ mock.Mock }

func (m *MockGetOrderTimeline) Handle(
	ctx context.Context,
	query queries.GetOrderTimelineQuery,
) ([]queries.OrderEventView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.OrderEventView), args.Error(1)
}

type MockShip struct{ mock.Mock }

func (m *MockShip) Handle(ctx context.Context, cmd commands.ShipDeliveryCommand) (*delivery.Delivery, error) {
	args := m.Called(ctx, cmd)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

type MockDeliver struct{ mock.Mock }

func (m *MockDeliver) Handle(ctx context.Context, cmd commands.DeliverDeliveryCommand) (*delivery.Delivery, error) {
	args := m.Called(ctx, cmd)
	d, _ := args.Get(0).(*delivery.Delivery)
	return d, args.Error(1)
}

type MockGetDelivery struct{ mock.Mock }

func (m *MockGetDelivery) Handle(ctx context.Context, query queries.GetDeliveryQuery) (queries.DeliveryView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.DeliveryView), args.Error(1)
}

type MockListDeliveries struct{ mock.Mock }

func (m *MockListDeliveries) Handle(
	ctx context.Context,
	query queries.ListDeliveriesQuery,
) ([]queries.DeliveryView, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.DeliveryView), args.Error(1)
}

type MockPinger struct{ mock.Mock }

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
