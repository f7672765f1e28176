package rabbitmq_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"orderflow/internal/adapters/in/rabbitmq"
	out "orderflow/internal/adapters/out/rabbitmq"
	"orderflow/internal/core/domain/events"
	"orderflow/internal/core/domain/model/delivery"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/backoff"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAcknowledger struct {
	mock.Mock
}

func (m *MockAcknowledger) Ack(tag uint64, multiple bool) error {
	return m.Called(tag, multiple).Error(0)
}

func (m *MockAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	return m.Called(tag, multiple, requeue).Error(0)
}

func (m *MockAcknowledger) Reject(tag uint64, requeue bool) error {
	return m.Called(tag, requeue).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	return m.Called(key, msg).Error(0)
}

type MockHandler struct {
	mock.Mock
}

func (m *MockHandler) Handle(ctx context.Context, e events.Event) error {
	return m.Called(e).Error(0)
}

const queue = events.QueueOrdersShipped

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func shippedBody(t *testing.T) []byte {
	t.Helper()
	d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), "u1", "p1", 1, time.Now())
	require.NoError(t, err)
	tn, err := kernel.NewTrackingNumber("TRACK-1700000000000-ABCDEFGHI")
	require.NoError(t, err)
	require.NoError(t, d.Ship(tn, time.Now()))

	body, err := events.Encode(events.NewOrderShipped(d, time.Now()))
	require.NoError(t, err)
	return body
}

func newDelivery(ack *MockAcknowledger, body []byte, retries int) amqp.Delivery {
	d := amqp.Delivery{
		Acknowledger: ack,
		DeliveryTag:  7,
		ContentType:  out.ContentType,
		Type:         string(events.TypeOrderShipped),
		Body:         body,
	}
	if retries > 0 {
		d.Headers = amqp.Table{out.HeaderRetryCount: int32(retries)}
	}
	return d
}

func newConsumer(handler rabbitmq.Handler) *rabbitmq.Consumer {
	return rabbitmq.NewConsumer(rabbitmq.Config{
		Queue:       queue,
		Accepts:     []events.Type{events.TypeOrderShipped},
		MaxAttempts: 5,
	}, nil, handler, discard())
}

func TestProcess_SuccessAcks(t *testing.T) {
	ack, pub, handler := new(MockAcknowledger), new(MockPublisher), new(MockHandler)
	handler.On("Handle", mock.AnythingOfType("events.OrderShipped")).Return(nil).Once()
	ack.On("Ack", uint64(7), false).Return(nil).Once()

	newConsumer(handler).Process(t.Context(), pub, newDelivery(ack, shippedBody(t), 0))

	ack.AssertExpectations(t)
	handler.AssertExpectations(t)
	pub.AssertNotCalled(t, "PublishWithContext", mock.Anything, mock.Anything)
}

func TestProcess_PoisonGoesToDeadLetter(t *testing.T) {
	tests := map[string][]byte{
		"malformed json":  []byte("{not json"),
		"unknown type":    []byte(`{"event_type":"OrderLost","order_id":"x","status":"x","timestamp":"2024-01-01T00:00:00Z"}`),
		"unexpected type": nil,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if body == nil {
				var err error
				body, err = events.Encode(events.OrderCreated{
					OrderID: kernel.NewUUID(), UserID: "u1", ProductID: "p1", Quantity: 1,
					Status: "Pending", CreatedAt: time.Now(), Timestamp: time.Now(),
				})
				require.NoError(t, err)
			}

			ack, pub, handler := new(MockAcknowledger), new(MockPublisher), new(MockHandler)
			pub.On("PublishWithContext", out.DeadLetterQueue(queue), mock.MatchedBy(func(msg amqp.Publishing) bool {
				_, hasError := msg.Headers[out.HeaderLastError]
				return hasError && msg.DeliveryMode == amqp.Persistent
			})).Return(nil).Once()
			ack.On("Ack", uint64(7), false).Return(nil).Once()

			newConsumer(handler).Process(t.Context(), pub, newDelivery(ack, body, 0))

			pub.AssertExpectations(t)
			ack.AssertExpectations(t)
			handler.AssertNotCalled(t, "Handle", mock.Anything)
		})
	}
}

func TestProcess_MinimalStatusPayloadsReachHandler(t *testing.T) {
	orderID := kernel.NewUUID().String()
	tests := map[string]struct {
		queue string
		typ   events.Type
		body  string
	}{
		"delivered without shipment data": {
			queue: events.QueueOrdersDelivered,
			typ:   events.TypeOrderDelivered,
			body: `{"event_type":"OrderDelivered","order_id":"` + orderID +
				`","status":"Delivered","delivered_at":"2026-03-01T13:00:00Z","timestamp":"2026-03-01T13:00:00Z"}`,
		},
		"shipped without delivery id": {
			queue: events.QueueOrdersShipped,
			typ:   events.TypeOrderShipped,
			body: `{"event_type":"OrderShipped","order_id":"` + orderID +
				`","status":"Shipped","tracking_number":"TRACK-1700000000000-ABCDEFGHI","shipped_at":"2026-03-01T12:00:00Z"}`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ack, pub, handler := new(MockAcknowledger), new(MockPublisher), new(MockHandler)
			handler.On("Handle", mock.MatchedBy(func(e events.Event) bool {
				return e.Type() == tt.typ && e.AggregateOrderID().String() == orderID
			})).Return(nil).Once()
			ack.On("Ack", uint64(7), false).Return(nil).Once()

			c := rabbitmq.NewConsumer(rabbitmq.Config{
				Queue:   tt.queue,
				Accepts: []events.Type{tt.typ},
			}, nil, handler, discard())
			c.Process(t.Context(), pub, newDelivery(ack, []byte(tt.body), 0))

			handler.AssertExpectations(t)
			ack.AssertExpectations(t)
			pub.AssertNotCalled(t, "PublishWithContext", mock.Anything, mock.Anything)
		})
	}
}

func TestProcess_FailureRepublishesWithIncrementedCount(t *testing.T) {
	ack, pub, handler := new(MockAcknowledger), new(MockPublisher), new(MockHandler)
	handler.On("Handle", mock.Anything).Return(errors.New("store down")).Once()
	pub.On("PublishWithContext", queue, mock.MatchedBy(func(msg amqp.Publishing) bool {
		return msg.Headers[out.HeaderRetryCount] == int32(2)
	})).Return(nil).Once()
	ack.On("Ack", uint64(7), false).Return(nil).Once()

	newConsumer(handler).Process(t.Context(), pub, newDelivery(ack, shippedBody(t), 1))

	pub.AssertExpectations(t)
	ack.AssertExpectations(t)
}

func TestProcess_RepublishFailureRequeues(t *testing.T) {
	ack, pub, handler := new(MockAcknowledger), new(MockPublisher), new(MockHandler)
	handler.On("Handle", mock.Anything).Return(errors.New("store down")).Once()
	pub.On("PublishWithContext", queue, mock.Anything).Return(errors.New("channel closed")).Once()
	ack.On("Nack", uint64(7), false, true).Return(nil).Once()

	newConsumer(handler).Process(t.Context(), pub, newDelivery(ack, shippedBody(t), 0))

	ack.AssertExpectations(t)
	ack.AssertNotCalled(t, "Ack", mock.Anything, mock.Anything)
}

func TestProcess_ExhaustedAttemptsDeadLetter(t *testing.T) {
	ack, pub, handler := new(MockAcknowledger), new(MockPublisher), new(MockHandler)
	handler.On("Handle", mock.Anything).Return(errors.New("invalid status transition")).Once()
	pub.On("PublishWithContext", out.DeadLetterQueue(queue), mock.MatchedBy(func(msg amqp.Publishing) bool {
		return msg.Headers[out.HeaderRetryCount] == int32(5) &&
			msg.Headers[out.HeaderLastError] == "invalid status transition"
	})).Return(nil).Once()
	ack.On("Ack", uint64(7), false).Return(nil).Once()

	newConsumer(handler).Process(t.Context(), pub, newDelivery(ack, shippedBody(t), 4))

	pub.AssertExpectations(t)
	ack.AssertExpectations(t)
}

type fakeChannel struct {
	MockPublisher
	mu         sync.Mutex
	declared   []string
	prefetch   int
	confirm    bool
	deliveries chan amqp.Delivery
}

func (c *fakeChannel) Confirm(noWait bool) error {
	c.confirm = true
	return nil
}

func (c *fakeChannel) NotifyPublish(confirm chan amqp.Confirmation) chan amqp.Confirmation {
	return confirm
}

func (c *fakeChannel) QueueDeclare(
	name string,
	durable, autoDelete, exclusive, noWait bool,
	args amqp.Table,
) (amqp.Queue, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.declared = append(c.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (c *fakeChannel) Qos(prefetchCount, prefetchSize int, global bool) error {
	c.prefetch = prefetchCount
	return nil
}

func (c *fakeChannel) ConsumeWithContext(
	ctx context.Context,
	queue, consumer string,
	autoAck, exclusive, noLocal, noWait bool,
	args amqp.Table,
) (<-chan amqp.Delivery, error) {
	return c.deliveries, nil
}

func (c *fakeChannel) Close() error { return nil }

func TestRun_DeclaresTopologyAndStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	ch := &fakeChannel{deliveries: make(chan amqp.Delivery, 1)}
	ack := new(MockAcknowledger)
	ack.On("Ack", uint64(7), false).Return(nil).Once()
	ch.deliveries <- newDelivery(ack, shippedBody(t), 0)

	handler := new(MockHandler)
	handler.On("Handle", mock.Anything).Return(nil).Run(func(mock.Arguments) { cancel() }).Once()

	consumer := rabbitmq.NewConsumer(rabbitmq.Config{
		Queue:     queue,
		Accepts:   []events.Type{events.TypeOrderShipped},
		Reconnect: backoff.Config{BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1},
	}, func() (rabbitmq.Channel, error) { return ch, nil }, handler, discard())

	require.NoError(t, consumer.Run(ctx))

	assert.Equal(t, []string{queue, out.DeadLetterQueue(queue)}, ch.declared)
	assert.Equal(t, 1, ch.prefetch)
	assert.True(t, ch.confirm)
	ack.AssertExpectations(t)
}

func TestConfirmingPublisher_WaitsForBroker(t *testing.T) {
	tests := map[string]struct {
		confirm func(chan amqp.Confirmation)
		wantErr error
	}{
		"acked": {
			confirm: func(c chan amqp.Confirmation) { c <- amqp.Confirmation{DeliveryTag: 1, Ack: true} },
		},
		"nacked": {
			confirm: func(c chan amqp.Confirmation) { c <- amqp.Confirmation{DeliveryTag: 1, Ack: false} },
			wantErr: out.ErrPublishNacked,
		},
		"channel gone": {
			confirm: func(c chan amqp.Confirmation) { close(c) },
			wantErr: out.ErrConfirmChannelGone,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			confirms := make(chan amqp.Confirmation, 1)
			pub := new(MockPublisher)
			pub.On("PublishWithContext", out.DeadLetterQueue(queue), mock.Anything).
				Return(nil).Run(func(mock.Arguments) { tt.confirm(confirms) }).Once()

			err := rabbitmq.NewConfirmingPublisher(pub, confirms).
				PublishWithContext(t.Context(), "", out.DeadLetterQueue(queue), false, false, amqp.Publishing{})

			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
			pub.AssertExpectations(t)
		})
	}
}

func TestProcess_UnconfirmedDeadLetterRequeues(t *testing.T) {
	confirms := make(chan amqp.Confirmation, 1)
	ack, pub, handler := new(MockAcknowledger), new(MockPublisher), new(MockHandler)
	pub.On("PublishWithContext", out.DeadLetterQueue(queue), mock.Anything).
		Return(nil).Run(func(mock.Arguments) { confirms <- amqp.Confirmation{Ack: false} }).Once()
	ack.On("Nack", uint64(7), false, true).Return(nil).Once()

	newConsumer(handler).Process(t.Context(), rabbitmq.NewConfirmingPublisher(pub, confirms),
		newDelivery(ack, []byte("{not json"), 0))

	ack.AssertExpectations(t)
	ack.AssertNotCalled(t, "Ack", mock.Anything, mock.Anything)
}
