package eventbus_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"orderflow/internal/adapters/out/eventbus"
	"orderflow/internal/core/domain/events"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, e events.Event) error {
	return m.Called(ctx, e).Error(0)
}

func event(t *testing.T) events.Event {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), "u1", "p1", 1, "", time.Now())
	require.NoError(t, err)
	return events.NewOrderCreated(o, time.Now())
}

func newBus(queue, log *MockPublisher) *eventbus.DualPublisher {
	return eventbus.NewDualPublisher(queue, log, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestDualPublisher_BothSucceed(t *testing.T) {
	e := event(t)
	queue, log := new(MockPublisher), new(MockPublisher)
	queue.On("Publish", mock.Anything, e).Return(nil).Once()
	log.On("Publish", mock.Anything, e).Return(nil).Once()

	okBefore := testutil.ToFloat64(metrics.EventsPublishedTotal.
		WithLabelValues(eventbus.TransportLog, string(events.TypeOrderCreated), "ok"))

	require.NoError(t, newBus(queue, log).Publish(t.Context(), e))

	queue.AssertExpectations(t)
	log.AssertExpectations(t)
	assert.InDelta(t, okBefore+1, testutil.ToFloat64(metrics.EventsPublishedTotal.
		WithLabelValues(eventbus.TransportLog, string(events.TypeOrderCreated), "ok")), 0.001)
}

func TestDualPublisher_QueueFailureStillWritesLog(t *testing.T) {
	e := event(t)
	boom := errors.New("channel closed")
	queue, log := new(MockPublisher), new(MockPublisher)
	queue.On("Publish", mock.Anything, e).Return(boom).Once()
	log.On("Publish", mock.Anything, e).Return(nil).Once()

	err := newBus(queue, log).Publish(t.Context(), e)

	require.ErrorIs(t, err, errs.ErrTransport)
	require.ErrorIs(t, err, boom)
	var transportErr *errs.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, eventbus.TransportQueue, transportErr.Transport)
	log.AssertExpectations(t)
}

func TestDualPublisher_BothFail(t *testing.T) {
	e := event(t)
	queue, log := new(MockPublisher), new(MockPublisher)
	queue.On("Publish", mock.Anything, e).Return(errors.New("amqp down")).Once()
	log.On("Publish", mock.Anything, e).Return(errors.New("kafka down")).Once()

	err := newBus(queue, log).Publish(t.Context(), e)

	require.Error(t, err)
	assert.Contains(t, err.Error(), eventbus.TransportQueue)
	assert.Contains(t, err.Error(), eventbus.TransportLog)
}
