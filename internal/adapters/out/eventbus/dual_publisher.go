// Package eventbus fans a domain event out to the queue and the log.
package eventbus

import (
	"context"
	"errors"
	"log/slog"

	"orderflow/internal/core/domain/events"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/metrics"
)

const (
	TransportQueue = "rabbitmq"
	TransportLog   = "kafka"
)

// DualPublisher always attempts both transports. The two writes are not
// atomic: one can succeed while the other fails.
type DualPublisher struct {
	queue  ports.EventPublisher
	log    ports.EventPublisher
	logger *slog.Logger
}

var _ ports.EventPublisher = (*DualPublisher)(nil)

func NewDualPublisher(queue, log ports.EventPublisher, logger *slog.Logger) *DualPublisher {
	return &DualPublisher{
		queue:  queue,
		log:    log,
		logger: logger.With("component", "event-bus"),
	}
}

// Publish returns an errs.TransportError per failed transport, joined.
func (p *DualPublisher) Publish(ctx context.Context, e events.Event) error {
	return errors.Join(
		p.publish(ctx, TransportQueue, p.queue, e),
		p.publish(ctx, TransportLog, p.log, e),
	)
}

func (p *DualPublisher) publish(ctx context.Context, transport string, to ports.EventPublisher, e events.Event) error {
	err := to.Publish(ctx, e)
	metrics.EventsPublishedTotal.
		WithLabelValues(transport, string(e.Type()), metrics.PublishResult(err)).
		Inc()

	if err != nil {
		p.logger.ErrorContext(ctx, "failed to publish event",
			"transport", transport,
			"event_type", string(e.Type()),
			"order_id", e.AggregateOrderID().String(),
			"error", err)
		return errs.NewTransportError(transport, "publish", err)
	}
	return nil
}
