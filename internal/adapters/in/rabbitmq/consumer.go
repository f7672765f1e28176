// Package rabbitmq consumes domain events from RabbitMQ queues with bounded
// retries and a dead-letter queue per source queue.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	out "orderflow/internal/adapters/out/rabbitmq"
	"orderflow/internal/core/domain/events"
	"orderflow/internal/pkg/backoff"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultMaxAttempts = 5

var ErrDeliveriesClosed = errors.New("delivery channel closed")

// Handler processes one decoded event.
type Handler interface {
	Handle(ctx context.Context, e events.Event) error
}

type HandlerFunc func(ctx context.Context, e events.Event) error

func (f HandlerFunc) Handle(ctx context.Context, e events.Event) error {
	return f(ctx, e)
}

// Channel is the subset of *amqp.Channel the consumer uses.
type Channel interface {
	out.QueueDeclarer
	Publisher
	Qos(prefetchCount, prefetchSize int, global bool) error
	Confirm(noWait bool) error
	NotifyPublish(confirm chan amqp.Confirmation) chan amqp.Confirmation
	ConsumeWithContext(
		ctx context.Context,
		queue, consumer string,
		autoAck, exclusive, noLocal, noWait bool,
		args amqp.Table,
	) (<-chan amqp.Delivery, error)
	Close() error
}

// Publisher re-publishes retried and dead-lettered messages.
type Publisher interface {
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp.Publishing,
	) error
}

type ChannelOpener func() (Channel, error)

func ConnectionChannelOpener(conn *amqp.Connection) ChannelOpener {
	return func() (Channel, error) {
		ch, err := conn.Channel()
		if err != nil {
			return nil, err
		}
		return ch, nil
	}
}

type Config struct {
	Queue       string
	Accepts     []events.Type
	MaxAttempts int
	Reconnect   backoff.Config
}

// Consumer reads one queue with prefetch 1 from a single goroutine, so
// messages of the queue are handled one at a time.
type Consumer struct {
	cfg     Config
	open    ChannelOpener
	handler Handler
	logger  *slog.Logger
}

func NewConsumer(cfg Config, open ChannelOpener, handler Handler, logger *slog.Logger) *Consumer {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Reconnect == (backoff.Config{}) {
		cfg.Reconnect = backoff.DefaultConfig()
	}
	return &Consumer{
		cfg:     cfg,
		open:    open,
		handler: handler,
		logger:  logger.With("component", "rabbitmq-consumer", "queue", cfg.Queue),
	}
}

// Run consumes until ctx is done, reopening the channel whenever it is lost.
func (c *Consumer) Run(ctx context.Context) error {
	err := backoff.Retry(ctx, c.cfg.Reconnect, func() error {
		return c.consume(ctx)
	}, func(attempt int, err error) {
		c.logger.WarnContext(ctx, "consumer disconnected, reconnecting", "attempt", attempt, "error", err)
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (c *Consumer) consume(ctx context.Context) error {
	ch, err := c.open()
	if err != nil {
		return errs.NewTransportError("rabbitmq", "open channel", err)
	}
	defer func() {
		_ = ch.Close()
	}()

	if err := errors.Join(
		out.DeclareQueue(ch, c.cfg.Queue),
		out.DeclareQueue(ch, out.DeadLetterQueue(c.cfg.Queue)),
	); err != nil {
		return errs.NewTransportError("rabbitmq", "declare", err)
	}

	if err := ch.Qos(1, 0, false); err != nil {
		return errs.NewTransportError("rabbitmq", "qos", err)
	}
	if err := ch.Confirm(false); err != nil {
		return errs.NewTransportError("rabbitmq", "confirm", err)
	}
	pub := NewConfirmingPublisher(ch, ch.NotifyPublish(make(chan amqp.Confirmation, 1)))

	deliveries, err := ch.ConsumeWithContext(ctx, c.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return errs.NewTransportError("rabbitmq", "consume", err)
	}

	c.logger.InfoContext(ctx, "listening")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return errs.NewTransportError("rabbitmq", "consume", ErrDeliveriesClosed)
			}
			c.Process(ctx, pub, d)
		}
	}
}

// Process settles one delivery: ack on success, re-publish with an incremented
// x-retry-count while attempts remain, otherwise move it to the dead-letter
// queue. Poison payloads are dead-lettered at once.
func (c *Consumer) Process(ctx context.Context, pub Publisher, d amqp.Delivery) {
	start := time.Now()
	defer func() {
		metrics.MessageProcessingDuration.WithLabelValues(c.cfg.Queue).Observe(time.Since(start).Seconds())
	}()

	attempts := retryCount(d.Headers)

	e, err := c.decode(d.Body)
	if err != nil {
		c.logger.WarnContext(ctx, "poison message", "error", err)
		c.deadLetter(ctx, pub, d, attempts, err)
		return
	}

	logger := c.logger.With("event_type", string(e.Type()), "order_id", e.AggregateOrderID().String())

	err = c.handler.Handle(ctx, e)
	if err == nil {
		c.settle(ctx, d.Ack(false), metrics.OutcomeAcked)
		return
	}

	attempts++
	if attempts < c.cfg.MaxAttempts {
		logger.WarnContext(ctx, "handler failed, retrying", "attempt", attempts, "error", err)
		msg := republish(d, attempts, "")
		if pubErr := pub.PublishWithContext(ctx, "", c.cfg.Queue, false, false, msg); pubErr != nil {
			logger.ErrorContext(ctx, "failed to re-publish, requeueing", "error", pubErr)
			c.settle(ctx, d.Nack(false, true), metrics.OutcomeRequeued)
			return
		}
		c.settle(ctx, d.Ack(false), metrics.OutcomeRetried)
		return
	}

	logger.ErrorContext(ctx, "handler failed, giving up", "attempts", attempts, "error", err)
	c.deadLetter(ctx, pub, d, attempts, err)
}

// ConfirmingPublisher returns from a publish only once the broker confirmed
// it, so a copy is never acked away before it is safely stored. Publishes must
// not overlap.
type ConfirmingPublisher struct {
	pub      Publisher
	confirms <-chan amqp.Confirmation
}

func NewConfirmingPublisher(pub Publisher, confirms <-chan amqp.Confirmation) *ConfirmingPublisher {
	return &ConfirmingPublisher{pub: pub, confirms: confirms}
}

func (p *ConfirmingPublisher) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	if err := p.pub.PublishWithContext(ctx, exchange, key, mandatory, immediate, msg); err != nil {
		return err
	}

	select {
	case confirm, ok := <-p.confirms:
		if !ok {
			return out.ErrConfirmChannelGone
		}
		if !confirm.Ack {
			return fmt.Errorf("%w: queue %s", out.ErrPublishNacked, key)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Consumer) decode(body []byte) (events.Event, error) {
	e, err := events.Decode(body)
	if err != nil {
		return nil, err
	}
	if len(c.cfg.Accepts) > 0 && !slices.Contains(c.cfg.Accepts, e.Type()) {
		return nil, fmt.Errorf("%w: %s is not expected on %s", events.ErrUnknownEventType, e.Type(), c.cfg.Queue)
	}
	return e, nil
}

func (c *Consumer) deadLetter(ctx context.Context, pub Publisher, d amqp.Delivery, attempts int, cause error) {
	dlq := out.DeadLetterQueue(c.cfg.Queue)
	if err := pub.PublishWithContext(ctx, "", dlq, false, false, republish(d, attempts, cause.Error())); err != nil {
		c.logger.ErrorContext(ctx, "failed to dead-letter, requeueing", "error", err)
		c.settle(ctx, d.Nack(false, true), metrics.OutcomeRequeued)
		return
	}
	c.settle(ctx, d.Ack(false), metrics.OutcomeDeadLettered)
}

func (c *Consumer) settle(ctx context.Context, err error, outcome string) {
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to settle message", "outcome", outcome, "error", err)
		return
	}
	metrics.MessagesConsumedTotal.WithLabelValues(c.cfg.Queue, outcome).Inc()
}

func republish(d amqp.Delivery, attempts int, lastError string) amqp.Publishing {
	headers := amqp.Table{}
	for k, v := range d.Headers {
		headers[k] = v
	}
	headers[out.HeaderRetryCount] = int32(attempts) //nolint:gosec // bounded by MaxAttempts
	if lastError != "" {
		headers[out.HeaderLastError] = lastError
	}

	contentType := d.ContentType
	if contentType == "" {
		contentType = out.ContentType
	}

	return amqp.Publishing{
		Headers:      headers,
		ContentType:  contentType,
		DeliveryMode: amqp.Persistent,
		Type:         d.Type,
		MessageId:    d.MessageId,
		Timestamp:    d.Timestamp,
		Body:         d.Body,
	}
}

func retryCount(headers amqp.Table) int {
	switch v := headers[out.HeaderRetryCount].(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	}
	return 0
}
