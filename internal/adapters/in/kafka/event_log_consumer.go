// Package kafka projects the order event log topic into the per-order timeline.
package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/events"
	"orderflow/internal/pkg/backoff"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// MessageReader is the subset of *kafka.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewReader joins groupID on topic. A new group starts from the oldest record.
func NewReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     groupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})
}

type recordHandler interface {
	Handle(ctx context.Context, cmd commands.RecordOrderEventCommand) (bool, error)
}

// EventLogConsumer records every log entry, then commits its offset. A record
// that fails is retried until it succeeds or ctx ends, so the next offset of a
// partition is never handled before the previous one.
type EventLogConsumer struct {
	reader  MessageReader
	handler recordHandler
	retry   backoff.Config
	now     func() time.Time
	logger  *slog.Logger
}

func NewEventLogConsumer(
	reader MessageReader,
	handler recordHandler,
	retry backoff.Config,
	logger *slog.Logger,
) *EventLogConsumer {
	return &EventLogConsumer{
		reader:  reader,
		handler: handler,
		retry:   retry,
		now:     time.Now,
		logger:  logger.With("component", "event-log-consumer"),
	}
}

// Run returns nil once ctx is done.
func (c *EventLogConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errs.NewTransportError("kafka", "fetch", err)
		}

		if err := c.process(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func (c *EventLogConsumer) fetch(ctx context.Context) (kafka.Message, error) {
	var msg kafka.Message
	err := backoff.Retry(ctx, c.retry, func() error {
		var err error
		msg, err = c.reader.FetchMessage(ctx)
		return err
	}, func(attempt int, err error) {
		c.logger.WarnContext(ctx, "failed to fetch record", "attempt", attempt, "error", err)
	})
	return msg, err
}

func (c *EventLogConsumer) process(ctx context.Context, msg kafka.Message) error {
	start := time.Now()
	defer func() {
		metrics.MessageProcessingDuration.WithLabelValues(msg.Topic).Observe(time.Since(start).Seconds())
	}()

	logger := c.logger.With("partition", msg.Partition, "offset", msg.Offset)

	// Undecodable records can never be projected; they are committed and skipped.
	cmd, err := c.command(msg)
	if err != nil {
		logger.WarnContext(ctx, "skipping undecodable record", "error", err)
		metrics.MessagesConsumedTotal.WithLabelValues(msg.Topic, metrics.OutcomeDeadLettered).Inc()
	} else {
		if err := backoff.Retry(ctx, c.retry, func() error {
			appended, err := c.handler.Handle(ctx, cmd)
			if err == nil && !appended {
				logger.DebugContext(ctx, "record already projected")
			}
			return err
		}, func(attempt int, err error) {
			logger.WarnContext(ctx, "failed to record event, retrying", "attempt", attempt, "error", err)
			metrics.MessagesConsumedTotal.WithLabelValues(msg.Topic, metrics.OutcomeRetried).Inc()
		}); err != nil {
			return err
		}
		metrics.MessagesConsumedTotal.WithLabelValues(msg.Topic, metrics.OutcomeAcked).Inc()
	}

	return backoff.Retry(ctx, c.retry, func() error {
		return c.reader.CommitMessages(ctx, msg)
	}, func(attempt int, err error) {
		logger.WarnContext(ctx, "failed to commit offset", "attempt", attempt, "error", err)
	})
}

func (c *EventLogConsumer) command(msg kafka.Message) (commands.RecordOrderEventCommand, error) {
	e, err := events.Decode(msg.Value)
	if err != nil {
		return commands.RecordOrderEventCommand{}, err
	}

	pos := events.Position{Topic: msg.Topic, Partition: msg.Partition, Offset: msg.Offset}
	cmd, err := commands.NewRecordOrderEventCommand(pos, e, c.now().UTC())
	if err != nil {
		return commands.RecordOrderEventCommand{}, fmt.Errorf("%w: %w", events.ErrMalformedEvent, err)
	}
	return cmd, nil
}

var _ MessageReader = (*kafka.Reader)(nil)
