// Package kafka appends domain events to the order event log topic.
package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/events"

	"github.com/segmentio/kafka-go"
)

// HeaderEventType carries the event type next to the JSON payload.
const HeaderEventType = "event_type"

// MessageWriter is the subset of *kafka.Writer the producer uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewWriter builds a writer for topic. Records with the same key always land
// on the same partition; the connection is dialed on first write.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}
}

// Producer writes every event keyed by its order id.
type Producer struct {
	writer MessageWriter
	logger *slog.Logger
}

func NewProducer(writer MessageWriter, logger *slog.Logger) *Producer {
	return &Producer{
		writer: writer,
		logger: logger.With("component", "kafka-producer"),
	}
}

func (p *Producer) Publish(ctx context.Context, e events.Event) error {
	body, err := events.Encode(e)
	if err != nil {
		return err
	}

	orderID := e.AggregateOrderID().String()
	msg := kafka.Message{
		Key:   []byte(orderID),
		Value: body,
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(e.Type())},
		},
		Time: e.OccurredAt(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s for order %s: %w", e.Type(), orderID, err)
	}

	p.logger.DebugContext(ctx, "event appended", "event_type", string(e.Type()), "order_id", orderID)
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
