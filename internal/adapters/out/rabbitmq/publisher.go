package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"orderflow/internal/core/domain/events"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	ErrPublishNacked      = errors.New("broker did not confirm the message")
	ErrConfirmChannelGone = errors.New("confirmation channel closed")
)

// Channel is the subset of *amqp.Channel the publisher uses.
type Channel interface {
	QueueDeclarer
	Confirm(noWait bool) error
	NotifyPublish(confirm chan amqp.Confirmation) chan amqp.Confirmation
	PublishWithContext(
		ctx context.Context,
		exchange, key string,
		mandatory, immediate bool,
		msg amqp.Publishing,
	) error
	IsClosed() bool
	Close() error
}

// ChannelOpener opens a fresh channel.
type ChannelOpener func() (Channel, error)

// ConnectionChannelOpener opens channels on conn.
func ConnectionChannelOpener(conn *amqp.Connection) ChannelOpener {
	return func() (Channel, error) {
		ch, err := conn.Channel()
		if err != nil {
			return nil, err
		}
		return ch, nil
	}
}

// Publisher routes each event to the queue of its type through the default
// exchange and waits for the broker confirmation.
//
// The channel is opened on first use and reopened after the broker closes it.
// Publishes are serialized so every confirmation matches the message before it.
type Publisher struct {
	open   ChannelOpener
	now    func() time.Time
	logger *slog.Logger

	mu       sync.Mutex
	ch       Channel
	confirms chan amqp.Confirmation
	declared map[string]struct{}
}

func NewPublisher(open ChannelOpener, logger *slog.Logger) *Publisher {
	return &Publisher{
		open:   open,
		now:    time.Now,
		logger: logger.With("component", "rabbitmq-publisher"),
	}
}

func (p *Publisher) Publish(ctx context.Context, e events.Event) error {
	queue, err := e.Type().Queue()
	if err != nil {
		return err
	}

	body, err := events.Encode(e)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(queue); err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  ContentType,
		DeliveryMode: amqp.Persistent,
		Type:         string(e.Type()),
		Timestamp:    p.now(),
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		p.reset()
		return fmt.Errorf("publish to %s: %w", queue, err)
	}

	select {
	case <-ctx.Done():
		// The pending confirmation would be read by the next publish.
		p.reset()
		return ctx.Err()
	case confirm, ok := <-p.confirms:
		if !ok {
			p.reset()
			return ErrConfirmChannelGone
		}
		if !confirm.Ack {
			return fmt.Errorf("%w: queue %s", ErrPublishNacked, queue)
		}
	}

	p.logger.DebugContext(ctx, "event published",
		"queue", queue, "event_type", string(e.Type()), "order_id", e.AggregateOrderID().String())
	return nil
}

// Close closes the current channel, if any.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil {
		return nil
	}
	err := p.ch.Close()
	p.ch = nil
	return err
}

func (p *Publisher) ensureChannel(queue string) error {
	if p.ch != nil && p.ch.IsClosed() {
		p.logger.Warn("channel closed by broker, reopening")
		p.reset()
	}

	if p.ch == nil {
		ch, err := p.open()
		if err != nil {
			return fmt.Errorf("open channel: %w", err)
		}
		if err := ch.Confirm(false); err != nil {
			_ = ch.Close()
			return fmt.Errorf("enable publisher confirms: %w", err)
		}
		p.ch = ch
		p.confirms = ch.NotifyPublish(make(chan amqp.Confirmation, 1))
		p.declared = make(map[string]struct{})
	}

	if _, ok := p.declared[queue]; ok {
		return nil
	}
	if err := DeclareQueue(p.ch, queue); err != nil {
		p.reset()
		return err
	}
	p.declared[queue] = struct{}{}
	return nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	p.ch = nil
	p.confirms = nil
	p.declared = nil
}
