// Package rabbitmq publishes domain events to durable RabbitMQ queues.
package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ContentType = "application/json"

	// HeaderRetryCount counts handler failures of a consumed message.
	HeaderRetryCount = "x-retry-count"
	// HeaderLastError carries the last handler failure of a dead-lettered message.
	HeaderLastError = "x-last-error"
)

// QueueDeclarer is the part of *amqp.Channel needed to set up topology.
type QueueDeclarer interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
}

// DeadLetterQueue names the queue failed messages of queue end up in.
func DeadLetterQueue(queue string) string {
	return queue + ".dead-letter"
}

// DeclareQueue declares queue as durable. Redeclaring is a no-op on the broker.
func DeclareQueue(ch QueueDeclarer, queue string) error {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return nil
}
