package ports

import (
	"context"

	"orderflow/internal/core/domain/events"
)

// EventPublisher announces a committed state change. Implementations return
// an errs.TransportError when any transport fails; nothing is rolled back.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}
