package commands

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/events"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrRecordOrderEventCommandIsNotConstructed = errors.New(
	"RecordOrderEventCommand must be created via NewRecordOrderEventCommand constructor",
)

// RecordOrderEventCommand appends one log record to its order's timeline.
type RecordOrderEventCommand struct { //nolint:recvcheck //using for validation
	record events.Record
	guard  guard.ConstructorGuard
}

func NewRecordOrderEventCommand(pos events.Position, event events.Event, recordedAt time.Time) (RecordOrderEventCommand, error) {
	if event == nil {
		return RecordOrderEventCommand{}, errs.NewValueIsRequiredError("event")
	}
	if pos.Topic == "" {
		return RecordOrderEventCommand{}, errs.NewValueIsRequiredError("topic")
	}
	return RecordOrderEventCommand{
		record: events.NewRecord(pos, event, recordedAt),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c RecordOrderEventCommand) Validate() error {
	return c.guard.Validate(ErrRecordOrderEventCommandIsNotConstructed)
}

func (c RecordOrderEventCommand) Record() events.Record { return c.record }
