package returnbookitem

import (
	"time"

	"github.com/google/uuid"

	"github.com/mikietechie/sapp-library/lendingstore"
)

const (
	commandType = "ReturnBookItem"
)

// Command represents the intent to close a lease.
type Command struct {
	LeaseID    uuid.UUID
	ReturnedOn lendingstore.Date // zero means the day of OccurredAt
	Condition  lendingstore.Condition
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(leaseID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		LeaseID:    leaseID,
		OccurredAt: occurredAt,
	}
}
