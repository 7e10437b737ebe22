package leasebookitem

import (
	"time"

	"github.com/google/uuid"

	"github.com/mikietechie/sapp-library/lendingstore"
)

const (
	commandType = "LeaseBookItem"
)

// Command represents the intent to lease a book item to a member, or to change an existing lease.
// Zero dates and an empty condition mean "not given".
type Command struct {
	LeaseID    uuid.UUID // uuid.Nil creates a new lease
	BookItemID uuid.UUID
	MemberID   uuid.UUID
	Condition  lendingstore.Condition
	Image      string
	LeasedOn   lendingstore.Date
	DueDate    lendingstore.Date
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a Command for a new lease with all defaults left to the policy.
func BuildCommand(bookItemID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		BookItemID: bookItemID,
		MemberID:   memberID,
		OccurredAt: occurredAt,
	}
}
