package placebooking

import (
	"time"

	"github.com/google/uuid"

	"github.com/mikietechie/sapp-library/lendingstore"
)

const (
	commandType = "PlaceBooking"
)

// Command represents the intent to reserve a book for a member.
type Command struct {
	BookingID  uuid.UUID // uuid.Nil creates a new booking
	BookID     uuid.UUID
	MemberID   uuid.UUID
	Status     lendingstore.BookingStatus
	ExpireDate lendingstore.Date
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

func BuildCommand(bookID uuid.UUID, memberID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		MemberID:   memberID,
		OccurredAt: occurredAt,
	}
}
