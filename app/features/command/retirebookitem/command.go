package retirebookitem

import (
	"time"

	"github.com/google/uuid"

	"github.com/mikietechie/sapp-library/app/shared/shell"
	"github.com/mikietechie/sapp-library/lendingstore"
)

const (
	commandType = "RetireBookItem"
)

// Command represents the intent to take a copy out of the collection.
type Command struct {
	BookItemID uuid.UUID
	RetiredOn  lendingstore.Date // zero means the day of OccurredAt
	Reason     string
	Actor      string
	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a Command with the markup stripped from reason.
func BuildCommand(bookItemID uuid.UUID, reason, actor string, occurredAt time.Time) Command {
	return Command{
		BookItemID: bookItemID,
		Reason:     shell.SanitizeText(reason),
		Actor:      actor,
		OccurredAt: occurredAt,
	}
}
