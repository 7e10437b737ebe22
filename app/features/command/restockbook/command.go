package restockbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/mikietechie/sapp-library/app/shared/shell"
	"github.com/mikietechie/sapp-library/lendingstore"
)

const (
	commandType = "RestockBook"
)

// Command represents the intent to add NumberOfBooks copies of a book to the inventory.
type Command struct {
	BookID            uuid.UUID
	NumberOfBooks     uint
	Codes             *string // comma separated, one code per copy
	Prefix            string  // defaults to the date of OccurredAt
	GenerateCodesFrom *uint
	Condition         lendingstore.Condition
	Notes             string
	Actor             string
	OccurredAt        time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a Command that generates NumberOfBooks sequential codes starting at from.
func BuildCommand(
	bookID uuid.UUID,
	numberOfBooks uint,
	from uint,
	condition lendingstore.Condition,
	actor string,
	occurredAt time.Time,
) Command {
	return Command{
		BookID:            bookID,
		NumberOfBooks:     numberOfBooks,
		GenerateCodesFrom: &from,
		Condition:         condition,
		Actor:             actor,
		OccurredAt:        occurredAt,
	}
}

// Action maps the command onto the restock action to record. Only the prefix has a default.
func (c Command) Action() lendingstore.RestockAction {
	prefix := c.Prefix
	if prefix == "" {
		prefix = lendingstore.DateOf(c.OccurredAt).String()
	}

	return lendingstore.RestockAction{
		BookID:            c.BookID,
		NumberOfBooks:     c.NumberOfBooks,
		Codes:             c.Codes,
		Prefix:            prefix,
		GenerateCodesFrom: c.GenerateCodesFrom,
		Condition:         c.Condition,
		Notes:             shell.SanitizeText(c.Notes),
		CreatedBy:         c.Actor,
		UpdatedBy:         c.Actor,
	}
}
