package savemember

import (
	"time"

	"github.com/google/uuid"

	"github.com/mikietechie/sapp-library/app/shared/shell"
	"github.com/mikietechie/sapp-library/lendingstore"
)

const (
	commandType = "SaveMember"
)

// Command represents the intent to register a member or change one.
type Command struct {
	MemberID          uuid.UUID // uuid.Nil registers a new member
	UserRef           string
	FullName          string
	Role              lendingstore.MemberRole
	Active            *bool // nil keeps the stored value, new members are active
	About             string
	TerminationReason string
	OccurredAt        time.Time
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a Command for a new member. The free-text fields are sanitized.
func BuildCommand(userRef, fullName string, role lendingstore.MemberRole, about string, occurredAt time.Time) Command {
	return Command{
		UserRef:    userRef,
		FullName:   shell.SanitizeText(fullName),
		Role:       role,
		About:      shell.SanitizeText(about),
		OccurredAt: occurredAt,
	}
}
