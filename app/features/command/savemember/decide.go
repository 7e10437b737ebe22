package savemember

import (
	"strings"

	"github.com/mikietechie/sapp-library/app/shared/core"
	"github.com/mikietechie/sapp-library/lendingstore"
)

// Decide builds the member to write. displayName is the name of the linked identity, if any.
//
// Business Rules:
//
//	GIVEN: member data, optionally linked to an identity
//	WHEN: SaveMember is received
//	THEN: the member is written with role "One" and active unless given otherwise
//	AND: free text the command leaves blank keeps its stored value
//	AND: a blank name of a linked member becomes the identity's display name
//	ERROR: core.ErrInvalidMemberRole for an unknown role
//	IDEMPOTENCY: an update that changes nothing writes nothing
func Decide(command Command, existing *lendingstore.Member, displayName string) core.DecisionResult[lendingstore.Member] {
	if command.Role != "" && !command.Role.IsValid() {
		return core.ErrorDecision[lendingstore.Member](core.ErrInvalidMemberRole)
	}

	member := lendingstore.Member{ID: command.MemberID, Active: true}
	if existing != nil {
		member = *existing
	}

	merged := command.mergedWith(existing)
	member.UserRef = merged.UserRef
	member.FullName = core.FallbackFullName(merged.FullName, merged.UserRef != "", displayName)
	member.About = merged.About
	member.TerminationReason = merged.TerminationReason

	if command.Role != "" {
		member.Role = command.Role
	} else if member.Role == "" {
		member.Role = lendingstore.DefaultMemberRole
	}

	if command.Active != nil {
		member.Active = *command.Active
	}

	if existing != nil && member == *existing {
		return core.IdempotentDecision[lendingstore.Member]()
	}

	return core.SuccessDecision(member)
}

// mergedWith returns the command with blank free text replaced by the stored values of existing.
func (c Command) mergedWith(existing *lendingstore.Member) Command {
	if existing == nil {
		return c
	}

	c.UserRef = keepStored(c.UserRef, existing.UserRef)
	c.FullName = keepStored(c.FullName, existing.FullName)
	c.About = keepStored(c.About, existing.About)
	c.TerminationReason = keepStored(c.TerminationReason, existing.TerminationReason)

	return c
}

func keepStored(given, stored string) string {
	if strings.TrimSpace(given) == "" {
		return stored
	}

	return given
}
