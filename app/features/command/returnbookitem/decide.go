package returnbookitem

import (
	"github.com/mikietechie/sapp-library/app/shared/core"
	"github.com/mikietechie/sapp-library/lendingstore"
)

// Decide closes the lease.
//
// Business Rules:
//
//	GIVEN: an open lease
//	WHEN: ReturnBookItem is received
//	THEN: Returned is set to ReturnedOn, or to the day the command occurred
//	AND: a given condition replaces the lease condition
//	ERROR: core.ErrInvalidCondition for an unknown condition
//	IDEMPOTENCY: a lease that is already returned stays as it is
func Decide(command Command, lease lendingstore.Lease) core.DecisionResult[lendingstore.Lease] {
	if !lease.IsOpen() {
		return core.IdempotentDecision[lendingstore.Lease]()
	}

	if command.Condition != "" {
		if !command.Condition.IsValid() {
			return core.ErrorDecision[lendingstore.Lease](core.ErrInvalidCondition)
		}

		lease.Condition = command.Condition
	}

	lease.Returned = command.ReturnedOn
	if lease.Returned.IsZero() {
		lease.Returned = lendingstore.DateOf(command.OccurredAt)
	}

	return core.SuccessDecision(lease)
}
