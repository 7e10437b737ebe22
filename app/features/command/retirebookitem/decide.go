package retirebookitem

import (
	"github.com/mikietechie/sapp-library/app/shared/core"
	"github.com/mikietechie/sapp-library/lendingstore"
)

// Decide retires the copy.
//
// Business Rules:
//
//	GIVEN: a copy that is not retired
//	WHEN: RetireBookItem is received
//	THEN: RetiredOn is set to the given day, or to the day the command occurred
//	AND: the reason and the actor are recorded
//	IDEMPOTENCY: a retired copy stays as it is
func Decide(command Command, item lendingstore.BookItem) core.DecisionResult[lendingstore.BookItem] {
	if !item.RetiredOn.IsZero() {
		return core.IdempotentDecision[lendingstore.BookItem]()
	}

	item.RetiredOn = command.RetiredOn
	if item.RetiredOn.IsZero() {
		item.RetiredOn = lendingstore.DateOf(command.OccurredAt)
	}

	item.RetirementReason = command.Reason
	item.UpdatedBy = command.Actor

	return core.SuccessDecision(item)
}
