package leasebookitem

import (
	"github.com/mikietechie/sapp-library/app/shared/core"
	"github.com/mikietechie/sapp-library/lendingstore"
)

// Decide builds the lease to write from the command, the stored lease (nil for a new one) and the policy.
//
// Business Rules:
//
//	GIVEN: a command for a book item and a member
//	WHEN: LeaseBookItem is received
//	THEN: the lease is written with LeasedOn defaulting to today and Condition to "Good"
//	AND: an unset due date becomes LeasedOn plus the policy's lease days
//	ERROR: core.ErrInvalidCondition for an unknown condition
//	ERROR: core.ErrPolicyNotConfigured when a due date is needed and no policy exists
//	IDEMPOTENCY: an update that changes nothing writes nothing
func Decide(command Command, existing *lendingstore.Lease, policy core.Policy) core.DecisionResult[lendingstore.Lease] {
	if command.Condition != "" && !command.Condition.IsValid() {
		return core.ErrorDecision[lendingstore.Lease](core.ErrInvalidCondition)
	}

	lease := lendingstore.Lease{ID: command.LeaseID}
	if existing != nil {
		lease = *existing
	}

	lease.BookItemID = command.BookItemID
	lease.MemberID = command.MemberID

	if command.Image != "" {
		lease.Image = command.Image
	}

	if command.Condition != "" {
		lease.Condition = command.Condition
	} else if lease.Condition == "" {
		lease.Condition = lendingstore.DefaultLeaseCondition
	}

	if !command.LeasedOn.IsZero() {
		lease.LeasedOn = command.LeasedOn
	} else if lease.LeasedOn.IsZero() {
		lease.LeasedOn = lendingstore.DateOf(command.OccurredAt)
	}

	if !command.DueDate.IsZero() {
		lease.DueDate = command.DueDate
	}

	if lease.DueDate.IsZero() {
		dueDate, err := policy.DefaultDueDate(lease.LeasedOn)
		if err != nil {
			return core.ErrorDecision[lendingstore.Lease](err)
		}

		lease.DueDate = dueDate
	}

	if existing != nil && lease == *existing {
		return core.IdempotentDecision[lendingstore.Lease]()
	}

	return core.SuccessDecision(lease)
}
