package placebooking

import (
	"github.com/mikietechie/sapp-library/app/shared/core"
	"github.com/mikietechie/sapp-library/lendingstore"
)

// Decide builds the booking to write.
//
// Business Rules:
//
//	GIVEN: a book and a member
//	WHEN: PlaceBooking is received
//	THEN: the booking is written with status Pending unless another status is given
//	AND: an unset expiry date becomes today plus the policy's booking days
//	ERROR: core.ErrInvalidBookingStatus for an unknown status
//	ERROR: core.ErrPolicyNotConfigured when an expiry date is needed and no policy exists
//	IDEMPOTENCY: an update that changes nothing writes nothing
func Decide(command Command, existing *lendingstore.Booking, policy core.Policy) core.DecisionResult[lendingstore.Booking] {
	if command.Status != "" && !command.Status.IsValid() {
		return core.ErrorDecision[lendingstore.Booking](core.ErrInvalidBookingStatus)
	}

	booking := lendingstore.Booking{ID: command.BookingID}
	if existing != nil {
		booking = *existing
	}

	booking.BookID = command.BookID
	booking.MemberID = command.MemberID

	if command.Status != "" {
		booking.Status = command.Status
	} else if booking.Status == "" {
		booking.Status = lendingstore.DefaultBookingStatus
	}

	if !command.ExpireDate.IsZero() {
		booking.ExpireDate = command.ExpireDate
	}

	if booking.ExpireDate.IsZero() {
		expireDate, err := policy.DefaultExpireDate(lendingstore.DateOf(command.OccurredAt))
		if err != nil {
			return core.ErrorDecision[lendingstore.Booking](err)
		}

		booking.ExpireDate = expireDate
	}

	if existing != nil && booking == *existing {
		return core.IdempotentDecision[lendingstore.Booking]()
	}

	return core.SuccessDecision(booking)
}
