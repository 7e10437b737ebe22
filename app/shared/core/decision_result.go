package core

// DecisionResult represents the outcome of a business decision in a Decide function.
// Write holds the entity the command handler persists. It is the zero value unless Outcome is "success".
//
// IMPORTANT: DecisionResult should only be constructed using the provided factory methods:
// IdempotentDecision(), SuccessDecision(write), or ErrorDecision(err).
type DecisionResult[T any] struct {
	Outcome string // "idempotent", "success", or "error"
	Write   T
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision creates a DecisionResult indicating no state change is needed.
func IdempotentDecision[T any]() DecisionResult[T] {
	return DecisionResult[T]{Outcome: idempotentOutcome}
}

// SuccessDecision creates a DecisionResult carrying the entity to write.
func SuccessDecision[T any](write T) DecisionResult[T] {
	return DecisionResult[T]{
		Outcome: successOutcome,
		Write:   write,
	}
}

// ErrorDecision creates a DecisionResult indicating a business rule violation.
func ErrorDecision[T any](err error) DecisionResult[T] {
	return DecisionResult[T]{
		Outcome: errorOutcome,
		Err:     err,
	}
}

// HasWrite returns true if there is an entity to persist.
func (r DecisionResult[T]) HasWrite() bool {
	return r.Outcome == successOutcome
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult[T]) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}

func (r DecisionResult[T]) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}
