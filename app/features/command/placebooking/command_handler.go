package placebooking

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mikietechie/sapp-library/app/shared/shell"
	"github.com/mikietechie/sapp-library/lendingstore"
)

// Store defines the storage operations needed by the CommandHandler.
type Store interface {
	LoadPolicySettings(ctx context.Context) (lendingstore.PolicySettings, error)
	GetBooking(ctx context.Context, id uuid.UUID) (lendingstore.Booking, error)
	SaveBooking(ctx context.Context, booking lendingstore.Booking) (lendingstore.Booking, error)
}

// CommandHandler orchestrates Load -> Decide -> Write with retry on concurrency conflicts.
type CommandHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{store: store}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

func (h CommandHandler) Handle(ctx context.Context, command Command) (lendingstore.Booking, shell.HandlerResult, error) {
	var (
		written      lendingstore.Booking
		isIdempotent bool
	)

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		written, isIdempotent, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return lendingstore.Booking{}, shell.NewErrorResult(retryMetrics), err
	}

	if isIdempotent {
		return written, shell.NewIdempotentResult(retryMetrics), nil
	}

	return written, shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (lendingstore.Booking, bool, error) {
	policy, err := shell.LoadPolicy(ctx, h.store)
	if err != nil {
		return lendingstore.Booking{}, false, err
	}

	var existing *lendingstore.Booking

	if command.BookingID != uuid.Nil {
		stored, getErr := h.store.GetBooking(ctx, command.BookingID)
		switch {
		case getErr == nil:
			existing = &stored
		case !errors.Is(getErr, lendingstore.ErrNotFound):
			return lendingstore.Booking{}, false, getErr
		}
	}

	decision := Decide(command, existing, policy)

	if err := decision.HasError(); err != nil {
		return lendingstore.Booking{}, false, err
	}

	if decision.IsIdempotent() {
		return *existing, true, nil
	}

	written, err := h.store.SaveBooking(ctx, decision.Write)

	return written, false, err
}
