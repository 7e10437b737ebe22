package returnbookitem

import (
	"context"

	"github.com/google/uuid"

	"github.com/mikietechie/sapp-library/app/shared/shell"
	"github.com/mikietechie/sapp-library/lendingstore"
)

// Store defines the storage operations needed by the CommandHandler.
type Store interface {
	GetLease(ctx context.Context, id uuid.UUID) (lendingstore.Lease, error)
	GetBookItem(ctx context.Context, id uuid.UUID) (lendingstore.BookItem, error)
	ApplyLeaseWrite(ctx context.Context, lease lendingstore.Lease) (lendingstore.LeaseWriteResult, error)
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

// Handle returns the closed lease and the availability of its copy after the return.
func (h CommandHandler) Handle(
	ctx context.Context,
	command Command,
) (lendingstore.LeaseWriteResult, shell.HandlerResult, error) {
	var (
		written      lendingstore.LeaseWriteResult
		isIdempotent bool
	)

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		written, isIdempotent, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return lendingstore.LeaseWriteResult{}, shell.NewErrorResult(retryMetrics), err
	}

	if isIdempotent {
		return written, shell.NewIdempotentResult(retryMetrics), nil
	}

	return written, shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(
	ctx context.Context,
	command Command,
) (lendingstore.LeaseWriteResult, bool, error) {
	lease, err := h.store.GetLease(ctx, command.LeaseID)
	if err != nil {
		return lendingstore.LeaseWriteResult{}, false, err
	}

	decision := Decide(command, lease)

	if err := decision.HasError(); err != nil {
		return lendingstore.LeaseWriteResult{}, false, err
	}

	if decision.IsIdempotent() {
		item, getErr := h.store.GetBookItem(ctx, lease.BookItemID)
		if getErr != nil {
			return lendingstore.LeaseWriteResult{}, false, getErr
		}

		return lendingstore.LeaseWriteResult{Lease: lease, BookItemAvailable: item.Available}, true, nil
	}

	written, err := h.store.ApplyLeaseWrite(ctx, decision.Write)

	return written, false, err
}
