package retirebookitem

import (
	"context"

	"github.com/google/uuid"

	"github.com/mikietechie/sapp-library/app/shared/shell"
	"github.com/mikietechie/sapp-library/lendingstore"
)

// Store defines the storage operations needed by the CommandHandler.
type Store interface {
	GetBookItem(ctx context.Context, id uuid.UUID) (lendingstore.BookItem, error)
	SaveBookItem(ctx context.Context, item lendingstore.BookItem) (lendingstore.BookItem, error)
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

// Handle returns the copy as stored after the command.
func (h CommandHandler) Handle(ctx context.Context, command Command) (lendingstore.BookItem, shell.HandlerResult, error) {
	var (
		written      lendingstore.BookItem
		isIdempotent bool
	)

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		written, isIdempotent, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return lendingstore.BookItem{}, shell.NewErrorResult(retryMetrics), err
	}

	if isIdempotent {
		return written, shell.NewIdempotentResult(retryMetrics), nil
	}

	return written, shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (lendingstore.BookItem, bool, error) {
	item, err := h.store.GetBookItem(ctx, command.BookItemID)
	if err != nil {
		return lendingstore.BookItem{}, false, err
	}

	decision := Decide(command, item)

	if decision.IsIdempotent() {
		return item, true, nil
	}

	written, err := h.store.SaveBookItem(ctx, decision.Write)

	return written, false, err
}
