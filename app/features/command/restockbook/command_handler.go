package restockbook

import (
	"context"

	"github.com/google/uuid"

	"github.com/mikietechie/sapp-library/app/shared/core"
	"github.com/mikietechie/sapp-library/app/shared/shell"
	"github.com/mikietechie/sapp-library/lendingstore"
)

// Store defines the storage operations needed by the CommandHandler.
type Store interface {
	GetBook(ctx context.Context, id uuid.UUID) (lendingstore.Book, error)
	RecordRestock(
		ctx context.Context,
		action lendingstore.RestockAction,
		items []lendingstore.BookItem,
	) (lendingstore.RestockAction, []lendingstore.BookItem, error)
}

// Result is the recorded action together with the copies it produced.
type Result struct {
	Action lendingstore.RestockAction
	Items  []lendingstore.BookItem
}

// CommandHandler validates a restock, plans its copies and records both with retry on concurrency conflicts.
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

// Clean validates the restock the command describes. Nothing is written.
func Clean(command Command) error {
	return core.ValidateRestock(command.Action())
}

// Process plans the copies of action and records them together with the action in one transaction.
func (h CommandHandler) Process(ctx context.Context, action lendingstore.RestockAction) (Result, error) {
	items, err := core.PlanRestock(action)
	if err != nil {
		return Result{}, err
	}

	if _, err := h.store.GetBook(ctx, action.BookID); err != nil {
		return Result{}, err
	}

	savedAction, savedItems, err := h.store.RecordRestock(ctx, action, items)
	if err != nil {
		return Result{}, err
	}

	return Result{Action: savedAction, Items: savedItems}, nil
}

// Handle cleans the command and then processes it, retrying on concurrency conflicts.
// Validation errors are returned before the store is touched.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, shell.HandlerResult, error) {
	if err := Clean(command); err != nil {
		return Result{}, shell.NewErrorResult(shell.RetryMetrics{}), err
	}

	var result Result

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var processErr error
		result, processErr = h.Process(retryCtx, command.Action())

		return processErr
	}, h.retryOptions...)

	if err != nil {
		return Result{}, shell.NewErrorResult(retryMetrics), err
	}

	return result, shell.NewSuccessResult(retryMetrics), nil
}
