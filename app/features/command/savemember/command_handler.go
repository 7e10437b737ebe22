package savemember

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mikietechie/sapp-library/app/shared/core"
	"github.com/mikietechie/sapp-library/app/shared/shell"
	"github.com/mikietechie/sapp-library/lendingstore"
)

// Store defines the storage operations needed by the CommandHandler.
type Store interface {
	GetMember(ctx context.Context, id uuid.UUID) (lendingstore.Member, error)
	SaveMember(ctx context.Context, member lendingstore.Member) (lendingstore.Member, error)
}

// CommandHandler orchestrates Load -> Decide -> Write with retry on concurrency conflicts.
type CommandHandler struct {
	store        Store
	directory    IdentityDirectory
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

// NewCommandHandler creates a handler. A nil directory knows no identities.
func NewCommandHandler(store Store, directory IdentityDirectory, opts ...Option) CommandHandler {
	if directory == nil {
		directory = StaticDirectory{}
	}

	handler := CommandHandler{store: store, directory: directory}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

func (h CommandHandler) Handle(ctx context.Context, command Command) (lendingstore.Member, shell.HandlerResult, error) {
	var (
		written      lendingstore.Member
		isIdempotent bool
	)

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		written, isIdempotent, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return lendingstore.Member{}, shell.NewErrorResult(retryMetrics), err
	}

	if isIdempotent {
		return written, shell.NewIdempotentResult(retryMetrics), nil
	}

	return written, shell.NewSuccessResult(retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (lendingstore.Member, bool, error) {
	var existing *lendingstore.Member

	if command.MemberID != uuid.Nil {
		stored, getErr := h.store.GetMember(ctx, command.MemberID)
		switch {
		case getErr == nil:
			existing = &stored
		case !errors.Is(getErr, lendingstore.ErrNotFound):
			return lendingstore.Member{}, false, getErr
		}
	}

	var displayName string

	if merged := command.mergedWith(existing); merged.UserRef != "" && strings.TrimSpace(merged.FullName) == "" {
		name, found, lookupErr := h.directory.DisplayName(ctx, merged.UserRef)
		if lookupErr != nil {
			return lendingstore.Member{}, false, lookupErr
		}

		if !found {
			return lendingstore.Member{}, false, fmt.Errorf("%w: %q", core.ErrUnknownUserRef, merged.UserRef)
		}

		displayName = name
	}

	decision := Decide(command, existing, displayName)

	if err := decision.HasError(); err != nil {
		return lendingstore.Member{}, false, err
	}

	if decision.IsIdempotent() {
		return *existing, true, nil
	}

	written, err := h.store.SaveMember(ctx, decision.Write)

	return written, false, err
}
