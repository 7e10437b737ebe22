package leasebookitem_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikietechie/sapp-library/app/features/command/leasebookitem"
	"github.com/mikietechie/sapp-library/app/shared/core"
	"github.com/mikietechie/sapp-library/lendingstore"
	. "github.com/mikietechie/sapp-library/testutil/sqlengine/helper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	GivenPolicy(t, store, 14, 3)
	book := GivenBook(t, store, "Learning Domain-Driven Design", uuid.NullUUID{})
	item := GivenBookItem(t, store, book.ID, "2024-01-01-1")
	member := GivenMember(t, store, "Ada Reader", true)
	handler := leasebookitem.NewCommandHandler(store)

	// act
	written, result, err := handler.Handle(ctx, leasebookitem.BuildCommand(item.ID, member.ID, occurredAt))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, 1, result.RetryAttempts)
	assert.False(t, written.BookItemAvailable)
	assert.Equal(t, lendingstore.MustParseDate("2024-01-15"), written.Lease.DueDate)

	reloaded, getErr := store.GetBookItem(ctx, item.ID)
	require.NoError(t, getErr)
	assert.False(t, reloaded.Available)
}

func Test_CommandHandler_Handle_RepeatedUpdateIsIdempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	GivenPolicy(t, store, 14, 3)
	book := GivenBook(t, store, "Refactoring", uuid.NullUUID{})
	item := GivenBookItem(t, store, book.ID, "R-1")
	member := GivenMember(t, store, "Ada Reader", true)
	handler := leasebookitem.NewCommandHandler(store)

	first, _, err := handler.Handle(ctx, leasebookitem.BuildCommand(item.ID, member.ID, occurredAt))
	require.NoError(t, err)

	update := leasebookitem.BuildCommand(item.ID, member.ID, occurredAt)
	update.LeaseID = first.Lease.ID

	// act
	written, result, err := handler.Handle(ctx, update)

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Equal(t, first.Lease.ID, written.Lease.ID)
	assert.False(t, written.BookItemAvailable)
}

func Test_CommandHandler_Handle_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("no policy configured", func(t *testing.T) {
		// arrange
		store := GivenStore(t)
		book := GivenBook(t, store, "Release It!", uuid.NullUUID{})
		item := GivenBookItem(t, store, book.ID, "N-1")
		member := GivenMember(t, store, "Ada Reader", true)

		// act
		_, _, err := leasebookitem.NewCommandHandler(store).Handle(ctx, leasebookitem.BuildCommand(item.ID, member.ID, occurredAt))

		// assert
		assert.ErrorIs(t, err, core.ErrPolicyNotConfigured)
		leases, listErr := store.ListLeases(ctx, lendingstore.Filter{})
		require.NoError(t, listErr)
		assert.Empty(t, leases)
	})

	t.Run("inactive member", func(t *testing.T) {
		// arrange
		store := GivenStore(t)
		GivenPolicy(t, store, 14, 3)
		book := GivenBook(t, store, "Release It!", uuid.NullUUID{})
		item := GivenBookItem(t, store, book.ID, "N-1")
		member := GivenMember(t, store, "Former Reader", false)

		// act
		_, result, err := leasebookitem.NewCommandHandler(store).Handle(ctx, leasebookitem.BuildCommand(item.ID, member.ID, occurredAt))

		// assert
		assert.ErrorIs(t, err, lendingstore.ErrInactiveMember)
		assert.Equal(t, 1, result.RetryAttempts, "business errors are not retried")
		reloaded, getErr := store.GetBookItem(ctx, item.ID)
		require.NoError(t, getErr)
		assert.True(t, reloaded.Available)
	})
}
