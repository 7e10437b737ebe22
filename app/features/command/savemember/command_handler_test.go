package savemember_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikietechie/sapp-library/app/features/command/savemember"
	"github.com/mikietechie/sapp-library/app/shared/core"
	"github.com/mikietechie/sapp-library/lendingstore"
	. "github.com/mikietechie/sapp-library/testutil/sqlengine/helper" //nolint:revive
)

func Test_CommandHandler_Handle_ResolvesDisplayName(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	directory := savemember.ParseStaticDirectory("u-42=Grace Hopper; u-7 = Alan Turing")
	handler := savemember.NewCommandHandler(store, directory)

	// act
	member, result, err := handler.Handle(ctx, savemember.BuildCommand("u-7", "", "", "", occurredAt))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Equal(t, "Alan Turing", member.FullName)

	stored, getErr := store.GetMember(ctx, member.ID)
	require.NoError(t, getErr)
	assert.Equal(t, "Alan Turing", stored.FullName)
	assert.Equal(t, "u-7", stored.UserRef)
	assert.True(t, stored.Active)
}

func Test_CommandHandler_Handle_RejectsUnknownIdentity(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	handler := savemember.NewCommandHandler(store, nil)

	// act
	_, result, err := handler.Handle(ctx, savemember.BuildCommand("u-404", "", "", "", occurredAt))

	// assert
	require.ErrorIs(t, err, core.ErrUnknownUserRef)
	assert.Contains(t, err.Error(), "u-404")
	assert.True(t, core.IsValidationError(err))
	assert.False(t, result.Idempotent)

	members, listErr := store.ListMembers(ctx, lendingstore.Filter{})
	require.NoError(t, listErr)
	assert.Empty(t, members)
}

func Test_CommandHandler_Handle_DeactivationKeepsStoredName(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	directory := savemember.ParseStaticDirectory("u-1=Jane Doe")

	member, _, err := savemember.NewCommandHandler(store, directory).
		Handle(ctx, savemember.BuildCommand("u-1", "J.D.", "", "", occurredAt))
	require.NoError(t, err)

	inactive := false
	deactivate := savemember.Command{MemberID: member.ID, Active: &inactive, OccurredAt: occurredAt}

	// act
	saved, _, err := savemember.NewCommandHandler(store, nil).Handle(ctx, deactivate)

	// assert
	require.NoError(t, err)
	assert.False(t, saved.Active)
	assert.Equal(t, "J.D.", saved.FullName)
	assert.Equal(t, "u-1", saved.UserRef)
}

func Test_CommandHandler_Handle_SecondSaveIsIdempotent(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	handler := savemember.NewCommandHandler(store, nil)

	member, _, err := handler.Handle(ctx, savemember.BuildCommand("", "Ada Reader", "", "", occurredAt))
	require.NoError(t, err)

	again := savemember.BuildCommand("", "Ada Reader", "", "", occurredAt)
	again.MemberID = member.ID

	// act
	_, result, err := handler.Handle(ctx, again)

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
}
