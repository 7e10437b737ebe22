package listleases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikietechie/sapp-library/app/features/query/listleases"
	"github.com/mikietechie/sapp-library/lendingstore"
	. "github.com/mikietechie/sapp-library/testutil/sqlengine/helper" //nolint:revive
)

func Test_QueryHandler_Handle_FiltersOpenLeasesOfMember(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	book := GivenBook(t, store, "Dune", uuid.NullUUID{})
	first := GivenBookItem(t, store, book.ID, "D-1")
	second := GivenBookItem(t, store, book.ID, "D-2")
	ada := GivenMember(t, store, "Ada Reader", true)
	bob := GivenMember(t, store, "Bob Reader", true)
	adaLease := GivenOpenLease(t, store, first.ID, ada.ID, lendingstore.MustParseDate("2024-02-01"))
	GivenOpenLease(t, store, second.ID, bob.ID, lendingstore.MustParseDate("2024-02-01"))

	handler := listleases.NewQueryHandler(store)

	// act
	leases, err := handler.Handle(ctx, listleases.BuildQuery(map[string]string{
		lendingstore.FilterKeyMember: ada.ID.String(),
		lendingstore.FilterKeyOpen:   "yes",
	}))

	// assert
	require.NoError(t, err)
	require.Len(t, leases, 1)
	assert.Equal(t, adaLease.ID, leases[0].ID)
}

func Test_QueryHandler_Handle_RejectsUnknownParameter(t *testing.T) {
	handler := listleases.NewQueryHandler(GivenStore(t))

	_, err := handler.Handle(context.Background(), listleases.BuildQuery(map[string]string{"colour": "red"}))

	assert.ErrorIs(t, err, lendingstore.ErrUnknownFilterKey)
}

func Test_QueryHandler_Handle_RejectsMalformedValue(t *testing.T) {
	handler := listleases.NewQueryHandler(GivenStore(t))

	_, err := handler.Handle(context.Background(), listleases.BuildQuery(map[string]string{
		lendingstore.FilterKeyLeasedOn: "yesterday",
	}))

	assert.ErrorIs(t, err, lendingstore.ErrInvalidFilterValue)
}
