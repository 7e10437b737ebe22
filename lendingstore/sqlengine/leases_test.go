package sqlengine_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikietechie/sapp-library/lendingstore"
	. "github.com/mikietechie/sapp-library/testutil/sqlengine/helper"
)

func Test_ApplyLeaseWrite_DerivesAvailabilityFromOpenLeases(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	book := GivenBook(t, store, "Learning Domain-Driven Design", uuid.NullUUID{})
	item := GivenBookItem(t, store, book.ID, "2024-01-01-1")
	member := GivenMember(t, store, "Ada Reader", true)
	require.True(t, item.Available, "a new copy is available")

	// act
	opened, openErr := store.ApplyLeaseWrite(ctx, lendingstore.Lease{
		BookItemID: item.ID,
		MemberID:   member.ID,
		LeasedOn:   lendingstore.MustParseDate("2024-01-01"),
		DueDate:    lendingstore.MustParseDate("2024-01-08"),
	})
	require.NoError(t, openErr)
	itemWhileLeased, _ := store.GetBookItem(ctx, item.ID)

	returnedLease := opened.Lease
	returnedLease.Returned = lendingstore.MustParseDate("2024-01-05")
	returned, returnErr := store.ApplyLeaseWrite(ctx, returnedLease)
	require.NoError(t, returnErr)
	itemAfterReturn, _ := store.GetBookItem(ctx, item.ID)

	// assert
	assert.False(t, opened.BookItemAvailable)
	assert.False(t, itemWhileLeased.Available)
	assert.True(t, returned.BookItemAvailable)
	assert.True(t, itemAfterReturn.Available)
	assert.Equal(t, opened.Lease.ID, returned.Lease.ID)
	assert.Equal(t, lendingstore.DefaultLeaseCondition, returned.Lease.Condition)
}

func Test_ApplyLeaseWrite_StaysUnavailableWhileAnyLeaseIsOpen(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	book := GivenBook(t, store, "Refactoring", uuid.NullUUID{})
	item := GivenBookItem(t, store, book.ID, "A-1")
	member := GivenMember(t, store, "Ada Reader", true)
	first := GivenOpenLease(t, store, item.ID, member.ID, lendingstore.MustParseDate("2024-01-01"))
	GivenOpenLease(t, store, item.ID, member.ID, lendingstore.MustParseDate("2024-01-02"))

	// act
	first.Returned = lendingstore.MustParseDate("2024-01-03")
	result, err := store.ApplyLeaseWrite(ctx, first)

	// assert
	require.NoError(t, err)
	assert.False(t, result.BookItemAvailable, "the second lease is still open")
}

func Test_ApplyLeaseWrite_RejectsInvalidWrites(t *testing.T) {
	ctx := context.Background()
	store := GivenStore(t)
	book := GivenBook(t, store, "Release It!", uuid.NullUUID{})
	item := GivenBookItem(t, store, book.ID, "R-1")
	activeMember := GivenMember(t, store, "Ada Reader", true)
	inactiveMember := GivenMember(t, store, "Former Reader", false)
	leasedOn := lendingstore.MustParseDate("2024-01-01")

	testCases := []struct {
		description string
		lease       lendingstore.Lease
		wantErr     error
	}{
		{
			description: "missing due date",
			lease:       lendingstore.Lease{BookItemID: item.ID, MemberID: activeMember.ID, LeasedOn: leasedOn},
			wantErr:     lendingstore.ErrDueDateRequired,
		},
		{
			description: "inactive member",
			lease: lendingstore.Lease{
				BookItemID: item.ID, MemberID: inactiveMember.ID, LeasedOn: leasedOn, DueDate: leasedOn.AddDays(7),
			},
			wantErr: lendingstore.ErrInactiveMember,
		},
		{
			description: "unknown member",
			lease: lendingstore.Lease{
				BookItemID: item.ID, MemberID: GivenUniqueID(t), LeasedOn: leasedOn, DueDate: leasedOn.AddDays(7),
			},
			wantErr: lendingstore.ErrNotFound,
		},
		{
			description: "unknown book item",
			lease: lendingstore.Lease{
				BookItemID: GivenUniqueID(t), MemberID: activeMember.ID, LeasedOn: leasedOn, DueDate: leasedOn.AddDays(7),
			},
			wantErr: lendingstore.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			_, err := store.ApplyLeaseWrite(ctx, tc.lease)

			// assert
			assert.ErrorIs(t, err, tc.wantErr)

			leases, listErr := store.ListLeases(ctx, lendingstore.Filter{})
			require.NoError(t, listErr)
			assert.Empty(t, leases, "a rejected write leaves no lease behind")

			reloaded, getErr := store.GetBookItem(ctx, item.ID)
			require.NoError(t, getErr)
			assert.True(t, reloaded.Available)
		})
	}
}

func Test_ApplyLeaseWrite_AllowsUpdatesForMemberDeactivatedLater(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	book := GivenBook(t, store, "Accelerate", uuid.NullUUID{})
	item := GivenBookItem(t, store, book.ID, "X-1")
	member := GivenMember(t, store, "Ada Reader", true)
	lease := GivenOpenLease(t, store, item.ID, member.ID, lendingstore.MustParseDate("2024-01-01"))

	member.Active = false
	_, err := store.SaveMember(ctx, member)
	require.NoError(t, err)

	// act
	lease.Returned = lendingstore.MustParseDate("2024-01-10")
	result, err := store.ApplyLeaseWrite(ctx, lease)

	// assert
	require.NoError(t, err)
	assert.True(t, result.BookItemAvailable)
}

func Test_ApplyLeaseWrite_MovingLeaseRefreshesBothCopies(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	book := GivenBook(t, store, "Team Topologies", uuid.NullUUID{})
	firstItem := GivenBookItem(t, store, book.ID, "T-1")
	secondItem := GivenBookItem(t, store, book.ID, "T-2")
	member := GivenMember(t, store, "Ada Reader", true)
	lease := GivenOpenLease(t, store, firstItem.ID, member.ID, lendingstore.MustParseDate("2024-01-01"))

	// act
	lease.BookItemID = secondItem.ID
	result, err := store.ApplyLeaseWrite(ctx, lease)
	require.NoError(t, err)

	first, _ := store.GetBookItem(ctx, firstItem.ID)
	second, _ := store.GetBookItem(ctx, secondItem.ID)

	// assert
	assert.False(t, result.BookItemAvailable)
	assert.True(t, first.Available)
	assert.False(t, second.Available)
}

func Test_ApplyLeaseWrite_ConcurrentWritesKeepAvailabilityConsistent(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	book := GivenBook(t, store, "The Pragmatic Programmer", uuid.NullUUID{})
	item := GivenBookItem(t, store, book.ID, "P-1")
	member := GivenMember(t, store, "Ada Reader", true)
	leasedOn := lendingstore.MustParseDate("2024-01-01")

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)

	// act
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			lease := lendingstore.Lease{BookItemID: item.ID, MemberID: member.ID, LeasedOn: leasedOn, DueDate: leasedOn.AddDays(7)}
			if i%2 == 0 {
				lease.Returned = leasedOn.AddDays(1)
			}

			_, err := store.ApplyLeaseWrite(ctx, lease)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	// assert
	for err := range errs {
		require.NoError(t, err)
	}

	reloaded, err := store.GetBookItem(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Available, "half of the leases are still open")
}

func Test_ListLeases_AppliesRegistryFilters(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	member := GivenMember(t, store, "Ada Reader", true)
	bookA := GivenBook(t, store, "Book A", uuid.NullUUID{})
	bookB := GivenBook(t, store, "Book B", uuid.NullUUID{})
	itemA := GivenBookItem(t, store, bookA.ID, "A-1")
	itemB := GivenBookItem(t, store, bookB.ID, "B-1")
	openA := GivenOpenLease(t, store, itemA.ID, member.ID, lendingstore.MustParseDate("2024-01-01"))
	returnedB := GivenOpenLease(t, store, itemB.ID, member.ID, lendingstore.MustParseDate("2024-01-02"))
	returnedB.Returned = lendingstore.MustParseDate("2024-01-03")
	_, err := store.ApplyLeaseWrite(ctx, returnedB)
	require.NoError(t, err)

	testCases := []struct {
		description string
		params      map[string]string
		wantIDs     []uuid.UUID
	}{
		{description: "no filter", params: nil, wantIDs: []uuid.UUID{openA.ID, returnedB.ID}},
		{description: "by book through book item", params: map[string]string{"book": bookA.ID.String()}, wantIDs: []uuid.UUID{openA.ID}},
		{description: "by book item", params: map[string]string{"book_item": itemB.ID.String()}, wantIDs: []uuid.UUID{returnedB.ID}},
		{description: "open leases", params: map[string]string{"open": "true"}, wantIDs: []uuid.UUID{openA.ID}},
		{description: "returned leases", params: map[string]string{"open": "false"}, wantIDs: []uuid.UUID{returnedB.ID}},
		{description: "by leased on", params: map[string]string{"leased_on": "2024-01-02"}, wantIDs: []uuid.UUID{returnedB.ID}},
		{
			description: "book and member combined",
			params:      map[string]string{"book": bookB.ID.String(), "member": member.ID.String()},
			wantIDs:     []uuid.UUID{returnedB.ID},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			filter, filterErr := lendingstore.BuildFilter(lendingstore.EntityLease).WhereAll(tc.params).Finalize()
			require.NoError(t, filterErr)

			// act
			leases, listErr := store.ListLeases(ctx, filter)

			// assert
			require.NoError(t, listErr)
			gotIDs := make([]uuid.UUID, 0, len(leases))
			for _, lease := range leases {
				gotIDs = append(gotIDs, lease.ID)
			}
			assert.Equal(t, tc.wantIDs, gotIDs)
		})
	}
}

func Test_ListLeases_RejectsFilterOfAnotherEntity(t *testing.T) {
	// arrange
	store := GivenStore(t)
	filter, err := lendingstore.BuildFilter(lendingstore.EntityBooking).Where("status", "Pending").Finalize()
	require.NoError(t, err)

	// act
	_, err = store.ListLeases(context.Background(), filter)

	// assert
	assert.ErrorIs(t, err, lendingstore.ErrUnknownFilterEntity)
}
