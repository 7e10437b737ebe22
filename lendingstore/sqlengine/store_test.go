package sqlengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikietechie/sapp-library/lendingstore"
	"github.com/mikietechie/sapp-library/lendingstore/sqlengine"
	. "github.com/mikietechie/sapp-library/testutil/sqlengine/helper"
)

func Test_NewStore_RejectsNilConnections(t *testing.T) {
	_, pgxErr := sqlengine.NewStoreFromPGXPool(nil)
	_, sqlErr := sqlengine.NewStoreFromSQLDB(nil)
	_, sqlxErr := sqlengine.NewStoreFromSQLX(nil)
	_, sqliteErr := sqlengine.NewStoreFromSQLite(nil)

	assert.ErrorIs(t, pgxErr, lendingstore.ErrNilDatabaseConnection)
	assert.ErrorIs(t, sqlErr, lendingstore.ErrNilDatabaseConnection)
	assert.ErrorIs(t, sqlxErr, lendingstore.ErrNilDatabaseConnection)
	assert.ErrorIs(t, sqliteErr, lendingstore.ErrNilDatabaseConnection)
}

func Test_CreateSchema_IsIdempotent(t *testing.T) {
	// arrange
	store := GivenStore(t)

	// act
	err := store.CreateSchema(context.Background())

	// assert
	assert.NoError(t, err)
}

func Test_PolicySettings_EarliestRowWins(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t, sqlengine.WithClock(TickingClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))))

	_, notFoundErr := store.LoadPolicySettings(ctx)

	first := GivenPolicy(t, store, 7, 30)
	GivenPolicy(t, store, 14, 3)

	// act
	loaded, err := store.LoadPolicySettings(ctx)

	// assert
	assert.ErrorIs(t, notFoundErr, lendingstore.ErrPolicySettingsNotFound)
	require.NoError(t, err)
	assert.Equal(t, first.ID, loaded.ID)
	assert.Equal(t, uint(7), loaded.DefaultLeaseDays)
	assert.Equal(t, uint(30), loaded.DefaultBookingDays)
}

func Test_SavePolicySettings_UpdatesExistingRow(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	settings := GivenPolicy(t, store, 7, 30)

	// act
	settings.DefaultLeaseDays = 21
	updated, err := store.SavePolicySettings(ctx, settings)
	require.NoError(t, err)
	loaded, loadErr := store.LoadPolicySettings(ctx)

	// assert
	require.NoError(t, loadErr)
	assert.Equal(t, settings.ID, updated.ID)
	assert.Equal(t, uint(21), loaded.DefaultLeaseDays)
	assert.True(t, loaded.CreatedAt.Equal(settings.CreatedAt), "created_at is kept on update")
}

func Test_SaveBookItem_RecomputesAvailabilityOnEverySave(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	book := GivenBook(t, store, "Domain-Driven Design", uuid.NullUUID{})
	member := GivenMember(t, store, "Ada Reader", true)

	// act
	created, err := store.SaveBookItem(ctx, lendingstore.BookItem{BookID: book.ID, Code: "D-1", Available: false})
	require.NoError(t, err)
	availableAfterInsert := created.Available

	GivenOpenLease(t, store, created.ID, member.ID, lendingstore.MustParseDate("2024-02-01"))

	created.Available = true
	created.RetirementReason = "water damage"
	resaved, err := store.SaveBookItem(ctx, created)
	require.NoError(t, err)

	// assert
	assert.True(t, availableAfterInsert, "no lease references a new copy")
	assert.Equal(t, lendingstore.DefaultBookItemCondition, resaved.Condition)
	assert.False(t, resaved.Available, "the open lease wins over the input")

	reloaded, err := store.GetBookItem(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.Available)
	assert.Equal(t, "water damage", reloaded.RetirementReason)
}

func Test_SaveBookItem_NewCopyIsAvailable(t *testing.T) {
	// arrange
	store := GivenStore(t)
	book := GivenBook(t, store, "Domain-Driven Design", uuid.NullUUID{})

	// act
	created, err := store.SaveBookItem(context.Background(), lendingstore.BookItem{BookID: book.ID, Code: "D-1"})

	// assert
	require.NoError(t, err)
	assert.True(t, created.Available)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func Test_SaveBookItem_RejectsDuplicateCodePerBook(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	book := GivenBook(t, store, "Domain-Driven Design", uuid.NullUUID{})
	otherBook := GivenBook(t, store, "Implementing DDD", uuid.NullUUID{})
	GivenBookItem(t, store, book.ID, "D-1")

	// act
	_, duplicateErr := store.SaveBookItem(ctx, lendingstore.BookItem{BookID: book.ID, Code: "D-1"})
	_, otherBookErr := store.SaveBookItem(ctx, lendingstore.BookItem{BookID: otherBook.ID, Code: "D-1"})

	// assert
	assert.ErrorIs(t, duplicateErr, lendingstore.ErrDuplicateBookItemCode)
	assert.NoError(t, otherBookErr)
}

func Test_SaveBookItem_RejectsUnknownBook(t *testing.T) {
	// arrange
	store := GivenStore(t)

	// act
	_, err := store.SaveBookItem(context.Background(), lendingstore.BookItem{BookID: GivenUniqueID(t), Code: "X"})

	// assert
	assert.ErrorIs(t, err, lendingstore.ErrConstraintViolation)
}

func Test_ListBookItems_FiltersByAvailabilityAndBook(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	book := GivenBook(t, store, "Domain-Driven Design", uuid.NullUUID{})
	otherBook := GivenBook(t, store, "Implementing DDD", uuid.NullUUID{})
	leased := GivenBookItem(t, store, book.ID, "D-1")
	free := GivenBookItem(t, store, book.ID, "D-2")
	GivenBookItem(t, store, otherBook.ID, "I-1")
	member := GivenMember(t, store, "Ada Reader", true)
	GivenOpenLease(t, store, leased.ID, member.ID, lendingstore.MustParseDate("2024-02-01"))

	filter, err := lendingstore.BuildFilter(lendingstore.EntityBookItem).
		Where(lendingstore.FilterKeyBook, book.ID.String()).
		Where(lendingstore.FilterKeyAvailable, "true").
		Finalize()
	require.NoError(t, err)

	// act
	items, err := store.ListBookItems(ctx, filter)

	// assert
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, free.ID, items[0].ID)
}

func Test_DeleteProtection(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	genre := GivenGenre(t, store, "Software")
	book := GivenBook(t, store, "Domain-Driven Design", uuid.NullUUID{UUID: genre.ID, Valid: true})
	item := GivenBookItem(t, store, book.ID, "D-1")

	series, err := store.SaveSeries(ctx, lendingstore.Series{Title: "Addison-Wesley Signature", GenreID: genre.ID})
	require.NoError(t, err)
	book.SeriesID = uuid.NullUUID{UUID: series.ID, Valid: true}
	_, err = store.SaveBook(ctx, book)
	require.NoError(t, err)

	// act
	genreErr := store.DeleteGenre(ctx, genre.ID)
	bookTypeErr := store.DeleteBookType(ctx, book.BookTypeID)
	seriesErr := store.DeleteSeries(ctx, series.ID)
	bookAfterSeriesDelete, getErr := store.GetBook(ctx, book.ID)
	bookErr := store.DeleteBook(ctx, book.ID)
	_, itemErr := store.GetBookItem(ctx, item.ID)
	missingErr := store.DeleteBook(ctx, book.ID)

	// assert
	assert.ErrorIs(t, genreErr, lendingstore.ErrDeleteProtected, "genre is used by a book and a series")
	assert.ErrorIs(t, bookTypeErr, lendingstore.ErrDeleteProtected)
	assert.NoError(t, seriesErr)
	require.NoError(t, getErr)
	assert.False(t, bookAfterSeriesDelete.SeriesID.Valid, "series reference is cleared")
	assert.NoError(t, bookErr)
	assert.ErrorIs(t, itemErr, lendingstore.ErrNotFound, "copies are deleted with their book")
	assert.ErrorIs(t, missingErr, lendingstore.ErrNotFound)
}

func Test_CountBooksPerGenre(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t, sqlengine.WithClock(TickingClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))))
	fiction := GivenGenre(t, store, "Fiction")
	poetry := GivenGenre(t, store, "Poetry")
	GivenBook(t, store, "Novel One", uuid.NullUUID{UUID: fiction.ID, Valid: true})
	GivenBook(t, store, "Novel Two", uuid.NullUUID{UUID: fiction.ID, Valid: true})
	GivenBook(t, store, "Almanac", uuid.NullUUID{})

	// act
	counts, ungenred, err := store.CountBooksPerGenre(ctx)

	// assert
	require.NoError(t, err)
	assert.Equal(t, []lendingstore.GenreBookCount{
		{GenreID: fiction.ID, GenreName: "Fiction", BookCount: 2},
		{GenreID: poetry.ID, GenreName: "Poetry", BookCount: 0},
	}, counts)
	assert.Equal(t, 1, ungenred)
}

func Test_Bookings_SaveAndFilterByExpiryRange(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	book := GivenBook(t, store, "Domain-Driven Design", uuid.NullUUID{})
	member := GivenMember(t, store, "Ada Reader", true)

	early, err := store.SaveBooking(ctx, lendingstore.Booking{
		BookID: book.ID, MemberID: member.ID, ExpireDate: lendingstore.MustParseDate("2024-03-01"),
	})
	require.NoError(t, err)
	late, err := store.SaveBooking(ctx, lendingstore.Booking{
		BookID: book.ID, MemberID: member.ID, Status: lendingstore.BookingStatusAccepted,
		ExpireDate: lendingstore.MustParseDate("2024-04-01"),
	})
	require.NoError(t, err)

	testCases := []struct {
		description string
		params      map[string]string
		wantIDs     []uuid.UUID
	}{
		{description: "lower bound only", params: map[string]string{"expire_date_gte": "2024-03-15"}, wantIDs: []uuid.UUID{late.ID}},
		{description: "upper bound only", params: map[string]string{"expire_date_lte": "2024-03-01"}, wantIDs: []uuid.UUID{early.ID}},
		{
			description: "both bounds",
			params:      map[string]string{"expire_date_gte": "2024-02-01", "expire_date_lte": "2024-05-01"},
			wantIDs:     []uuid.UUID{early.ID, late.ID},
		},
		{description: "by status", params: map[string]string{"status": "Pending"}, wantIDs: []uuid.UUID{early.ID}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			filter, filterErr := lendingstore.BuildFilter(lendingstore.EntityBooking).WhereAll(tc.params).Finalize()
			require.NoError(t, filterErr)

			// act
			bookings, listErr := store.ListBookings(ctx, filter)

			// assert
			require.NoError(t, listErr)
			gotIDs := make([]uuid.UUID, 0, len(bookings))
			for _, booking := range bookings {
				gotIDs = append(gotIDs, booking.ID)
			}
			assert.Equal(t, tc.wantIDs, gotIDs)
		})
	}

	reloaded, err := store.GetBooking(ctx, early.ID)
	require.NoError(t, err)
	assert.Equal(t, lendingstore.DefaultBookingStatus, reloaded.Status)
	assert.Equal(t, "2024-03-01", reloaded.ExpireDate.String())
}

func Test_Members_SaveAndFilter(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := GivenStore(t)
	active := GivenMember(t, store, "Ada Reader", true)
	GivenMember(t, store, "Former Reader", false)

	filter, err := lendingstore.BuildFilter(lendingstore.EntityMember).Where(lendingstore.FilterKeyActive, "yes").Finalize()
	require.NoError(t, err)

	// act
	members, err := store.ListMembers(ctx, filter)

	// assert
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, active.ID, members[0].ID)
	assert.Equal(t, lendingstore.DefaultMemberRole, members[0].Role)
}
