// Package helper provides the SQLite-backed test database and fixture builders for storage tests.
package helper

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mikietechie/sapp-library/app/shared/shell/config"
	"github.com/mikietechie/sapp-library/lendingstore"
	"github.com/mikietechie/sapp-library/lendingstore/sqlengine"
)

// FixedClock returns a clock that always reports now.
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}

// TickingClock returns a clock that starts at start and advances by one second per call.
func TickingClock(start time.Time) func() time.Time {
	current := start.Add(-time.Second)

	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}

// GivenStore opens a Store on a fresh SQLite file with the schema created.
func GivenStore(t testing.TB, options ...sqlengine.Option) sqlengine.Store {
	t.Helper()

	ctx := context.Background()

	db, err := config.SQLiteSQLDB(ctx, filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err, "error opening the test database")
	t.Cleanup(func() { _ = db.Close() })

	store, err := sqlengine.NewStoreFromSQLite(db, options...)
	require.NoError(t, err, "error creating the store")

	require.NoError(t, store.CreateSchema(ctx), "error creating the schema")

	return store
}

// GivenUniqueID returns a new UUIDv7.
func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id
}

// GivenPolicy stores policy settings.
func GivenPolicy(t testing.TB, store sqlengine.Store, leaseDays, bookingDays uint) lendingstore.PolicySettings {
	t.Helper()

	settings, err := store.SavePolicySettings(context.Background(), lendingstore.PolicySettings{
		DefaultLeaseDays:   leaseDays,
		DefaultBookingDays: bookingDays,
	})
	require.NoError(t, err, "error in arranging test data")

	return settings
}

// GivenGenre stores a genre named name.
func GivenGenre(t testing.TB, store sqlengine.Store, name string) lendingstore.Genre {
	t.Helper()

	genre, err := store.SaveGenre(context.Background(), lendingstore.Genre{Name: name})
	require.NoError(t, err, "error in arranging test data")

	return genre
}

// GivenBook stores a book of a new book type, optionally in genre.
func GivenBook(t testing.TB, store sqlengine.Store, title string, genreID uuid.NullUUID) lendingstore.Book {
	t.Helper()

	ctx := context.Background()

	bookType, err := store.SaveBookType(ctx, lendingstore.BookType{Name: "Hardcover"})
	require.NoError(t, err, "error in arranging test data")

	book, err := store.SaveBook(ctx, lendingstore.Book{
		Title:      title,
		BookTypeID: bookType.ID,
		ISBN:       "978-1-098-10013-1",
		GenreID:    genreID,
		Author:     "Vlad Khononov",
		Year:       2021,
	})
	require.NoError(t, err, "error in arranging test data")

	return book
}

// GivenBookItem stores a copy of book with code.
func GivenBookItem(t testing.TB, store sqlengine.Store, bookID uuid.UUID, code string) lendingstore.BookItem {
	t.Helper()

	item, err := store.SaveBookItem(context.Background(), lendingstore.BookItem{BookID: bookID, Code: code})
	require.NoError(t, err, "error in arranging test data")

	return item
}

// GivenMember stores a member.
func GivenMember(t testing.TB, store sqlengine.Store, fullName string, active bool) lendingstore.Member {
	t.Helper()

	member, err := store.SaveMember(context.Background(), lendingstore.Member{FullName: fullName, Active: active})
	require.NoError(t, err, "error in arranging test data")

	return member
}

// GivenOpenLease stores a lease of item to member that has not been returned.
func GivenOpenLease(
	t testing.TB,
	store sqlengine.Store,
	itemID, memberID uuid.UUID,
	leasedOn lendingstore.Date,
) lendingstore.Lease {
	t.Helper()

	result, err := store.ApplyLeaseWrite(context.Background(), lendingstore.Lease{
		BookItemID: itemID,
		MemberID:   memberID,
		LeasedOn:   leasedOn,
		DueDate:    leasedOn.AddDays(14),
	})
	require.NoError(t, err, "error in arranging test data")

	return result.Lease
}
