package sqlengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/mikietechie/sapp-library/lendingstore"
	"github.com/mikietechie/sapp-library/lendingstore/sqlengine/internal/adapters"
)

var bookingColumns = []string{colID, "book_id", "member_id", "status", "expire_date", colCreatedAt, colUpdatedAt}

// SaveBooking inserts or updates a booking. An empty Status is stored as lendingstore.DefaultBookingStatus.
func (s Store) SaveBooking(ctx context.Context, booking lendingstore.Booking) (saved lendingstore.Booking, err error) {
	ctx, observer := s.observe(ctx, operationSaveBooking)
	defer func() { observer.finish(err, logAttrID, saved.ID.String()) }()

	if booking.Status == "" {
		booking.Status = lendingstore.DefaultBookingStatus
	}

	stamp, err := s.upsert(ctx, s.db, tableBooking, booking.ID, goqu.Record{
		"book_id":     booking.BookID,
		"member_id":   booking.MemberID,
		"status":      booking.Status,
		"expire_date": booking.ExpireDate,
	})
	if err != nil {
		return lendingstore.Booking{}, err
	}

	saved = booking
	saved.ID, saved.CreatedAt, saved.UpdatedAt = stamp.id, stamp.createdAt, stamp.updatedAt

	return saved, nil
}

// GetBooking loads one booking.
func (s Store) GetBooking(ctx context.Context, id uuid.UUID) (booking lendingstore.Booking, err error) {
	ctx, observer := s.observe(ctx, operationGetBooking)
	defer func() { observer.finish(err, logAttrID, id.String()) }()

	builder := s.dialect.
		From(tableBooking).
		Select(qualified(tableBooking, bookingColumns...)...).
		Where(byID(tableBooking, id))

	return queryOne(ctx, s, s.db, builder, scanBooking)
}

// ListBookings returns the bookings matching filter in creation order.
func (s Store) ListBookings(
	ctx context.Context,
	filter lendingstore.Filter,
) (bookings []lendingstore.Booking, err error) {
	ctx, observer := s.observe(ctx, operationListBookings)
	defer func() { observer.finish(err, logAttrRowCount, len(bookings)) }()

	builder, err := applyFilter(
		s.dialect.From(tableBooking).Select(qualified(tableBooking, bookingColumns...)...),
		tableBooking,
		filter,
	)
	if err != nil {
		return nil, err
	}

	builder = builder.Order(goqu.T(tableBooking).Col(colCreatedAt).Asc(), goqu.T(tableBooking).Col(colID).Asc())

	return queryAll(ctx, s, s.db, builder, scanBooking)
}

func scanBooking(rows adapters.DBRows) (lendingstore.Booking, error) {
	var (
		b      lendingstore.Booking
		status string
	)

	err := rows.Scan(&b.ID, &b.BookID, &b.MemberID, &status, &b.ExpireDate, &b.CreatedAt, &b.UpdatedAt)
	b.Status = lendingstore.BookingStatus(status)

	return b, err
}
