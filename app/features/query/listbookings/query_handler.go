package listbookings

import (
	"context"

	"github.com/mikietechie/sapp-library/lendingstore"
)

// Store defines the storage operation needed by the QueryHandler.
type Store interface {
	ListBookings(ctx context.Context, filter lendingstore.Filter) ([]lendingstore.Booking, error)
}

type QueryHandler struct {
	store Store
}

func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

func (h QueryHandler) Handle(ctx context.Context, query Query) ([]lendingstore.Booking, error) {
	filter, err := lendingstore.BuildFilter(lendingstore.EntityBooking).WhereAll(query.Params).Finalize()
	if err != nil {
		return nil, err
	}

	return h.store.ListBookings(ctx, filter)
}
