package genrebookstats

import (
	"context"

	"github.com/mikietechie/sapp-library/app/shared/core"
	"github.com/mikietechie/sapp-library/lendingstore"
)

// Store defines the storage operation needed by the QueryHandler.
type Store interface {
	CountBooksPerGenre(ctx context.Context) ([]lendingstore.GenreBookCount, int, error)
}

// QueryHandler answers the Query from the per-genre aggregation of the store.
type QueryHandler struct {
	store Store
}

func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

func (h QueryHandler) Handle(ctx context.Context, _ Query) (core.GenreBookStats, error) {
	counts, ungenred, err := h.store.CountBooksPerGenre(ctx)
	if err != nil {
		return nil, err
	}

	return core.BuildGenreBookStats(counts, ungenred), nil
}
