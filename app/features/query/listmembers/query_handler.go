package listmembers

import (
	"context"

	"github.com/mikietechie/sapp-library/lendingstore"
)

// Store defines the storage operation needed by the QueryHandler.
type Store interface {
	ListMembers(ctx context.Context, filter lendingstore.Filter) ([]lendingstore.Member, error)
}

type QueryHandler struct {
	store Store
}

func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

func (h QueryHandler) Handle(ctx context.Context, query Query) ([]lendingstore.Member, error) {
	filter, err := lendingstore.BuildFilter(lendingstore.EntityMember).WhereAll(query.Params).Finalize()
	if err != nil {
		return nil, err
	}

	return h.store.ListMembers(ctx, filter)
}
