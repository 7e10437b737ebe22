package genrebookstats_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikietechie/sapp-library/app/features/query/genrebookstats"
	"github.com/mikietechie/sapp-library/app/shared/core"
	. "github.com/mikietechie/sapp-library/testutil/sqlengine/helper" //nolint:revive
)

func Test_QueryHandler_Handle_CountsBooksPerGenre(t *testing.T) {
	// arrange
	store := GivenStore(t)
	fantasy := GivenGenre(t, store, "Fantasy")
	GivenGenre(t, store, "Poetry")
	GivenBook(t, store, "The Hobbit", uuid.NullUUID{UUID: fantasy.ID, Valid: true})
	GivenBook(t, store, "Earthsea", uuid.NullUUID{UUID: fantasy.ID, Valid: true})
	GivenBook(t, store, "Untitled Notes", uuid.NullUUID{})

	handler := genrebookstats.NewQueryHandler(store)

	// act
	stats, err := handler.Handle(context.Background(), genrebookstats.BuildQuery())

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.GenreBookStats{"Fantasy": 2, "Poetry": 0, core.OtherGenreKey: 1}, stats)
}

func Test_QueryHandler_Handle_EmptyCatalog(t *testing.T) {
	store := GivenStore(t)

	stats, err := genrebookstats.NewQueryHandler(store).Handle(context.Background(), genrebookstats.BuildQuery())

	require.NoError(t, err)
	assert.Equal(t, core.GenreBookStats{core.OtherGenreKey: 0}, stats)
}
