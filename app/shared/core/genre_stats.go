package core

import (
	"github.com/mikietechie/sapp-library/lendingstore"
)

// OtherGenreKey is the stats key for books without a genre.
const OtherGenreKey = "other"

// GenreBookStats maps a genre name to its number of books. OtherGenreKey counts books without genre.
type GenreBookStats map[string]int

// BuildGenreBookStats folds per-genre counts into stats keyed by genre name.
// Genres without books are included with zero. When two genres share a name, the later one wins.
func BuildGenreBookStats(counts []lendingstore.GenreBookCount, ungenred int) GenreBookStats {
	stats := make(GenreBookStats, len(counts)+1)

	for _, count := range counts {
		stats[count.GenreName] = count.BookCount
	}

	stats[OtherGenreKey] = ungenred

	return stats
}
