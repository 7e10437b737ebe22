// Package genrebookstats implements the Genre Book Stats query use case.
//
// The result maps every genre name to the number of books in it, plus an "other" entry
// counting the books without a genre. Genres without books are reported with zero.
package genrebookstats
