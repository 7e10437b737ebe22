package sqlengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/mikietechie/sapp-library/lendingstore"
	"github.com/mikietechie/sapp-library/lendingstore/sqlengine/internal/adapters"
)

var (
	genreColumns    = []string{colID, "name", "description", "image", colCreatedAt, colUpdatedAt}
	seriesColumns   = []string{colID, "title", "image", "genre_id", "publisher", "author", colCreatedAt, colUpdatedAt}
	bookTypeColumns = []string{colID, "name", colCreatedAt, colUpdatedAt}
	bookColumns     = []string{
		colID, "title", "image", "book_type_id", "isbn", "genre_id", "series_id",
		"author", "publisher", "year", "language", colCreatedAt, colUpdatedAt,
	}
)

/***** Genre *****/

// SaveGenre inserts or updates a genre.
func (s Store) SaveGenre(ctx context.Context, genre lendingstore.Genre) (saved lendingstore.Genre, err error) {
	ctx, observer := s.observe(ctx, operationSaveGenre)
	defer func() { observer.finish(err, logAttrID, saved.ID.String()) }()

	stamp, err := s.upsert(ctx, s.db, tableGenre, genre.ID, goqu.Record{
		"name":        genre.Name,
		"description": genre.Description,
		"image":       genre.Image,
	})
	if err != nil {
		return lendingstore.Genre{}, err
	}

	saved = genre
	saved.ID, saved.CreatedAt, saved.UpdatedAt = stamp.id, stamp.createdAt, stamp.updatedAt

	return saved, nil
}

// ListGenres returns all genres in creation order.
func (s Store) ListGenres(ctx context.Context) (genres []lendingstore.Genre, err error) {
	ctx, observer := s.observe(ctx, operationListGenres)
	defer func() { observer.finish(err, logAttrRowCount, len(genres)) }()

	builder := s.dialect.
		From(tableGenre).
		Select(qualified(tableGenre, genreColumns...)...).
		Order(goqu.C(colCreatedAt).Asc(), goqu.C(colID).Asc())

	return queryAll(ctx, s, s.db, builder, scanGenre)
}

// DeleteGenre removes a genre. Genres referenced by a book or a series are protected.
func (s Store) DeleteGenre(ctx context.Context, id uuid.UUID) (err error) {
	ctx, observer := s.observe(ctx, operationDeleteGenre)
	defer func() { observer.finish(err, logAttrID, id.String()) }()

	return s.deleteByID(ctx, tableGenre, id)
}

func scanGenre(rows adapters.DBRows) (lendingstore.Genre, error) {
	var g lendingstore.Genre
	err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.Image, &g.CreatedAt, &g.UpdatedAt)

	return g, err
}

/***** Series *****/

// SaveSeries inserts or updates a series.
func (s Store) SaveSeries(ctx context.Context, series lendingstore.Series) (saved lendingstore.Series, err error) {
	ctx, observer := s.observe(ctx, operationSaveSeries)
	defer func() { observer.finish(err, logAttrID, saved.ID.String()) }()

	stamp, err := s.upsert(ctx, s.db, tableSeries, series.ID, goqu.Record{
		"title":     series.Title,
		"image":     series.Image,
		"genre_id":  series.GenreID,
		"publisher": series.Publisher,
		"author":    series.Author,
	})
	if err != nil {
		return lendingstore.Series{}, err
	}

	saved = series
	saved.ID, saved.CreatedAt, saved.UpdatedAt = stamp.id, stamp.createdAt, stamp.updatedAt

	return saved, nil
}

// GetSeries loads one series.
func (s Store) GetSeries(ctx context.Context, id uuid.UUID) (lendingstore.Series, error) {
	builder := s.dialect.
		From(tableSeries).
		Select(qualified(tableSeries, seriesColumns...)...).
		Where(byID(tableSeries, id))

	return queryOne(ctx, s, s.db, builder, scanSeries)
}

// DeleteSeries removes a series. Books of the series keep existing without one.
func (s Store) DeleteSeries(ctx context.Context, id uuid.UUID) (err error) {
	ctx, observer := s.observe(ctx, operationDeleteSeries)
	defer func() { observer.finish(err, logAttrID, id.String()) }()

	return s.deleteByID(ctx, tableSeries, id)
}

func scanSeries(rows adapters.DBRows) (lendingstore.Series, error) {
	var sr lendingstore.Series
	err := rows.Scan(&sr.ID, &sr.Title, &sr.Image, &sr.GenreID, &sr.Publisher, &sr.Author, &sr.CreatedAt, &sr.UpdatedAt)

	return sr, err
}

/***** BookType *****/

// SaveBookType inserts or updates a book type.
func (s Store) SaveBookType(ctx context.Context, bookType lendingstore.BookType) (saved lendingstore.BookType, err error) {
	ctx, observer := s.observe(ctx, operationSaveBookType)
	defer func() { observer.finish(err, logAttrID, saved.ID.String()) }()

	stamp, err := s.upsert(ctx, s.db, tableBookType, bookType.ID, goqu.Record{"name": bookType.Name})
	if err != nil {
		return lendingstore.BookType{}, err
	}

	saved = bookType
	saved.ID, saved.CreatedAt, saved.UpdatedAt = stamp.id, stamp.createdAt, stamp.updatedAt

	return saved, nil
}

// GetBookType loads one book type.
func (s Store) GetBookType(ctx context.Context, id uuid.UUID) (lendingstore.BookType, error) {
	builder := s.dialect.
		From(tableBookType).
		Select(qualified(tableBookType, bookTypeColumns...)...).
		Where(byID(tableBookType, id))

	return queryOne(ctx, s, s.db, builder, func(rows adapters.DBRows) (lendingstore.BookType, error) {
		var bt lendingstore.BookType
		err := rows.Scan(&bt.ID, &bt.Name, &bt.CreatedAt, &bt.UpdatedAt)

		return bt, err
	})
}

// DeleteBookType removes a book type. Book types in use by a book are protected.
func (s Store) DeleteBookType(ctx context.Context, id uuid.UUID) (err error) {
	ctx, observer := s.observe(ctx, operationDeleteBookType)
	defer func() { observer.finish(err, logAttrID, id.String()) }()

	return s.deleteByID(ctx, tableBookType, id)
}

/***** Book *****/

// SaveBook inserts or updates a book. An empty Language is stored as lendingstore.DefaultBookLanguage.
func (s Store) SaveBook(ctx context.Context, book lendingstore.Book) (saved lendingstore.Book, err error) {
	ctx, observer := s.observe(ctx, operationSaveBook)
	defer func() { observer.finish(err, logAttrID, saved.ID.String()) }()

	if book.Language == "" {
		book.Language = lendingstore.DefaultBookLanguage
	}

	stamp, err := s.upsert(ctx, s.db, tableBook, book.ID, goqu.Record{
		"title":        book.Title,
		"image":        book.Image,
		"book_type_id": book.BookTypeID,
		"isbn":         book.ISBN,
		"genre_id":     book.GenreID,
		"series_id":    book.SeriesID,
		"author":       book.Author,
		"publisher":    book.Publisher,
		"year":         int64(book.Year),
		"language":     book.Language,
	})
	if err != nil {
		return lendingstore.Book{}, err
	}

	saved = book
	saved.ID, saved.CreatedAt, saved.UpdatedAt = stamp.id, stamp.createdAt, stamp.updatedAt

	return saved, nil
}

// GetBook loads one book.
func (s Store) GetBook(ctx context.Context, id uuid.UUID) (book lendingstore.Book, err error) {
	ctx, observer := s.observe(ctx, operationGetBook)
	defer func() { observer.finish(err, logAttrID, id.String()) }()

	builder := s.dialect.
		From(tableBook).
		Select(qualified(tableBook, bookColumns...)...).
		Where(byID(tableBook, id))

	return queryOne(ctx, s, s.db, builder, scanBook)
}

// DeleteBook removes a book together with its copies, leases, bookings and restock actions.
func (s Store) DeleteBook(ctx context.Context, id uuid.UUID) (err error) {
	ctx, observer := s.observe(ctx, operationDeleteBook)
	defer func() { observer.finish(err, logAttrID, id.String()) }()

	return s.deleteByID(ctx, tableBook, id)
}

func scanBook(rows adapters.DBRows) (lendingstore.Book, error) {
	var (
		b    lendingstore.Book
		year int64
	)

	err := rows.Scan(
		&b.ID, &b.Title, &b.Image, &b.BookTypeID, &b.ISBN, &b.GenreID, &b.SeriesID,
		&b.Author, &b.Publisher, &year, &b.Language, &b.CreatedAt, &b.UpdatedAt,
	)
	b.Year = uint(year)

	return b, err
}

/***** Genre statistics *****/

// CountBooksPerGenre returns the number of books per genre, genres without books included,
// and the number of books that have no genre.
func (s Store) CountBooksPerGenre(
	ctx context.Context,
) (counts []lendingstore.GenreBookCount, ungenred int, err error) {
	ctx, observer := s.observe(ctx, operationCountBooksPerGenre)
	defer func() { observer.finish(err, logAttrRowCount, len(counts)) }()

	genre, book := goqu.T(tableGenre), goqu.T(tableBook)

	perGenre := s.dialect.
		From(genre).
		Select(genre.Col(colID), genre.Col("name"), goqu.COUNT(book.Col(colID))).
		LeftJoin(book, goqu.On(book.Col("genre_id").Eq(genre.Col(colID)))).
		GroupBy(genre.Col(colID), genre.Col("name"), genre.Col(colCreatedAt)).
		Order(genre.Col(colCreatedAt).Asc(), genre.Col(colID).Asc())

	withoutGenre := s.dialect.
		From(book).
		Select(goqu.COUNT(goqu.Star())).
		Where(book.Col("genre_id").IsNull())

	err = s.inTransaction(ctx, func(tx adapters.DBTx) error {
		var queryErr error

		counts, queryErr = queryAll(ctx, s, tx, perGenre, func(rows adapters.DBRows) (lendingstore.GenreBookCount, error) {
			var (
				c lendingstore.GenreBookCount
				n int64
			)
			scanErr := rows.Scan(&c.GenreID, &c.GenreName, &n)
			c.BookCount = int(n)

			return c, scanErr
		})
		if queryErr != nil {
			return queryErr
		}

		ungenred, queryErr = queryOne(ctx, s, tx, withoutGenre, scanInt)

		return queryErr
	})
	if err != nil {
		return nil, 0, err
	}

	return counts, ungenred, nil
}
