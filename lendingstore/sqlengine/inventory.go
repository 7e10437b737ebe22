package sqlengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/mikietechie/sapp-library/lendingstore"
	"github.com/mikietechie/sapp-library/lendingstore/sqlengine/internal/adapters"
)

var bookItemColumns = []string{
	colID, "book_id", "code", "retired_on", "retirement_reason", "condition", "available",
	"created_by", "updated_by", colCreatedAt, colUpdatedAt,
}

// SaveBookItem inserts or updates a copy. Available is never taken from the input:
// it is derived from the open leases of the copy on every save.
func (s Store) SaveBookItem(ctx context.Context, item lendingstore.BookItem) (saved lendingstore.BookItem, err error) {
	ctx, observer := s.observe(ctx, operationSaveBookItem)
	defer func() { observer.finish(err, logAttrID, saved.ID.String(), logAttrAvailable, saved.Available) }()

	if item.Condition == "" {
		item.Condition = lendingstore.DefaultBookItemCondition
	}

	err = s.inTransaction(ctx, func(tx adapters.DBTx) error {
		openLeases := 0

		if item.ID != uuid.Nil {
			var countErr error
			if openLeases, countErr = s.countOpenLeases(ctx, tx, item.ID); countErr != nil {
				return countErr
			}
		}

		item.Available = lendingstore.ComputeAvailability(openLeases)

		record := goqu.Record{
			"book_id":           item.BookID,
			"code":              item.Code,
			"retired_on":        item.RetiredOn,
			"retirement_reason": item.RetirementReason,
			"condition":         item.Condition,
			"available":         item.Available,
			"updated_by":        item.UpdatedBy,
		}

		// created_by is written once
		if exists, existsErr := s.rowExists(ctx, tx, tableBookItem, item.ID); existsErr != nil {
			return existsErr
		} else if !exists {
			record["created_by"] = item.CreatedBy
		}

		stamp, saveErr := s.upsert(ctx, tx, tableBookItem, item.ID, record)
		if saveErr != nil {
			return saveErr
		}

		saved = item
		saved.ID, saved.CreatedAt, saved.UpdatedAt = stamp.id, stamp.createdAt, stamp.updatedAt

		return nil
	})
	if err != nil {
		return lendingstore.BookItem{}, err
	}

	return saved, nil
}

// GetBookItem loads one copy.
func (s Store) GetBookItem(ctx context.Context, id uuid.UUID) (item lendingstore.BookItem, err error) {
	ctx, observer := s.observe(ctx, operationGetBookItem)
	defer func() { observer.finish(err, logAttrID, id.String()) }()

	return s.getBookItem(ctx, s.db, id)
}

func (s Store) getBookItem(ctx context.Context, ex adapters.DBExecutor, id uuid.UUID) (lendingstore.BookItem, error) {
	builder := s.dialect.
		From(tableBookItem).
		Select(qualified(tableBookItem, bookItemColumns...)...).
		Where(byID(tableBookItem, id))

	return queryOne(ctx, s, ex, builder, scanBookItem)
}

// ListBookItems returns the copies matching filter in creation order.
func (s Store) ListBookItems(
	ctx context.Context,
	filter lendingstore.Filter,
) (items []lendingstore.BookItem, err error) {
	ctx, observer := s.observe(ctx, operationListBookItems)
	defer func() { observer.finish(err, logAttrRowCount, len(items)) }()

	builder, err := applyFilter(
		s.dialect.From(tableBookItem).Select(qualified(tableBookItem, bookItemColumns...)...),
		tableBookItem,
		filter,
	)
	if err != nil {
		return nil, err
	}

	builder = builder.Order(goqu.T(tableBookItem).Col(colCreatedAt).Asc(), goqu.T(tableBookItem).Col(colID).Asc())

	return queryAll(ctx, s, s.db, builder, scanBookItem)
}

// DeleteBookItem removes a copy together with its leases.
func (s Store) DeleteBookItem(ctx context.Context, id uuid.UUID) (err error) {
	ctx, observer := s.observe(ctx, operationDeleteBookItem)
	defer func() { observer.finish(err, logAttrID, id.String()) }()

	return s.deleteByID(ctx, tableBookItem, id)
}

// countOpenLeases counts the leases of a copy that have not been returned.
func (s Store) countOpenLeases(ctx context.Context, ex adapters.DBExecutor, bookItemID uuid.UUID) (int, error) {
	builder := s.dialect.
		From(tableLease).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C("book_item_id").Eq(bookItemID), goqu.C("returned").IsNull())

	return queryOne(ctx, s, ex, builder, scanInt)
}

func (s Store) rowExists(ctx context.Context, ex adapters.DBExecutor, table string, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}

	builder := s.dialect.From(table).Select(goqu.COUNT(goqu.Star())).Where(goqu.C(colID).Eq(id))

	n, err := queryOne(ctx, s, ex, builder, scanInt)
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func scanBookItem(rows adapters.DBRows) (lendingstore.BookItem, error) {
	var (
		bi        lendingstore.BookItem
		condition string
	)

	err := rows.Scan(
		&bi.ID, &bi.BookID, &bi.Code, &bi.RetiredOn, &bi.RetirementReason, &condition, &bi.Available,
		&bi.CreatedBy, &bi.UpdatedBy, &bi.CreatedAt, &bi.UpdatedAt,
	)
	bi.Condition = lendingstore.Condition(condition)

	return bi, err
}
