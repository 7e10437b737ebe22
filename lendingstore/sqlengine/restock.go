package sqlengine

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	jsoniter "github.com/json-iterator/go"

	"github.com/mikietechie/sapp-library/lendingstore"
	"github.com/mikietechie/sapp-library/lendingstore/sqlengine/internal/adapters"
)

var ErrProducedCodesMalformed = errors.New("produced codes of restock action are malformed")

var restockColumns = []string{
	colID, "book_id", "number_of_books", "codes", "prefix", "generate_codes_from", "condition", "notes",
	"produced_codes", "created_by", "updated_by", colCreatedAt, colUpdatedAt,
}

// RecordRestock stores a restock action together with the copies it produced, in one transaction.
// The copies are inserted in a single bulk insert and start out available.
// A code that already exists for the book fails the whole restock with lendingstore.ErrDuplicateBookItemCode.
func (s Store) RecordRestock(
	ctx context.Context,
	action lendingstore.RestockAction,
	items []lendingstore.BookItem,
) (savedAction lendingstore.RestockAction, savedItems []lendingstore.BookItem, err error) {
	ctx, observer := s.observe(ctx, operationRecordRestock)
	defer func() { observer.finish(err, logAttrID, savedAction.ID.String(), logAttrRowCount, len(savedItems)) }()

	now := s.now()

	action.ProducedCodes = make([]string, 0, len(items))
	for _, item := range items {
		action.ProducedCodes = append(action.ProducedCodes, item.Code)
	}

	producedCodes, encodeErr := jsoniter.ConfigFastest.Marshal(action.ProducedCodes)
	if encodeErr != nil {
		s.logError(ctx, logMsgEncodeCodesFailed, encodeErr)
		return lendingstore.RestockAction{}, nil, encodeErr
	}

	err = s.inTransaction(ctx, func(tx adapters.DBTx) error {
		actionID, _, idErr := s.ensureID(action.ID)
		if idErr != nil {
			return idErr
		}

		action.ID, action.CreatedAt, action.UpdatedAt = actionID, now, now

		_, insertErr := s.exec(ctx, tx, s.dialect.Insert(tableRestockAction).Rows(goqu.Record{
			colID:                 action.ID,
			"book_id":             action.BookID,
			"number_of_books":     int64(action.NumberOfBooks),
			"codes":               nullableString(action.Codes),
			"prefix":              action.Prefix,
			"generate_codes_from": nullableUint(action.GenerateCodesFrom),
			"condition":           action.Condition,
			"notes":               action.Notes,
			"produced_codes":      string(producedCodes),
			"created_by":          action.CreatedBy,
			"updated_by":          action.UpdatedBy,
			colCreatedAt:          now,
			colUpdatedAt:          now,
		}))
		if insertErr != nil {
			return insertErr
		}

		if len(items) == 0 {
			return nil
		}

		savedItems = make([]lendingstore.BookItem, 0, len(items))
		rows := make([]any, 0, len(items))

		for _, item := range items {
			itemID, _, itemIDErr := s.ensureID(item.ID)
			if itemIDErr != nil {
				return itemIDErr
			}

			item.ID, item.CreatedAt, item.UpdatedAt = itemID, now, now
			item.Available = lendingstore.ComputeAvailability(0)

			rows = append(rows, goqu.Record{
				colID:               item.ID,
				"book_id":           item.BookID,
				"code":              item.Code,
				"retired_on":        item.RetiredOn,
				"retirement_reason": item.RetirementReason,
				"condition":         item.Condition,
				"available":         item.Available,
				"created_by":        item.CreatedBy,
				"updated_by":        item.UpdatedBy,
				colCreatedAt:        now,
				colUpdatedAt:        now,
			})
			savedItems = append(savedItems, item)
		}

		_, insertErr = s.exec(ctx, tx, s.dialect.Insert(tableBookItem).Rows(rows...))

		return insertErr
	})
	if err != nil {
		return lendingstore.RestockAction{}, nil, err
	}

	return action, savedItems, nil
}

// ListRestockActions returns the restock actions matching filter in creation order.
func (s Store) ListRestockActions(
	ctx context.Context,
	filter lendingstore.Filter,
) (actions []lendingstore.RestockAction, err error) {
	ctx, observer := s.observe(ctx, operationListRestockActions)
	defer func() { observer.finish(err, logAttrRowCount, len(actions)) }()

	builder, err := applyFilter(
		s.dialect.From(tableRestockAction).Select(qualified(tableRestockAction, restockColumns...)...),
		tableRestockAction,
		filter,
	)
	if err != nil {
		return nil, err
	}

	builder = builder.Order(
		goqu.T(tableRestockAction).Col(colCreatedAt).Asc(),
		goqu.T(tableRestockAction).Col(colID).Asc(),
	)

	return queryAll(ctx, s, s.db, builder, scanRestockAction)
}

func scanRestockAction(rows adapters.DBRows) (lendingstore.RestockAction, error) {
	var (
		a                 lendingstore.RestockAction
		numberOfBooks     int64
		codes             sql.NullString
		generateCodesFrom sql.NullInt64
		condition         string
		producedCodes     string
	)

	if err := rows.Scan(
		&a.ID, &a.BookID, &numberOfBooks, &codes, &a.Prefix, &generateCodesFrom, &condition, &a.Notes,
		&producedCodes, &a.CreatedBy, &a.UpdatedBy, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return lendingstore.RestockAction{}, err
	}

	a.NumberOfBooks = uint(numberOfBooks)
	a.Condition = lendingstore.Condition(condition)

	if codes.Valid {
		a.Codes = &codes.String
	}

	if generateCodesFrom.Valid {
		from := uint(generateCodesFrom.Int64)
		a.GenerateCodesFrom = &from
	}

	if err := jsoniter.ConfigFastest.UnmarshalFromString(producedCodes, &a.ProducedCodes); err != nil {
		return lendingstore.RestockAction{}, errors.Join(ErrProducedCodesMalformed, err)
	}

	return a, nil
}
