package sqlengine

import (
	"bytes"
	"context"
	"errors"
	"slices"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/mikietechie/sapp-library/lendingstore"
	"github.com/mikietechie/sapp-library/lendingstore/sqlengine/internal/adapters"
)

var leaseColumns = []string{
	colID, "image", "condition", "book_item_id", "member_id", "leased_on", "due_date", "returned",
	colCreatedAt, colUpdatedAt,
}

// ApplyLeaseWrite inserts or updates a lease and re-derives the availability of the affected copies,
// all in one transaction.
//
// The copy row is locked first, so concurrent writes for the same copy are applied one after the other.
// The member must be active whenever the lease is created or moved to another member.
// A lease without a due date is rejected with lendingstore.ErrDueDateRequired.
func (s Store) ApplyLeaseWrite(
	ctx context.Context,
	lease lendingstore.Lease,
) (result lendingstore.LeaseWriteResult, err error) {
	ctx, observer := s.observe(ctx, operationApplyLeaseWrite)
	defer func() {
		observer.finish(err, logAttrID, result.Lease.ID.String(), logAttrAvailable, result.BookItemAvailable)
	}()

	if lease.DueDate.IsZero() {
		return lendingstore.LeaseWriteResult{}, lendingstore.ErrDueDateRequired
	}

	if lease.Condition == "" {
		lease.Condition = lendingstore.DefaultLeaseCondition
	}

	if lease.LeasedOn.IsZero() {
		lease.LeasedOn = lendingstore.DateOf(s.now())
	}

	err = s.inTransaction(ctx, func(tx adapters.DBTx) error {
		var existing *lendingstore.Lease

		if lease.ID != uuid.Nil {
			stored, getErr := s.getLease(ctx, tx, lease.ID)
			switch {
			case getErr == nil:
				existing = &stored
			case !errors.Is(getErr, lendingstore.ErrNotFound):
				return getErr
			}
		}

		affectedItems := []uuid.UUID{lease.BookItemID}
		if existing != nil && existing.BookItemID != lease.BookItemID {
			affectedItems = append(affectedItems, existing.BookItemID)
		}

		if lockErr := s.lockBookItems(ctx, tx, affectedItems); lockErr != nil {
			return lockErr
		}

		if existing == nil || existing.MemberID != lease.MemberID {
			member, memberErr := s.getMember(ctx, tx, lease.MemberID)
			if memberErr != nil {
				return memberErr
			}

			if !member.Active {
				return lendingstore.ErrInactiveMember
			}
		}

		stamp, saveErr := s.upsert(ctx, tx, tableLease, lease.ID, goqu.Record{
			"image":        lease.Image,
			"condition":    lease.Condition,
			"book_item_id": lease.BookItemID,
			"member_id":    lease.MemberID,
			"leased_on":    lease.LeasedOn,
			"due_date":     lease.DueDate,
			"returned":     lease.Returned,
		})
		if saveErr != nil {
			return saveErr
		}

		lease.ID, lease.CreatedAt, lease.UpdatedAt = stamp.id, stamp.createdAt, stamp.updatedAt
		result.Lease = lease

		for i, bookItemID := range affectedItems {
			available, refreshErr := s.refreshAvailability(ctx, tx, bookItemID)
			if refreshErr != nil {
				return refreshErr
			}

			if i == 0 {
				result.BookItemAvailable = available
			}
		}

		return nil
	})
	if err != nil {
		return lendingstore.LeaseWriteResult{}, err
	}

	return result, nil
}

// lockBookItems touches the given copy rows in a stable order, which takes their row locks.
// A copy that does not exist yields lendingstore.ErrNotFound.
func (s Store) lockBookItems(ctx context.Context, tx adapters.DBTx, ids []uuid.UUID) error {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })

	for _, id := range sorted {
		affected, err := s.exec(ctx, tx, s.dialect.
			Update(tableBookItem).
			Set(goqu.Record{colUpdatedAt: s.now()}).
			Where(goqu.C(colID).Eq(id)))
		if err != nil {
			return err
		}

		if affected == 0 {
			return lendingstore.ErrNotFound
		}
	}

	return nil
}

// refreshAvailability re-derives and persists the availability of one copy.
func (s Store) refreshAvailability(ctx context.Context, tx adapters.DBTx, bookItemID uuid.UUID) (bool, error) {
	openLeases, err := s.countOpenLeases(ctx, tx, bookItemID)
	if err != nil {
		return false, err
	}

	available := lendingstore.ComputeAvailability(openLeases)

	_, err = s.exec(ctx, tx, s.dialect.
		Update(tableBookItem).
		Set(goqu.Record{"available": available}).
		Where(goqu.C(colID).Eq(bookItemID)))
	if err != nil {
		return false, err
	}

	return available, nil
}

// GetLease loads one lease.
func (s Store) GetLease(ctx context.Context, id uuid.UUID) (lease lendingstore.Lease, err error) {
	ctx, observer := s.observe(ctx, operationGetLease)
	defer func() { observer.finish(err, logAttrID, id.String()) }()

	return s.getLease(ctx, s.db, id)
}

func (s Store) getLease(ctx context.Context, ex adapters.DBExecutor, id uuid.UUID) (lendingstore.Lease, error) {
	builder := s.dialect.
		From(tableLease).
		Select(qualified(tableLease, leaseColumns...)...).
		Where(byID(tableLease, id))

	return queryOne(ctx, s, ex, builder, scanLease)
}

// ListLeases returns the leases matching filter in creation order.
func (s Store) ListLeases(ctx context.Context, filter lendingstore.Filter) (leases []lendingstore.Lease, err error) {
	ctx, observer := s.observe(ctx, operationListLeases)
	defer func() { observer.finish(err, logAttrRowCount, len(leases)) }()

	builder, err := applyFilter(
		s.dialect.From(tableLease).Select(qualified(tableLease, leaseColumns...)...),
		tableLease,
		filter,
	)
	if err != nil {
		return nil, err
	}

	builder = builder.Order(goqu.T(tableLease).Col(colCreatedAt).Asc(), goqu.T(tableLease).Col(colID).Asc())

	return queryAll(ctx, s, s.db, builder, scanLease)
}

func scanLease(rows adapters.DBRows) (lendingstore.Lease, error) {
	var (
		l         lendingstore.Lease
		condition string
	)

	err := rows.Scan(
		&l.ID, &l.Image, &condition, &l.BookItemID, &l.MemberID, &l.LeasedOn, &l.DueDate, &l.Returned,
		&l.CreatedAt, &l.UpdatedAt,
	)
	l.Condition = lendingstore.Condition(condition)

	return l, err
}
