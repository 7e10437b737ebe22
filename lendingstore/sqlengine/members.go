package sqlengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/mikietechie/sapp-library/lendingstore"
	"github.com/mikietechie/sapp-library/lendingstore/sqlengine/internal/adapters"
)

var memberColumns = []string{
	colID, "user_ref", "full_name", "role", "active", "about", "termination_reason", colCreatedAt, colUpdatedAt,
}

// SaveMember inserts or updates a member. An empty Role is stored as lendingstore.DefaultMemberRole.
func (s Store) SaveMember(ctx context.Context, member lendingstore.Member) (saved lendingstore.Member, err error) {
	ctx, observer := s.observe(ctx, operationSaveMember)
	defer func() { observer.finish(err, logAttrID, saved.ID.String()) }()

	if member.Role == "" {
		member.Role = lendingstore.DefaultMemberRole
	}

	stamp, err := s.upsert(ctx, s.db, tableMember, member.ID, goqu.Record{
		"user_ref":           member.UserRef,
		"full_name":          member.FullName,
		"role":               member.Role,
		"active":             member.Active,
		"about":              member.About,
		"termination_reason": member.TerminationReason,
	})
	if err != nil {
		return lendingstore.Member{}, err
	}

	saved = member
	saved.ID, saved.CreatedAt, saved.UpdatedAt = stamp.id, stamp.createdAt, stamp.updatedAt

	return saved, nil
}

// GetMember loads one member.
func (s Store) GetMember(ctx context.Context, id uuid.UUID) (member lendingstore.Member, err error) {
	ctx, observer := s.observe(ctx, operationGetMember)
	defer func() { observer.finish(err, logAttrID, id.String()) }()

	return s.getMember(ctx, s.db, id)
}

func (s Store) getMember(ctx context.Context, ex adapters.DBExecutor, id uuid.UUID) (lendingstore.Member, error) {
	builder := s.dialect.
		From(tableMember).
		Select(qualified(tableMember, memberColumns...)...).
		Where(byID(tableMember, id))

	return queryOne(ctx, s, ex, builder, scanMember)
}

// ListMembers returns the members matching filter in creation order.
func (s Store) ListMembers(ctx context.Context, filter lendingstore.Filter) (members []lendingstore.Member, err error) {
	ctx, observer := s.observe(ctx, operationListMembers)
	defer func() { observer.finish(err, logAttrRowCount, len(members)) }()

	builder, err := applyFilter(
		s.dialect.From(tableMember).Select(qualified(tableMember, memberColumns...)...),
		tableMember,
		filter,
	)
	if err != nil {
		return nil, err
	}

	builder = builder.Order(goqu.T(tableMember).Col(colCreatedAt).Asc(), goqu.T(tableMember).Col(colID).Asc())

	return queryAll(ctx, s, s.db, builder, scanMember)
}

func scanMember(rows adapters.DBRows) (lendingstore.Member, error) {
	var (
		m    lendingstore.Member
		role string
	)

	err := rows.Scan(&m.ID, &m.UserRef, &m.FullName, &role, &m.Active, &m.About, &m.TerminationReason, &m.CreatedAt, &m.UpdatedAt)
	m.Role = lendingstore.MemberRole(role)

	return m, err
}
