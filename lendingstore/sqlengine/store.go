package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/mikietechie/sapp-library/lendingstore"
	"github.com/mikietechie/sapp-library/lendingstore/sqlengine/internal/adapters"
)

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite3"

	tablePolicySettings = "policy_settings"
	tableGenre          = "genre"
	tableSeries         = "series"
	tableBookType       = "book_type"
	tableBook           = "book"
	tableBookItem       = string(lendingstore.EntityBookItem)
	tableMember         = string(lendingstore.EntityMember)
	tableLease          = string(lendingstore.EntityLease)
	tableBooking        = string(lendingstore.EntityBooking)
	tableRestockAction  = string(lendingstore.EntityRestockAction)

	colID        = "id"
	colCreatedAt = "created_at"
	colUpdatedAt = "updated_at"
)

// timestampLayout keeps rendered timestamps fixed width, so they sort chronologically as SQLite text.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

func init() {
	goqu.SetTimeFormat(timestampLayout)
}

type sqlQueryString = string

// sqlBuilder is implemented by all goqu datasets.
type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

// Store persists the lending state in a SQL database.
// It is safe for concurrent use as long as the underlying connection pool is.
type Store struct {
	db               adapters.DBAdapter
	dialect          goqu.DialectWrapper
	dialectName      string
	clock            func() time.Time
	newID            func() (uuid.UUID, error)
	logger           lendingstore.Logger
	contextualLogger lendingstore.ContextualLogger
	metricsCollector lendingstore.MetricsCollector
	tracingCollector lendingstore.TracingCollector
}

// NewStoreFromPGXPool creates a new Store for PostgreSQL using a pgx Pool.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, lendingstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), dialectPostgres, options...)
}

// NewStoreFromSQLDB creates a new Store for PostgreSQL using a database/sql connection (lib/pq).
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, lendingstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), dialectPostgres, options...)
}

// NewStoreFromSQLX creates a new Store for PostgreSQL using a sqlx connection.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, lendingstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), dialectPostgres, options...)
}

// NewStoreFromSQLite creates a new Store for SQLite using a database/sql connection (go-sqlite3).
// The connection should enable foreign keys, see the _foreign_keys DSN parameter.
func NewStoreFromSQLite(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, lendingstore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), dialectSQLite, options...)
}

func newStore(db adapters.DBAdapter, dialectName string, options ...Option) (Store, error) {
	s := Store{
		db:          db,
		dialect:     goqu.Dialect(dialectName),
		dialectName: dialectName,
		clock:       time.Now,
		newID:       uuid.NewV7,
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	return s, nil
}

// now returns the current time at the precision Postgres stores.
func (s Store) now() time.Time {
	return s.clock().UTC().Truncate(time.Microsecond)
}

// ensureID assigns a new ID when id is zero.
func (s Store) ensureID(id uuid.UUID) (uuid.UUID, bool, error) {
	if id != uuid.Nil {
		return id, false, nil
	}

	newID, err := s.newID()
	if err != nil {
		return uuid.Nil, false, err
	}

	return newID, true, nil
}

/***** statement execution *****/

func (s Store) toSQL(ctx context.Context, builder sqlBuilder) (sqlQueryString, error) {
	sqlQuery, _, err := builder.ToSQL()
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err)
		return "", errors.Join(lendingstore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, nil
}

func (s Store) query(ctx context.Context, ex adapters.DBExecutor, builder sqlBuilder) (adapters.DBRows, error) {
	sqlQuery, err := s.toSQL(ctx, builder)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, queryErr := ex.Query(ctx, sqlQuery)
	s.logQueryWithDuration(ctx, sqlQuery, logActionQuery, time.Since(start))

	if queryErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, s.translate(queryErr, lendingstore.ErrQueryingFailed)
	}

	return rows, nil
}

func (s Store) exec(ctx context.Context, ex adapters.DBExecutor, builder sqlBuilder) (int64, error) {
	sqlQuery, err := s.toSQL(ctx, builder)
	if err != nil {
		return 0, err
	}

	return s.execRaw(ctx, ex, sqlQuery)
}

func (s Store) execRaw(ctx context.Context, ex adapters.DBExecutor, sqlQuery sqlQueryString) (int64, error) {
	start := time.Now()
	result, execErr := ex.Exec(ctx, sqlQuery)
	s.logQueryWithDuration(ctx, sqlQuery, logActionExec, time.Since(start))

	if execErr != nil {
		s.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		return 0, s.translate(execErr, lendingstore.ErrExecutingFailed)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		return 0, errors.Join(lendingstore.ErrRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

// inTransaction runs fn in a transaction and commits when fn succeeds.
func (s Store) inTransaction(ctx context.Context, fn func(tx adapters.DBTx) error) error {
	tx, beginErr := s.db.BeginTx(ctx)
	if beginErr != nil {
		s.logError(ctx, logMsgBeginTxFailed, beginErr)
		return s.translate(beginErr, lendingstore.ErrTransactionFailed)
	}

	if fnErr := fn(tx); fnErr != nil {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			s.logWarn(ctx, logMsgRollbackFailed, logAttrError, rollbackErr.Error())
		}

		return fnErr
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		s.logError(ctx, logMsgCommitFailed, commitErr)
		return s.translate(commitErr, lendingstore.ErrTransactionFailed)
	}

	return nil
}

// translate maps a driver error onto the store's sentinel errors, keeping the cause.
func (s Store) translate(err error, fallback error) error {
	switch s.db.ClassifyError(err) {
	case adapters.ErrorKindSerialization:
		return errors.Join(lendingstore.ErrConcurrencyConflict, err)
	case adapters.ErrorKindUniqueViolation:
		return errors.Join(lendingstore.ErrDuplicateBookItemCode, err)
	case adapters.ErrorKindForeignKeyViolation, adapters.ErrorKindNotNullViolation, adapters.ErrorKindCheckViolation:
		return errors.Join(lendingstore.ErrConstraintViolation, err)
	default:
		return errors.Join(fallback, err)
	}
}

// closeRows closes database rows and logs any errors.
func (s Store) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

/***** scanning *****/

type rowScanner[T any] func(rows adapters.DBRows) (T, error)

// queryAll runs builder and scans every row.
func queryAll[T any](
	ctx context.Context,
	s Store,
	ex adapters.DBExecutor,
	builder sqlBuilder,
	scan rowScanner[T],
) ([]T, error) {
	rows, err := s.query(ctx, ex, builder)
	if err != nil {
		return nil, err
	}
	defer s.closeRows(ctx, rows)

	result := make([]T, 0)

	for rows.Next() {
		item, scanErr := scan(rows)
		if scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, scanErr)
			return nil, errors.Join(lendingstore.ErrScanningDBRowFailed, scanErr)
		}

		result = append(result, item)
	}

	if iterErr := rows.Err(); iterErr != nil {
		return nil, s.translate(iterErr, lendingstore.ErrQueryingFailed)
	}

	return result, nil
}

// queryOne runs builder and scans the first row, or returns lendingstore.ErrNotFound.
func queryOne[T any](
	ctx context.Context,
	s Store,
	ex adapters.DBExecutor,
	builder sqlBuilder,
	scan rowScanner[T],
) (T, error) {
	var empty T

	all, err := queryAll(ctx, s, ex, builder, scan)
	if err != nil {
		return empty, err
	}

	if len(all) == 0 {
		return empty, lendingstore.ErrNotFound
	}

	return all[0], nil
}

func scanInt(rows adapters.DBRows) (int, error) {
	var n int64
	if err := rows.Scan(&n); err != nil {
		return 0, err
	}

	return int(n), nil
}

// qualified returns table-qualified column expressions for a select list.
func qualified(table string, columns ...string) []any {
	result := make([]any, 0, len(columns))
	for _, column := range columns {
		result = append(result, goqu.T(table).Col(column))
	}

	return result
}

// byID builds the primary key predicate of table.
func byID(table string, id uuid.UUID) goqu.Expression {
	return goqu.T(table).Col(colID).Eq(id)
}

// nullableUint converts an optional unsigned value for insertion.
func nullableUint(v *uint) any {
	if v == nil {
		return nil
	}

	return int64(*v)
}

// nullableString converts an optional string for insertion.
func nullableString(v *string) any {
	if v == nil {
		return nil
	}

	return *v
}

/***** writes *****/

// rowStamp is the identity and the timestamps of a written row.
type rowStamp struct {
	id        uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

// upsert updates the row with id if it exists, otherwise inserts record as a new row.
// A zero id always inserts with a generated ID.
func (s Store) upsert(
	ctx context.Context,
	ex adapters.DBExecutor,
	table string,
	id uuid.UUID,
	record goqu.Record,
) (rowStamp, error) {
	now := s.now()

	if id != uuid.Nil {
		createdAt, err := queryOne(ctx, s, ex,
			s.dialect.From(table).Select(goqu.C(colCreatedAt)).Where(goqu.C(colID).Eq(id)),
			scanTime,
		)

		switch {
		case err == nil:
			record[colUpdatedAt] = now
			if _, updateErr := s.exec(ctx, ex, s.dialect.Update(table).Set(record).Where(goqu.C(colID).Eq(id))); updateErr != nil {
				return rowStamp{}, updateErr
			}

			return rowStamp{id: id, createdAt: createdAt, updatedAt: now}, nil

		case !errors.Is(err, lendingstore.ErrNotFound):
			return rowStamp{}, err
		}
	}

	newID, _, err := s.ensureID(id)
	if err != nil {
		return rowStamp{}, err
	}

	record[colID] = newID
	record[colCreatedAt] = now
	record[colUpdatedAt] = now

	if _, insertErr := s.exec(ctx, ex, s.dialect.Insert(table).Rows(record)); insertErr != nil {
		return rowStamp{}, insertErr
	}

	return rowStamp{id: newID, createdAt: now, updatedAt: now}, nil
}

// deleteByID removes one row. Rows still referenced through a protected relation yield lendingstore.ErrDeleteProtected.
func (s Store) deleteByID(ctx context.Context, table string, id uuid.UUID) error {
	affected, err := s.exec(ctx, s.db, s.dialect.Delete(table).Where(goqu.C(colID).Eq(id)))
	if err != nil {
		if errors.Is(err, lendingstore.ErrConstraintViolation) {
			return errors.Join(lendingstore.ErrDeleteProtected, err)
		}

		return err
	}

	if affected == 0 {
		return lendingstore.ErrNotFound
	}

	return nil
}

func scanTime(rows adapters.DBRows) (time.Time, error) {
	var t time.Time
	if err := rows.Scan(&t); err != nil {
		return time.Time{}, err
	}

	return t, nil
}
