package adapters

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ErrorKind classifies a driver error independently of the driver.
type ErrorKind int

const (
	ErrorKindOther ErrorKind = iota
	ErrorKindUniqueViolation
	ErrorKindForeignKeyViolation
	ErrorKindNotNullViolation
	ErrorKindCheckViolation
	ErrorKindSerialization
)

// Postgres SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgCodeNotNullViolation     = "23502"
	pgCodeForeignKeyViolation  = "23503"
	pgCodeUniqueViolation      = "23505"
	pgCodeCheckViolation       = "23514"
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
)

func classifySQLState(code string) ErrorKind {
	switch code {
	case pgCodeNotNullViolation:
		return ErrorKindNotNullViolation
	case pgCodeForeignKeyViolation:
		return ErrorKindForeignKeyViolation
	case pgCodeUniqueViolation:
		return ErrorKindUniqueViolation
	case pgCodeCheckViolation:
		return ErrorKindCheckViolation
	case pgCodeSerializationFailure, pgCodeDeadlockDetected:
		return ErrorKindSerialization
	default:
		return ErrorKindOther
	}
}

// classifyPGX handles errors raised by pgx.
func classifyPGX(err error) ErrorKind {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifySQLState(pgErr.Code)
	}

	return ErrorKindOther
}

// classifyStd handles errors raised through database/sql by lib/pq or go-sqlite3.
func classifyStd(err error) ErrorKind {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classifySQLState(string(pqErr.Code))
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return classifySQLite(liteErr)
	}

	return ErrorKindOther
}

func classifySQLite(err sqlite3.Error) ErrorKind {
	switch err.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return ErrorKindSerialization
	case sqlite3.ErrConstraint:
		switch err.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ErrorKindUniqueViolation
		case sqlite3.ErrConstraintForeignKey:
			return ErrorKindForeignKeyViolation
		case sqlite3.ErrConstraintNotNull:
			return ErrorKindNotNullViolation
		case sqlite3.ErrConstraintCheck:
			return ErrorKindCheckViolation
		default:
			return ErrorKindOther
		}
	default:
		return ErrorKindOther
	}
}
