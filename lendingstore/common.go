package lendingstore

import (
	"errors"
)

var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
var ErrConcurrencyConflict = errors.New("concurrency conflict, the write could not be serialized")

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDueDateRequired is returned when a lease is written without a due date.
	ErrDueDateRequired = errors.New("lease due date is required")

	// ErrInactiveMember is returned when an inactive member is selected for a lease.
	ErrInactiveMember = errors.New("member is not active")

	// ErrDeleteProtected is returned when a row is still referenced by a protected relation.
	ErrDeleteProtected = errors.New("record is referenced and can not be deleted")

	// ErrDuplicateBookItemCode is returned when a book already has a copy with the same code.
	ErrDuplicateBookItemCode = errors.New("book item code already exists for this book")

	// ErrConstraintViolation is returned for other rejected writes (missing references, required columns).
	ErrConstraintViolation = errors.New("write rejected by a data constraint")

	// ErrPolicySettingsNotFound is returned when no policy settings row exists.
	ErrPolicySettingsNotFound = errors.New("no policy settings configured")
)

var (
	ErrBuildingQueryFailed  = errors.New("building query failed")
	ErrQueryingFailed       = errors.New("querying failed")
	ErrExecutingFailed      = errors.New("executing statement failed")
	ErrScanningDBRowFailed  = errors.New("scanning db row failed")
	ErrRowsAffectedFailed   = errors.New("reading rows affected failed")
	ErrTransactionFailed    = errors.New("transaction failed")
	ErrCreatingSchemaFailed = errors.New("creating schema failed")
)

var (
	ErrUnknownFilterEntity = errors.New("unknown filter entity")
	ErrUnknownFilterKey    = errors.New("unknown filter key")
	ErrInvalidFilterValue  = errors.New("invalid filter value")
)
