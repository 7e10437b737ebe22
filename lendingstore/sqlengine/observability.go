package sqlengine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mikietechie/sapp-library/lendingstore"
)

// Log messages and attributes.
const (
	logMsgBuildQueryFailed    = "failed to build sql query"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database statement execution failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgBeginTxFailed       = "failed to begin transaction"
	logMsgCommitFailed        = "failed to commit transaction"
	logMsgRollbackFailed      = "failed to roll back transaction"
	logMsgEncodeCodesFailed   = "failed to encode produced codes"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "sqlengine operation: "
	logMsgOperationFailed     = "sqlengine operation failed: "

	logAttrError      = "error"
	logAttrErrorType  = "error_type"
	logAttrQuery      = "query"
	logAttrDurationMS = "duration_ms"
	logAttrRowCount   = "row_count"
	logAttrID         = "id"
	logAttrAvailable  = "available"
	logAttrDialect    = "dialect"

	logActionQuery = "query"
	logActionExec  = "exec"
)

// Metric names.
const (
	metricOperationDuration    = "sqlengine_operation_duration_seconds"
	metricOperations           = "sqlengine_operations_total"
	metricDatabaseErrors       = "sqlengine_database_errors_total"
	metricConcurrencyConflicts = "sqlengine_concurrency_conflicts_total"
)

// Span names, attributes and status values.
const (
	spanNamePrefix = "sqlengine."

	spanAttrOperation  = "operation"
	spanAttrErrorType  = "error_type"
	spanAttrDurationMS = "duration_ms"
	spanAttrDialect    = "dialect"

	labelStatus = "status"

	statusSuccess = "success"
	statusError   = "error"
)

// Error types used as metric labels and span attributes.
const (
	errorTypeNotFound            = "not_found"
	errorTypeConcurrencyConflict = "concurrency_conflict"
	errorTypeDuplicate           = "duplicate"
	errorTypeConstraint          = "constraint_violation"
	errorTypeDeleteProtected     = "delete_protected"
	errorTypeRejected            = "rejected"
	errorTypeCanceled            = "canceled"
	errorTypeTimeout             = "timeout"
	errorTypeBuildQuery          = "build_query"
	errorTypeDatabase            = "database"
)

// Operation names.
const (
	operationCreateSchema       = "create_schema"
	operationSavePolicy         = "save_policy_settings"
	operationLoadPolicy         = "load_policy_settings"
	operationSaveGenre          = "save_genre"
	operationDeleteGenre        = "delete_genre"
	operationListGenres         = "list_genres"
	operationSaveSeries         = "save_series"
	operationDeleteSeries       = "delete_series"
	operationSaveBookType       = "save_book_type"
	operationDeleteBookType     = "delete_book_type"
	operationSaveBook           = "save_book"
	operationGetBook            = "get_book"
	operationDeleteBook         = "delete_book"
	operationCountBooksPerGenre = "count_books_per_genre"
	operationSaveBookItem       = "save_book_item"
	operationGetBookItem        = "get_book_item"
	operationListBookItems      = "list_book_items"
	operationDeleteBookItem     = "delete_book_item"
	operationSaveMember         = "save_member"
	operationGetMember          = "get_member"
	operationListMembers        = "list_members"
	operationApplyLeaseWrite    = "apply_lease_write"
	operationGetLease           = "get_lease"
	operationListLeases         = "list_leases"
	operationSaveBooking        = "save_booking"
	operationGetBooking         = "get_booking"
	operationListBookings       = "list_bookings"
	operationRecordRestock      = "record_restock"
	operationListRestockActions = "list_restock_actions"
)

/***** logging *****/

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (s Store) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	s.logDebug(ctx, logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
}

// logError logs error information at the error level if a logger is configured.
func (s Store) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
	case s.logger != nil:
		s.logger.Error(message, allArgs...)
	}
}

func (s Store) logWarn(ctx context.Context, message string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.WarnContext(ctx, message, args...)
	case s.logger != nil:
		s.logger.Warn(message, args...)
	}
}

func (s Store) logInfo(ctx context.Context, message string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.InfoContext(ctx, message, args...)
	case s.logger != nil:
		s.logger.Info(message, args...)
	}
}

func (s Store) logDebug(ctx context.Context, message string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.DebugContext(ctx, message, args...)
	case s.logger != nil:
		s.logger.Debug(message, args...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

/***** metrics *****/

func (s Store) recordDuration(ctx context.Context, duration time.Duration, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextual, ok := s.metricsCollector.(lendingstore.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
}

func (s Store) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextual, ok := s.metricsCollector.(lendingstore.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metric, labels)
}

/***** operation observer *****/

// operationObserver wraps one public Store operation with a span, metrics and a completion log.
type operationObserver struct {
	s         Store
	ctx       context.Context
	operation string
	span      lendingstore.SpanContext
	start     time.Time
}

// observe starts observing operation. The returned context carries the span, if tracing is configured.
func (s Store) observe(ctx context.Context, operation string) (context.Context, *operationObserver) {
	observer := &operationObserver{
		s:         s,
		ctx:       ctx,
		operation: operation,
		start:     time.Now(),
	}

	if s.tracingCollector != nil {
		ctx, observer.span = s.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, map[string]string{
			spanAttrOperation: operation,
			spanAttrDialect:   s.dialectName,
		})
		observer.ctx = ctx
	}

	return ctx, observer
}

// finish records the outcome of the observed operation. args are appended to the success log.
func (o *operationObserver) finish(err error, args ...any) {
	duration := time.Since(o.start)

	if err == nil {
		o.s.recordDuration(o.ctx, duration, map[string]string{spanAttrOperation: o.operation, labelStatus: statusSuccess})
		o.s.incrementCounter(o.ctx, metricOperations, map[string]string{spanAttrOperation: o.operation, labelStatus: statusSuccess})

		logArgs := append([]any{logAttrDurationMS, toMilliseconds(duration)}, args...)
		o.s.logInfo(o.ctx, logMsgOperation+o.operation, logArgs...)

		o.finishSpan(statusSuccess, map[string]string{spanAttrDurationMS: formatMilliseconds(duration)})

		return
	}

	errorType := classifyErrorType(err)

	o.s.recordDuration(o.ctx, duration, map[string]string{spanAttrOperation: o.operation, labelStatus: statusError})
	o.s.incrementCounter(o.ctx, metricOperations, map[string]string{spanAttrOperation: o.operation, labelStatus: statusError})

	switch errorType {
	case errorTypeConcurrencyConflict:
		o.s.incrementCounter(o.ctx, metricConcurrencyConflicts, map[string]string{spanAttrOperation: o.operation})
		o.s.logWarn(o.ctx, logMsgConcurrencyConflict, spanAttrOperation, o.operation)
	case errorTypeDatabase, errorTypeBuildQuery:
		o.s.incrementCounter(o.ctx, metricDatabaseErrors, map[string]string{
			spanAttrOperation: o.operation,
			labelStatus:       statusError,
			spanAttrErrorType: errorType,
		})
	default:
		o.s.logDebug(o.ctx, logMsgOperationFailed+o.operation, logAttrErrorType, errorType, logAttrError, err.Error())
	}

	o.finishSpan(statusError, map[string]string{
		spanAttrErrorType:  errorType,
		spanAttrDurationMS: formatMilliseconds(duration),
	})
}

func (o *operationObserver) finishSpan(status string, attrs map[string]string) {
	if o.s.tracingCollector == nil || o.span == nil {
		return
	}

	o.s.tracingCollector.FinishSpan(o.span, status, attrs)
}

func formatMilliseconds(d time.Duration) string {
	return fmt.Sprintf("%.2f", toMilliseconds(d))
}

// classifyErrorType maps an error returned by the Store onto an error type label.
func classifyErrorType(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return errorTypeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return errorTypeTimeout
	case errors.Is(err, lendingstore.ErrConcurrencyConflict):
		return errorTypeConcurrencyConflict
	case errors.Is(err, lendingstore.ErrNotFound), errors.Is(err, lendingstore.ErrPolicySettingsNotFound):
		return errorTypeNotFound
	case errors.Is(err, lendingstore.ErrDuplicateBookItemCode):
		return errorTypeDuplicate
	case errors.Is(err, lendingstore.ErrDeleteProtected):
		return errorTypeDeleteProtected
	case errors.Is(err, lendingstore.ErrConstraintViolation):
		return errorTypeConstraint
	case errors.Is(err, lendingstore.ErrDueDateRequired), errors.Is(err, lendingstore.ErrInactiveMember):
		return errorTypeRejected
	case errors.Is(err, lendingstore.ErrBuildingQueryFailed):
		return errorTypeBuildQuery
	default:
		return errorTypeDatabase
	}
}
