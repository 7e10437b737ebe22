package sqlengine

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mikietechie/sapp-library/lendingstore"
)

var (
	ErrNilClock       = errors.New("clock must not be nil")
	ErrNilIDGenerator = errors.New("id generator must not be nil")
)

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: row counts and completed writes (production-safe)
// Warn level: non-critical issues like cleanup failures
// Error level: failures that abort an operation.
func WithLogger(logger lendingstore.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// It receives operation durations, operation counts, database errors and concurrency conflicts.
func WithMetrics(collector lendingstore.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
func WithTracing(collector lendingstore.TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// It is preferred over the plain logger when both are configured.
func WithContextualLogger(logger lendingstore.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithClock sets the source of created_at and updated_at timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) error {
		if clock == nil {
			return ErrNilClock
		}

		s.clock = clock

		return nil
	}
}

// WithIDGenerator sets the generator for new row IDs. Defaults to UUIDv7.
func WithIDGenerator(generator func() (uuid.UUID, error)) Option {
	return func(s *Store) error {
		if generator == nil {
			return ErrNilIDGenerator
		}

		s.newID = generator

		return nil
	}
}
