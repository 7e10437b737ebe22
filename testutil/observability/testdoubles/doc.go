// Package testdoubles provides test doubles (spies) for the observability interfaces.
//
// The spies capture calls made by the SQL store and the command/query wrappers:
//   - MetricsCollectorSpy: captures metrics recording calls for verification
//   - TracingCollectorSpy: captures tracing spans with their start and end attributes
//   - ContextualLoggerSpy: captures structured logging with context
//   - LogHandlerSpy: captures slog records
//
// They allow asserting on observability instrumentation without a telemetry backend.
package testdoubles
