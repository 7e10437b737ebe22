// Package oteladapters implements the lendingstore observability interfaces with OpenTelemetry.
//
// Use these adapters to plug the storage engine and the command/query handlers into an
// OpenTelemetry setup without writing your own implementations:
//
//	store, err := sqlengine.NewStoreFromPGXPool(pool,
//		sqlengine.WithContextualLogger(oteladapters.NewSlogBridgeLogger("sapp-library")),
//		sqlengine.WithMetrics(oteladapters.NewMetricsCollector(meterProvider.Meter("sapp-library"))),
//		sqlengine.WithTracing(oteladapters.NewTracingCollector(tracerProvider.Tracer("sapp-library"))),
//	)
package oteladapters
