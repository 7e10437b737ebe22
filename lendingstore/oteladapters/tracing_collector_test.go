package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/mikietechie/sapp-library/lendingstore/oteladapters"
)

func givenTracingCollector(t *testing.T) (*oteladapters.TracingCollector, *tracetest.InMemoryExporter) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return oteladapters.NewTracingCollector(provider.Tracer("test")), exporter
}

func attributeValue(attrs []attribute.KeyValue, key string) (string, bool) {
	for _, attr := range attrs {
		if string(attr.Key) == key {
			return attr.Value.AsString(), true
		}
	}

	return "", false
}

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	// arrange
	collector, exporter := givenTracingCollector(t)

	// act
	_, span := collector.StartSpan(context.Background(), "sqlengine.apply_lease_write", map[string]string{
		"operation": "apply_lease_write",
		"dialect":   "postgres",
	})
	span.AddAttribute("book_item_id", "0198a2f4")
	collector.FinishSpan(span, "success", map[string]string{"duration_ms": "1.25"})

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "sqlengine.apply_lease_write", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)

	for key, want := range map[string]string{
		"operation":    "apply_lease_write",
		"dialect":      "postgres",
		"book_item_id": "0198a2f4",
		"duration_ms":  "1.25",
	} {
		got, ok := attributeValue(spans[0].Attributes, key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
}

func Test_TracingCollector_MapsStatuses(t *testing.T) {
	testCases := []struct {
		status   string
		wantCode codes.Code
	}{
		{status: "success", wantCode: codes.Ok},
		{status: "idempotent", wantCode: codes.Ok},
		{status: "error", wantCode: codes.Error},
		{status: "canceled", wantCode: codes.Error},
		{status: "timeout", wantCode: codes.Error},
		{status: "concurrency_conflict", wantCode: codes.Error},
		{status: "something_else", wantCode: codes.Unset},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			// arrange
			collector, exporter := givenTracingCollector(t)
			_, span := collector.StartSpan(context.Background(), "op", nil)

			// act
			collector.FinishSpan(span, tc.status, nil)

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tc.wantCode, spans[0].Status.Code)
		})
	}
}

func Test_TracingCollector_KeepsUnknownStatusAsAttribute(t *testing.T) {
	// arrange
	collector, exporter := givenTracingCollector(t)
	_, span := collector.StartSpan(context.Background(), "op", nil)

	// act
	collector.FinishSpan(span, "partial", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	got, ok := attributeValue(spans[0].Attributes, "status")
	assert.True(t, ok)
	assert.Equal(t, "partial", got)
}

func Test_TracingCollector_NestsSpansThroughContext(t *testing.T) {
	// arrange
	collector, exporter := givenTracingCollector(t)

	// act
	ctx, parent := collector.StartSpan(context.Background(), "leasebookitem", nil)
	_, child := collector.StartSpan(ctx, "sqlengine.apply_lease_write", nil)
	collector.FinishSpan(child, "success", nil)
	collector.FinishSpan(parent, "success", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "sqlengine.apply_lease_write", spans[0].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.Equal(t, spans[1].SpanContext.TraceID(), spans[0].SpanContext.TraceID())
}

func Test_TracingCollector_IgnoresForeignSpanContexts(t *testing.T) {
	// arrange
	collector, exporter := givenTracingCollector(t)

	// act
	collector.FinishSpan(nil, "success", nil)

	// assert
	assert.Empty(t, exporter.GetSpans())
}
