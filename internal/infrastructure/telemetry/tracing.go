package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope for all spans in this service
const TracerName = "ordersync"

// Span attribute keys used across the sync pipeline
const (
	SpanAttrRunID         = "sync.run_id"
	SpanAttrSourceOrderID = "sync.source_order_id"
	SpanAttrOrderNumber   = "sync.order_number"
	SpanAttrOrderCount    = "sync.order_count"
	SpanAttrAttempt       = "sync.attempt"
)

// StartSpan starts an internal span with the given attributes. The caller
// must call span.End().
//
//	ctx, span := telemetry.StartSpan(ctx, "sync.run", telemetry.Attr(telemetry.SpanAttrRunID, id))
//	defer span.End()
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer(TracerName)
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// Attr builds a span attribute from a key and an arbitrary value
func Attr(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case float64:
		return attribute.Float64(key, v)
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}

// SetAttribute sets one attribute on a live span
func SetAttribute(span trace.Span, key string, value any) {
	span.SetAttributes(Attr(key, value))
}

// RecordError records the error on the span and marks it failed
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
