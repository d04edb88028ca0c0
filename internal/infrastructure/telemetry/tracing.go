package telemetry

import (
	"context"
	"fmt"

	"github.com/erp/skucatalog/internal/domain/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the tracer used for catalog spans
const TracerName = "sku-catalog"

// Span attribute keys for catalog spans
const (
	SpanAttrBranchID  = "branch_id"
	SpanAttrSKUID     = "sku_id"
	SpanAttrSKUCode   = "sku_code"
	SpanAttrTerm      = "search_term"
	SpanAttrResults   = "result_count"
	SpanAttrErrorCode = "error_code"
)

// StartSpan starts an internal span named "catalog.<operation>" using the
// tracer provider from ctx's span or the global one.
// The caller must end the span.
//
//	ctx, span := telemetry.StartSpan(ctx, "create_sku")
//	defer span.End()
func StartSpan(ctx context.Context, operation string, keyValues ...any) (context.Context, trace.Span) {
	tracer := tracerFor(ctx)
	ctx, span := tracer.Start(ctx, "catalog."+operation, trace.WithSpanKind(trace.SpanKindInternal))
	SetAttributes(span, keyValues...)
	return ctx, span
}

func tracerFor(ctx context.Context) trace.Tracer {
	if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		return span.TracerProvider().Tracer(TracerName)
	}
	return otel.GetTracerProvider().Tracer(TracerName)
}

// SetAttributes adds alternating key/value pairs to the span; non-string keys are skipped.
func SetAttributes(span trace.Span, keyValues ...any) {
	if span == nil || len(keyValues) < 2 {
		return
	}
	attrs := make([]attribute.KeyValue, 0, len(keyValues)/2)
	for i := 0; i+1 < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, toAttribute(key, keyValues[i+1]))
	}
	span.SetAttributes(attrs...)
}

// RecordError records err on the span, tags its DomainError code and marks the span failed.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}
	if code := shared.ErrorCode(err); code != "" {
		span.SetAttributes(attribute.String(SpanAttrErrorCode, code))
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// GetTraceID returns the trace id of the span in ctx, or "".
func GetTraceID(ctx context.Context) string {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}
