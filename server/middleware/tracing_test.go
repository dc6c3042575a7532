package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/problemkit/errors"
	"github.com/kbukum/problemkit/observability"
	"github.com/kbukum/problemkit/server/middleware"
)

func TestTracingRecordsFailureOnSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	}()

	log, _ := newTestLogger()
	h := middleware.Chain(middleware.Tracing(), middleware.Errors(log))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.NotFound("Widget", "5").WithSource("widgets"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/widgets/5", nil))

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	span := spans[0]
	if got := decodeProblem(t, rec.Body.Bytes()).TraceID; got != span.SpanContext().TraceID().String() {
		t.Errorf("traceId = %q, want %q", got, span.SpanContext().TraceID())
	}

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if v := attrs[observability.AttrFailureKind]; v.AsString() != "not_found" {
		t.Errorf("%s = %q", observability.AttrFailureKind, v.AsString())
	}
	if v := attrs[observability.AttrFailureSource]; v.AsString() != "widgets" {
		t.Errorf("%s = %q", observability.AttrFailureSource, v.AsString())
	}
}
