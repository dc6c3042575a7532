// Package observability wires OpenTelemetry tracing and metrics for the error
// handler.
//
// Tracing supplies the trace id copied into problem responses and log records;
// metrics count translated failures by kind and status.
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//
//	mc := observability.DefaultMeterConfig("my-service")
//	mp, err := observability.InitMeter(ctx, &mc)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewFailureMetrics(observability.Meter("my-service"))
package observability
