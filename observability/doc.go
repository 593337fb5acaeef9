// Package observability provides OpenTelemetry tracing and metrics for the
// audio QA pipeline.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, cfg, "auto-qa")
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, cfg, "auto-qa")
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("auto-qa"))
//	metrics.RecordOutcome(ctx, "succeeded", elapsed)
package observability
