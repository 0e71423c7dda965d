// Package observability exports OpenTelemetry traces and metrics over
// OTLP/HTTP and aggregates component health.
//
//	tel, err := observability.Start(ctx, observability.Resource{Service: "endpoints"}, cfg.Tracing, cfg.Metrics)
//	defer tel.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanInvoke)
//	observability.SetAttributes(ctx, observability.AttrBackend.String("completion-only"))
//	defer span.End()
//
//	tel.Metrics.RecordInvocation(ctx, "completion-only", "ok", elapsed)
//
// Health:
//
//	health := observability.NewServiceHealth("endpoints", version.Version)
//	health.AddComponent(observability.AvailabilityChecker{Target: dispatcher}.CheckHealth(ctx))
package observability
