package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracingConfigApplyDefaults(t *testing.T) {
	tests := []struct {
		name     string
		cfg      TracingConfig
		endpoint string
		rate     float64
	}{
		{"empty", TracingConfig{}, "localhost:4318", 1},
		{"explicit", TracingConfig{Exporter: Exporter{Endpoint: "collector:4318"}, SampleRate: 0.25}, "collector:4318", 0.25},
		{"negative kept", TracingConfig{SampleRate: -1}, "localhost:4318", -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.ApplyDefaults()
			if tc.cfg.Endpoint != tc.endpoint || tc.cfg.SampleRate != tc.rate {
				t.Errorf("got %+v", tc.cfg)
			}
			if tc.cfg.Enabled {
				t.Error("defaults must not enable export")
			}
		})
	}
}

func TestMetricsConfigApplyDefaults(t *testing.T) {
	cfg := MetricsConfig{}
	cfg.ApplyDefaults()
	if cfg.Interval != 15*time.Second || cfg.Endpoint != "localhost:4318" {
		t.Errorf("got %+v", cfg)
	}
	cfg = MetricsConfig{Interval: time.Minute}
	cfg.ApplyDefaults()
	if cfg.Interval != time.Minute {
		t.Errorf("explicit interval replaced: %v", cfg.Interval)
	}
}

func TestNewMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	if metrics == nil {
		t.Fatal("expected non-nil metrics")
	}

	ctx := context.Background()
	metrics.RecordRequestStart(ctx)
	metrics.RecordRequestEnd(ctx, "POST", "/v1/invoke", 200, 100*time.Millisecond)
	metrics.RecordInvocation(ctx, "completion-only", "ok", 50*time.Millisecond)
	metrics.RecordError(ctx, "execute", "completion-only")
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, sdktrace.AlwaysSample().Description()},
		{2.0, sdktrace.AlwaysSample().Description()},
		{0, sdktrace.NeverSample().Description()},
		{-1, sdktrace.NeverSample().Description()},
		{0.5, sdktrace.TraceIDRatioBased(0.5).Description()},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%v", tc.rate), func(t *testing.T) {
			if got := sampler(tc.rate).Description(); got != tc.want {
				t.Errorf("sampler(%v) = %q, want %q", tc.rate, got, tc.want)
			}
		})
	}
}

func TestResourceBuild(t *testing.T) {
	res, err := Resource{Service: "endpoints", Version: "1.2.3", Environment: "test"}.build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := map[string]string{"service.name": "endpoints", "service.version": "1.2.3", "environment": "test"}
	for _, kv := range res.Attributes() {
		if v, ok := want[string(kv.Key)]; ok && kv.Value.AsString() == v {
			delete(want, string(kv.Key))
		}
	}
	if len(want) != 0 {
		t.Errorf("missing attributes %v in %v", want, res.Attributes())
	}
}

func TestNewServiceHealth(t *testing.T) {
	sh := NewServiceHealth("endpoints", "1.0.0")

	if sh.Service != "endpoints" {
		t.Errorf("expected Service 'endpoints', got %s", sh.Service)
	}
	if sh.Version != "1.0.0" {
		t.Errorf("expected Version '1.0.0', got %s", sh.Version)
	}
	if sh.Status != HealthStatusUp {
		t.Errorf("expected Status 'up', got %s", sh.Status)
	}
}

func TestServiceHealth_AddComponent(t *testing.T) {
	sh := NewServiceHealth("endpoints", "1.0.0")

	sh.AddComponent(Health{Name: "chat-large", Status: HealthStatusUp})
	if sh.Status != HealthStatusUp {
		t.Errorf("expected status 'up' after healthy component, got %s", sh.Status)
	}

	sh.AddComponent(Health{Name: "fallback", Status: HealthStatusDegraded, Message: "fallback"})
	if sh.Status != HealthStatusDegraded {
		t.Errorf("expected status 'degraded', got %s", sh.Status)
	}

	sh.AddComponent(Health{Name: "instruct-small", Status: HealthStatusDown})
	if sh.Status != HealthStatusDown {
		t.Errorf("expected status 'down', got %s", sh.Status)
	}

	if len(sh.Components) != 3 {
		t.Errorf("expected 3 components, got %d", len(sh.Components))
	}
}

func TestServiceHealth_DegradedDoesNotOverrideDown(t *testing.T) {
	sh := NewServiceHealth("endpoints", "1.0.0")
	sh.AddComponent(Health{Name: "a", Status: HealthStatusDown})
	sh.AddComponent(Health{Name: "b", Status: HealthStatusDegraded})

	if sh.Status != HealthStatusDown {
		t.Errorf("expected 'down' not overridden by 'degraded', got %s", sh.Status)
	}
}

type fakeTarget struct {
	name      string
	available bool
}

func (f fakeTarget) Name() string                       { return f.name }
func (f fakeTarget) IsAvailable(_ context.Context) bool { return f.available }

func TestAvailabilityChecker(t *testing.T) {
	tests := []struct {
		name    string
		checker AvailabilityChecker
		want    HealthStatus
		wantMsg string
	}{
		{"up", AvailabilityChecker{Target: fakeTarget{"gpt2", true}}, HealthStatusUp, ""},
		{"down", AvailabilityChecker{Target: fakeTarget{"gpt2", false}}, HealthStatusDown, "not available"},
		{
			"degraded",
			AvailabilityChecker{
				Target:   fakeTarget{"unknown-xyz", true},
				Degraded: func() (bool, string) { return true, "fallback response" },
			},
			HealthStatusDegraded, "fallback response",
		},
		{
			"not degraded",
			AvailabilityChecker{
				Target:   fakeTarget{"gpt2", true},
				Degraded: func() (bool, string) { return false, "" },
			},
			HealthStatusUp, "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := tc.checker.CheckHealth(context.Background())
			if h.Status != tc.want || h.Message != tc.wantMsg {
				t.Errorf("got (%s, %q), want (%s, %q)", h.Status, h.Message, tc.want, tc.wantMsg)
			}
			if h.Name != tc.checker.Target.Name() {
				t.Errorf("name = %q", h.Name)
			}
		})
	}
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), SpanInvoke)
	defer span.End()
	if ctx == nil || span == nil {
		t.Fatal("expected a context and a span")
	}
}

func TestSpanAttributesAndErrorRecorded(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer otel.SetTracerProvider(prev)

	ctx, span := StartSpan(context.Background(), SpanInvoke)
	SetAttributes(ctx,
		AttrBackend.String("completion-only"),
		AttrFallback.Bool(false),
		AttrDurationMs.Int64(12),
	)
	RecordError(ctx, fmt.Errorf("boom"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	got := spans[0]
	if got.Name != SpanInvoke {
		t.Errorf("span name = %q", got.Name)
	}
	if got.Status.Code != codes.Error || got.Status.Description != "boom" {
		t.Errorf("status = %+v", got.Status)
	}
	if len(got.Events) == 0 {
		t.Error("expected recorded error event")
	}
	attrs := map[attribute.Key]bool{}
	for _, kv := range got.Attributes {
		attrs[kv.Key] = true
	}
	for _, k := range []attribute.Key{AttrBackend, AttrFallback, AttrDurationMs} {
		if !attrs[k] {
			t.Errorf("attribute %s missing", k)
		}
	}
}

func TestSpanHelpersWithoutSpan(t *testing.T) {
	// Must not panic on a context without a span.
	ctx := context.Background()
	SetAttributes(ctx, AttrBackend.String("x"))
	RecordError(ctx, fmt.Errorf("no span"))
}

func TestStartDisabled(t *testing.T) {
	tel, err := Start(context.Background(), Resource{Service: "endpoints"}, TracingConfig{}, MetricsConfig{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if tel.Metrics != nil {
		t.Error("metrics must be nil when export is off")
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestStartEnabled(t *testing.T) {
	prevTP, prevMP := otel.GetTracerProvider(), otel.GetMeterProvider()
	defer func() {
		otel.SetTracerProvider(prevTP)
		otel.SetMeterProvider(prevMP)
	}()

	tracing := TracingConfig{Exporter: Exporter{Enabled: true, Insecure: true}}
	metrics := MetricsConfig{Exporter: Exporter{Enabled: true, Insecure: true}}
	tracing.ApplyDefaults()
	metrics.ApplyDefaults()

	// The exporters connect lazily, so no collector is needed here.
	tel, err := Start(context.Background(), Resource{Service: "endpoints", Version: "dev"}, tracing, metrics)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if tel.Metrics == nil {
		t.Error("expected metrics when export is on")
	}
	if len(tel.shutdown) != 2 {
		t.Errorf("shutdown hooks = %d, want 2", len(tel.shutdown))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = tel.Shutdown(ctx)
}
