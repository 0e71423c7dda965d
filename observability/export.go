package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/kbukum/endpoints/logger"
)

const defaultCollector = "localhost:4318"

// Resource names the process in every exported span and metric.
type Resource struct {
	Service     string
	Version     string
	Environment string
}

func (r Resource) build() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(r.Service),
			semconv.ServiceVersion(r.Version),
			attribute.String("environment", r.Environment),
		),
	)
}

// Exporter is an OTLP/HTTP collector target.
type Exporter struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
}

// TracingConfig is the tracing section of the host config.
type TracingConfig struct {
	Exporter `yaml:",inline" mapstructure:",squash"`
	// SampleRate is the share of root traces kept. Zero is read as 1; a
	// negative rate keeps nothing.
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// ApplyDefaults points at a local collector and samples everything.
func (c *TracingConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = defaultCollector
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1
	}
}

// MetricsConfig is the metrics section of the host config.
type MetricsConfig struct {
	Exporter `yaml:",inline" mapstructure:",squash"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults points at a local collector and exports every 15s.
func (c *MetricsConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = defaultCollector
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// Telemetry holds whatever Start brought up.
type Telemetry struct {
	// Metrics is nil when metric export is off.
	Metrics *Metrics

	shutdown []func(context.Context) error
}

// Shutdown flushes and stops every exporter.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for _, fn := range t.shutdown {
		errs = append(errs, fn(ctx))
	}
	return errors.Join(errs...)
}

// Start installs the global tracer and meter providers enabled in the
// configs. With both disabled it returns an empty Telemetry and the global
// no-op providers stay in place.
func Start(ctx context.Context, res Resource, tracing TracingConfig, metrics MetricsConfig) (*Telemetry, error) {
	t := &Telemetry{}
	if !tracing.Enabled && !metrics.Enabled {
		return t, nil
	}

	r, err := res.build()
	if err != nil {
		return nil, fmt.Errorf("telemetry resource: %w", err)
	}

	if tracing.Enabled {
		tp, err := newTracerProvider(ctx, r, tracing)
		if err != nil {
			return nil, err
		}
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		))
		t.shutdown = append(t.shutdown, tp.Shutdown)
		logger.Info("trace export started", logger.Fields("endpoint", tracing.Endpoint, "sample_rate", tracing.SampleRate))
	}

	if metrics.Enabled {
		mp, err := newMeterProvider(ctx, r, metrics)
		if err != nil {
			_ = t.Shutdown(ctx)
			return nil, err
		}
		otel.SetMeterProvider(mp)
		t.shutdown = append(t.shutdown, mp.Shutdown)
		if t.Metrics, err = NewMetrics(mp.Meter(res.Service)); err != nil {
			_ = t.Shutdown(ctx)
			return nil, err
		}
		logger.Info("metric export started", logger.Fields("endpoint", metrics.Endpoint, "interval", metrics.Interval.String()))
	}
	return t, nil
}

func newTracerProvider(ctx context.Context, r *resource.Resource, cfg TracingConfig) (*sdktrace.TracerProvider, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("trace exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler(cfg.SampleRate))),
	), nil
}

func sampler(rate float64) sdktrace.Sampler {
	if rate >= 1 {
		return sdktrace.AlwaysSample()
	}
	if rate <= 0 {
		return sdktrace.NeverSample()
	}
	return sdktrace.TraceIDRatioBased(rate)
}

func newMeterProvider(ctx context.Context, r *resource.Resource, cfg MetricsConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("metric exporter: %w", err)
	}
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.Interval))),
		sdkmetric.WithResource(r),
	), nil
}
