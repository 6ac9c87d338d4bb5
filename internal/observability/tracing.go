package observability

import (
	"context"
	"fmt"

	"github.com/railzwaylabs/commissions/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
)

func newResource(cfg config.Config) *resource.Resource {
	return resource.NewWithAttributes("",
		attribute.String("service.name", cfg.Otel.ServiceName),
		attribute.String("service.version", cfg.AppVersion),
		attribute.String("deployment.environment", cfg.Environment),
	)
}

// NewTracerProvider installs the global tracer provider. Without an exporter
// a no-op provider is used.
func NewTracerProvider(lc fx.Lifecycle, cfg config.Config) (trace.TracerProvider, error) {
	if cfg.Otel.Exporter == config.OtelExporterNone {
		tp := tracenoop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return tp, nil
	}

	exporter, err := newSpanExporter(context.Background(), cfg.Otel)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(newResource(cfg)),
	)
	otel.SetTracerProvider(tp)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		},
	})
	return tp, nil
}

func newSpanExporter(ctx context.Context, cfg config.OtelConfig) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case config.OtelExporterGRPC:
		return otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
	case config.OtelExporterHTTP:
		return otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(cfg.Endpoint),
			otlptracehttp.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrInvalidOtelExporter, cfg.Exporter)
	}
}
