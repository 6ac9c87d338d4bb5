package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/railzwaylabs/commissions/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
)

// NewMeterProvider installs the global OpenTelemetry meter provider.
func NewMeterProvider(lc fx.Lifecycle, cfg config.Config) (metric.MeterProvider, error) {
	if cfg.Otel.Exporter == config.OtelExporterNone {
		mp := metricnoop.NewMeterProvider()
		otel.SetMeterProvider(mp)
		return mp, nil
	}

	exporter, err := newMetricExporter(context.Background(), cfg.Otel)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(newResource(cfg)),
	)
	otel.SetMeterProvider(mp)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return mp.Shutdown(ctx)
		},
	})
	return mp, nil
}

func newMetricExporter(ctx context.Context, cfg config.OtelConfig) (sdkmetric.Exporter, error) {
	switch cfg.Exporter {
	case config.OtelExporterGRPC:
		return otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	case config.OtelExporterHTTP:
		return otlpmetrichttp.New(ctx,
			otlpmetrichttp.WithEndpoint(cfg.Endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrInvalidOtelExporter, cfg.Exporter)
	}
}

type RegistryResult struct {
	fx.Out

	Registry   *prometheus.Registry
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRegistry returns the registry for application metrics. The gatherer
// merges it with the default registry, which carries the runtime collectors
// and the gorm pool stats.
func NewRegistry() RegistryResult {
	reg := prometheus.NewRegistry()
	return RegistryResult{
		Registry:   reg,
		Registerer: reg,
		Gatherer:   prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}
}
