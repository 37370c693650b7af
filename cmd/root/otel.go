package root

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.40.0"

	"github.com/stackctl/stackctl/pkg/version"
)

const AppName = "stackctl"

// otelConfig selects where --otel sends spans. Without an endpoint spans are
// recorded but not exported.
type otelConfig struct {
	// Endpoint is either host:port or a full http(s) URL.
	Endpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// Insecure disables TLS for a host:port endpoint. A URL's scheme decides on its own.
	Insecure bool `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
}

func parseOtelConfig() (otelConfig, error) {
	var cfg otelConfig
	if err := env.Parse(&cfg); err != nil {
		return otelConfig{}, fmt.Errorf("parse otel env: %w", err)
	}
	return cfg, nil
}

func (c otelConfig) exporterOptions() []otlptracehttp.Option {
	if strings.Contains(c.Endpoint, "://") {
		return []otlptracehttp.Option{otlptracehttp.WithEndpointURL(c.Endpoint)}
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(c.Endpoint)}
	if c.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return opts
}

// initOTelSDK installs the global tracer provider that the git lookups report
// to. The returned shutdown exports pending spans and must run before exit.
func initOTelSDK(ctx context.Context, cfg otelConfig) (func(context.Context) error, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(AppName),
			semconv.ServiceVersion(version.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}

	if cfg.Endpoint != "" {
		exporter, err := otlptracehttp.New(ctx, cfg.exporterOptions()...)
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
