package telemetry

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "cipher-room"

type Config struct {
	// OTLP/HTTP collector URL; empty disables export.
	Endpoint string
	// Component is reported as service.component ("hint-proxy", "bot").
	Component string
}

// Provider owns the global tracer provider when export is enabled.
type Provider struct {
	tp *sdktrace.TracerProvider
}

// Setup installs a global tracer provider. With no endpoint the otel
// no-op provider stays in place and Shutdown does nothing.
func Setup(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.Endpoint == "" {
		log.Printf("telemetry: disabled")
		return &Provider{}, nil
	}

	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.component", cfg.Component),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	log.Printf("telemetry: exporting traces to %s", cfg.Endpoint)
	return &Provider{tp: tp}, nil
}

func (p *Provider) Enabled() bool { return p != nil && p.tp != nil }

func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.tp.Shutdown(ctx)
}
