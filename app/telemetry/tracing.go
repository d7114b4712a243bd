// Package telemetry configures OpenTelemetry tracing for the node. Every
// state transition run through OnsenApp.Execute becomes one span.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "onsenswapd"
	instrumentName = "github.com/onsenswap/onsenswap/app"
)

// Config holds the configuration for tracing
type Config struct {
	Enabled    bool
	Endpoint   string
	SampleRate float64
	ChainID    string
}

// Validate checks the endpoint and sample rate of an enabled config
func (cfg Config) Validate() error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Endpoint == "" {
		return errors.New("tracing endpoint is required")
	}
	if _, err := url.Parse(cfg.Endpoint); err != nil {
		return fmt.Errorf("invalid tracing endpoint: %w", err)
	}
	if cfg.SampleRate < 0 || cfg.SampleRate > 1 {
		return errors.New("sample rate must be between 0 and 1")
	}
	return nil
}

// Provider owns the installed tracer provider
type Provider struct {
	tracerProvider *tracesdk.TracerProvider
}

// NewProvider exports spans over OTLP/HTTP and installs the provider
// globally. A disabled config returns a provider that does nothing.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{}, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid telemetry config: %w", err)
	}

	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	client := otlptracehttp.NewClient(
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithURLPath("/v1/traces"),
	)
	exporter, err := otlptrace.New(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	tp := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exporter,
			tracesdk.WithMaxExportBatchSize(512),
			tracesdk.WithBatchTimeout(5*time.Second),
		),
		tracesdk.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
			attribute.String("chain.id", cfg.ChainID),
		)),
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(cfg.SampleRate))),
	)
	otel.SetTracerProvider(tp)

	return &Provider{tracerProvider: tp}, nil
}

// Shutdown flushes pending spans
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.tracerProvider == nil {
		return nil
	}
	return p.tracerProvider.Shutdown(ctx)
}

// StartOperation opens the span of one node operation
func StartOperation(ctx context.Context, op string, height uint64) (context.Context, trace.Span) {
	return otel.Tracer(instrumentName).Start(ctx, "onsen."+op,
		trace.WithAttributes(
			attribute.String("onsen.operation", op),
			attribute.Int64("onsen.height", int64(height)),
		),
	)
}

// EndOperation records err on span, if any, and ends it
func EndOperation(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
