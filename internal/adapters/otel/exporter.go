package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/polancolabs/growthlab/internal/domain"
	"github.com/polancolabs/growthlab/internal/ports"
)

const (
	serviceName    = "growthlab"
	serviceVersion = "1.0.0"
)

// Exporter records workspace activity counters to an OTEL Collector.
type Exporter struct {
	provider       *sdkmetric.MeterProvider
	meter          metric.Meter
	mutationsTotal metric.Int64Counter
	finishedTotal  metric.Int64Counter
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	mutationsTotal, err := meter.Int64Counter(
		"growthlab_mutations_total",
		metric.WithDescription("Total applied workspace mutations"),
		metric.WithUnit("{mutation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating mutations counter: %w", err)
	}

	finishedTotal, err := meter.Int64Counter(
		"growthlab_experiments_finished_total",
		metric.WithDescription("Total experiments moved to a finished status"),
		metric.WithUnit("{experiment}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating finished counter: %w", err)
	}

	return &Exporter{
		provider:       provider,
		meter:          meter,
		mutationsTotal: mutationsTotal,
		finishedTotal:  finishedTotal,
	}, nil
}

// RecordMutation counts one applied mutation, labelled by entity and op.
func (e *Exporter) RecordMutation(ctx context.Context, kind ports.EntityKind, op ports.Operation) {
	e.mutationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", string(kind)),
		attribute.String("op", string(op)),
	))
}

// RecordExperimentFinished counts a completed gated transition, labelled by
// outcome.
func (e *Exporter) RecordExperimentFinished(ctx context.Context, status domain.Status) {
	e.finishedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", string(status)),
	))
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
