package otel

import (
	"context"

	"github.com/polancolabs/growthlab/internal/domain"
	"github.com/polancolabs/growthlab/internal/ports"
)

// NoOpExporter is a metrics exporter that does nothing.
type NoOpExporter struct{}

// NewNoOpExporter creates a new no-op exporter for graceful degradation.
func NewNoOpExporter() *NoOpExporter {
	return &NoOpExporter{}
}

func (e *NoOpExporter) RecordMutation(ctx context.Context, kind ports.EntityKind, op ports.Operation) {
}

func (e *NoOpExporter) RecordExperimentFinished(ctx context.Context, status domain.Status) {}

func (e *NoOpExporter) Close(ctx context.Context) error {
	return nil
}
