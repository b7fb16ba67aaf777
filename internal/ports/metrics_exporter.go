package ports

import (
	"context"

	"github.com/polancolabs/growthlab/internal/domain"
)

// MetricsExporter records workspace activity for observability backends.
type MetricsExporter interface {
	// RecordMutation counts one applied mutation.
	RecordMutation(ctx context.Context, kind EntityKind, op Operation)
	// RecordExperimentFinished counts a completed gated transition.
	RecordExperimentFinished(ctx context.Context, status domain.Status)
	Close(ctx context.Context) error
}
