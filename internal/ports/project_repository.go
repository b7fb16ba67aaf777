package ports

import (
	"context"

	"github.com/polancolabs/growthlab/internal/domain"
)

// ProjectRepository loads and stores whole project aggregates. List and
// GetByID return projects with all children attached, experiments ordered
// by ICE score descending.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
