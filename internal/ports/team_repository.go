package ports

import (
	"context"

	"github.com/polancolabs/growthlab/internal/domain"
)

type TeamRepository interface {
	Create(ctx context.Context, member *domain.TeamMember) error
	GetByID(ctx context.Context, id string) (*domain.TeamMember, error)
	List(ctx context.Context) ([]*domain.TeamMember, error)
	Update(ctx context.Context, member *domain.TeamMember) error
	Delete(ctx context.Context, id string) error
}
