package ports

import (
	"context"

	"github.com/strategickhaos/pipetrades/internal/core/domain"
)

// JobRepository persists saved calculations.
type JobRepository interface {
	Insert(ctx context.Context, job *domain.Job) error
	GetByID(ctx context.Context, id string) (*domain.Job, error)
	ListRecent(ctx context.Context, limit, offset int) ([]domain.Job, int, error)
	ListByKind(ctx context.Context, kind string, limit, offset int) ([]domain.Job, int, error)
	Stats(ctx context.Context) (*domain.JobStats, error)
}
