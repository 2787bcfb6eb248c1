package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/strategickhaos/pipetrades/internal/core/domain"
	"github.com/strategickhaos/pipetrades/internal/core/ports"
)

// ErrUnknownKind is returned when a list filter names a kind that is never
// saved.
var ErrUnknownKind = errors.New("unknown job kind")

// JobService reads back saved calculations.
type JobService struct {
	jobs  ports.JobRepository
	cache ports.CacheService
}

// NewJobService creates a new JobService.
func NewJobService(jobs ports.JobRepository, cache ports.CacheService) *JobService {
	return &JobService{jobs: jobs, cache: cache}
}

// List returns saved jobs, newest first, optionally filtered by kind.
// It also returns the total count for pagination.
func (s *JobService) List(ctx context.Context, kind string, limit, offset int) ([]domain.Job, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	if kind == "" {
		return s.jobs.ListRecent(ctx, limit, offset)
	}

	switch kind {
	case domain.JobKindBeam, domain.JobKindOffset, domain.JobKindCutback, domain.JobKindCalibration:
	default:
		return nil, 0, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	return s.jobs.ListByKind(ctx, kind, limit, offset)
}

// GetByID returns a single saved job.
func (s *JobService) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	return s.jobs.GetByID(ctx, id)
}

// Stats summarizes the jobs table. Counts only move on writes, so a short
// cache keeps the dashboard polling cheap.
func (s *JobService) Stats(ctx context.Context) (*domain.JobStats, error) {
	const cacheKey = "jobs:stats"
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var stats domain.JobStats
			if err := json.Unmarshal(data, &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.jobs.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 60)
		}
	}

	return stats, nil
}
