package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/strategickhaos/pipetrades/internal/core/domain"
	"github.com/strategickhaos/pipetrades/internal/core/ports"
)

// BeamService derives wrap material quantities from field measurements and
// optionally records or shares the result.
type BeamService struct {
	jobs      ports.JobRepository
	publisher ports.EventPublisher
}

// NewBeamService creates a new BeamService.
func NewBeamService(jobs ports.JobRepository, publisher ports.EventPublisher) *BeamService {
	return &BeamService{jobs: jobs, publisher: publisher}
}

// Estimate derives material quantities for a job. Pure: identical inputs
// always reproduce identical output.
func (s *BeamService) Estimate(job domain.BeamJob) domain.BeamEstimate {
	return job.Estimate()
}

// EstimateOptions control what happens with an estimate beyond computing it.
type EstimateOptions struct {
	Save     bool
	Share    bool
	CrewID   string
	Location string
}

// EstimateAndRecord computes the estimate, persists it as a job when
// requested, and announces it on the crew channel when requested. Sharing is
// best-effort: a broker outage never fails the calculation.
func (s *BeamService) EstimateAndRecord(ctx context.Context, job domain.BeamJob, opts EstimateOptions) (domain.BeamEstimate, *domain.Job, error) {
	est := job.Estimate()

	var saved *domain.Job
	if opts.Save {
		if s.jobs == nil {
			return est, nil, fmt.Errorf("job persistence not configured")
		}
		saved = &domain.Job{
			Kind:     domain.JobKindBeam,
			CrewID:   opts.CrewID,
			Location: opts.Location,
			Inputs: map[string]any{
				"circumference": job.Circumference,
				"shoe_count":    job.ShoeCount,
				"boot_final":    job.BootFinal,
				"rise":          job.Rise,
				"shoe_size":     job.ShoeSize,
			},
			Outputs: map[string]any{
				"run":         est.Run,
				"beam_length": est.BeamLength,
				"band_length": est.BandLength,
				"band_qty":    est.BandQty,
				"mesh_length": est.MeshLength,
				"mesh_qty":    est.MeshQty,
			},
		}
		if err := s.jobs.Insert(ctx, saved); err != nil {
			return est, nil, fmt.Errorf("save beam job: %w", err)
		}
	}

	if opts.Share && s.publisher != nil {
		_ = s.publisher.PublishCrewUpdate(ctx, &domain.CrewUpdate{
			CrewID:   opts.CrewID,
			Kind:     domain.JobKindBeam,
			Location: opts.Location,
			Calculation: map[string]any{
				"beam_length": est.BeamLength,
				"band_qty":    est.BandQty,
				"mesh_qty":    est.MeshQty,
			},
			SentAt: time.Now().UTC(),
		})
	}

	return est, saved, nil
}
