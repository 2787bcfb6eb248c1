package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/strategickhaos/pipetrades/internal/core/domain"
	"github.com/strategickhaos/pipetrades/internal/core/ports"
)

// CrewService handles the crew broadcast channel: sharing calculations,
// announcing presence, and archiving shares received from other crews.
type CrewService struct {
	jobs      ports.JobRepository
	publisher ports.EventPublisher
}

// NewCrewService creates a new CrewService.
func NewCrewService(jobs ports.JobRepository, publisher ports.EventPublisher) *CrewService {
	return &CrewService{jobs: jobs, publisher: publisher}
}

// Share broadcasts a calculation to the crew channel.
func (s *CrewService) Share(ctx context.Context, update *domain.CrewUpdate) error {
	if update.CrewID == "" {
		return fmt.Errorf("crew_id is required")
	}
	switch update.Kind {
	case domain.JobKindBeam, domain.JobKindOffset, domain.JobKindCutback, domain.JobKindCalibration:
	default:
		return fmt.Errorf("unknown calculation kind %q", update.Kind)
	}
	if update.SentAt.IsZero() {
		update.SentAt = time.Now().UTC()
	}

	if err := s.publisher.PublishCrewUpdate(ctx, update); err != nil {
		return fmt.Errorf("publish crew update: %w", err)
	}
	return nil
}

// Announce publishes a presence message for a crew coming online.
func (s *CrewService) Announce(ctx context.Context, crewID string) error {
	if crewID == "" {
		return fmt.Errorf("crew_id is required")
	}
	return s.publisher.PublishPresence(ctx, &domain.Presence{
		CrewID:       crewID,
		Status:       "online",
		Capabilities: []string{"decode", "beam", "offset", "cutback", "calibrate"},
	})
}

// Archive persists a crew update received off the wire as a saved job and
// rebroadcasts it for connected dashboards. Used by the relay worker.
func (s *CrewService) Archive(ctx context.Context, update *domain.CrewUpdate) error {
	job := &domain.Job{
		Kind:     update.Kind,
		CrewID:   update.CrewID,
		Location: update.Location,
		Inputs:   map[string]any{},
		Outputs:  update.Calculation,
	}
	if err := s.jobs.Insert(ctx, job); err != nil {
		return fmt.Errorf("archive crew update: %w", err)
	}

	if s.publisher != nil {
		if data, err := json.Marshal(update); err == nil {
			_ = s.publisher.PublishBroadcast(ctx, data)
		}
	}
	return nil
}
