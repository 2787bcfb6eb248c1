package usecases

import (
	"context"
	"fmt"

	"github.com/strategickhaos/pipetrades/internal/core/domain"
	"github.com/strategickhaos/pipetrades/internal/core/ports"
)

// CalibrationService checks instrument drift and keeps a history of checks.
type CalibrationService struct {
	jobs ports.JobRepository
}

// NewCalibrationService creates a new CalibrationService.
func NewCalibrationService(jobs ports.JobRepository) *CalibrationService {
	return &CalibrationService{jobs: jobs}
}

// Check compares a satellite reading against a field reading.
func (s *CalibrationService) Check(satellite, field float64) domain.CalibrationResult {
	return domain.Calibrate(satellite, field)
}

// CheckAndRecord runs the comparison and appends it to the calibration
// history.
func (s *CalibrationService) CheckAndRecord(ctx context.Context, satellite, field float64, crewID, unit string) (domain.CalibrationResult, *domain.Job, error) {
	result := domain.Calibrate(satellite, field)

	if s.jobs == nil {
		return result, nil, fmt.Errorf("job persistence not configured")
	}

	job := &domain.Job{
		Kind:   domain.JobKindCalibration,
		CrewID: crewID,
		Inputs: map[string]any{
			"satellite": satellite,
			"field":     field,
			"unit":      unit,
		},
		Outputs: map[string]any{
			"difference": result.Difference,
			"pct_error":  result.PctError,
			"calibrated": result.Calibrated,
		},
	}
	if err := s.jobs.Insert(ctx, job); err != nil {
		return result, nil, fmt.Errorf("save calibration: %w", err)
	}

	return result, job, nil
}
