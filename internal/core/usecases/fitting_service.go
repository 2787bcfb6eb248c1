package usecases

import "github.com/strategickhaos/pipetrades/internal/core/domain"

// FittingService solves pipefitting trigonometry. All operations are pure
// and never fail for finite numeric input; degenerate angles are defined as
// zero-valued results.
type FittingService struct{}

// NewFittingService creates a new FittingService.
func NewFittingService() *FittingService {
	return &FittingService{}
}

// RollingOffset solves travel and advance for an angled pipe run.
func (s *FittingService) RollingOffset(angleDeg, offset float64) domain.OffsetResult {
	return domain.RollingOffset(angleDeg, offset)
}

// Cutback returns the fitting cutback for a mitered joint.
func (s *FittingService) Cutback(angleDeg, offset float64) domain.CutbackResult {
	return domain.Cutback(angleDeg, offset)
}
