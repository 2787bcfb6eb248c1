package domain

import "math"

// calibrationTolerance is the fixed drift threshold in percent.
const calibrationTolerance = 2.0

// CalibrationResult compares a trusted satellite measurement against a field
// measurement.
type CalibrationResult struct {
	Satellite  float64 `json:"satellite"`
	Field      float64 `json:"field"`
	Difference float64 `json:"difference"`
	PctError   float64 `json:"pct_error"`
	Calibrated bool    `json:"calibrated"`
}

// Calibrate reports instrument drift between the reference and field
// readings. A zero satellite reading yields a zero percent error instead of
// dividing by zero — which means a zero reference always reads as
// calibrated, even with a nonzero difference. That mirrors the behaviour the
// crews have worked against for years and is kept on purpose.
func Calibrate(satellite, field float64) CalibrationResult {
	diff := field - satellite
	pct := 0.0
	if satellite != 0 {
		pct = diff / satellite * 100
	}
	return CalibrationResult{
		Satellite:  satellite,
		Field:      field,
		Difference: diff,
		PctError:   pct,
		Calibrated: math.Abs(pct) < calibrationTolerance,
	}
}
