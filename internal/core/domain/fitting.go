package domain

import "math"

// OffsetResult is a solved rolling offset for an angled pipe run.
type OffsetResult struct {
	Angle   float64 `json:"angle"`
	Offset  float64 `json:"offset"`
	Travel  float64 `json:"travel"`
	Advance float64 `json:"advance"`
}

// CutbackResult is a solved fitting cutback.
type CutbackResult struct {
	Angle  float64 `json:"angle"`
	Offset float64 `json:"offset"`
	Cut    float64 `json:"cut"`
}

// RollingOffset solves travel and advance for a fitting angle in degrees and
// an offset in inches. A zero angle is a straight run: travel and advance are
// defined as zero instead of dividing by sin(0). The check is an explicit
// equality so a negative angle still computes.
func RollingOffset(angleDeg, offset float64) OffsetResult {
	r := OffsetResult{Angle: angleDeg, Offset: offset}
	if angleDeg == 0 {
		return r
	}
	rad := toRad(angleDeg)
	r.Travel = offset / math.Sin(rad)
	r.Advance = offset / math.Tan(rad)
	return r
}

// Cutback returns the cut length for a mitered fitting: offset times the
// tangent of half the fitting angle.
func Cutback(angleDeg, offset float64) CutbackResult {
	return CutbackResult{
		Angle:  angleDeg,
		Offset: offset,
		Cut:    offset * math.Tan(toRad(angleDeg/2)),
	}
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
