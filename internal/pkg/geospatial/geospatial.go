// Package geospatial holds the distance math shared by the decoder callers
// and the beam estimator. Everything works in feet internally because that
// is what the crews measure in.
package geospatial

import "math"

// earthRadiusFt is the Earth radius used by the field tooling.
const earthRadiusFt = 20902231.0

// unitFactors converts a distance in feet to the requested unit.
var unitFactors = map[string]float64{
	"ft": 1,
	"in": 12,
	"m":  0.3048,
	"mi": 1.0 / 5280,
}

// Haversine calculates the great-circle distance between two points in the
// requested unit. An unknown unit falls back to feet rather than erroring;
// the callers treat the unit as a display preference, not an input to
// validate.
func Haversine(lat1, lon1, lat2, lon2 float64, unit string) float64 {
	lat1R := toRad(lat1)
	lat2R := toRad(lat2)
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1R)*math.Cos(lat2R)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	distFt := earthRadiusFt * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	factor, ok := unitFactors[unit]
	if !ok {
		factor = 1
	}
	return distFt * factor
}

// Hypotenuse solves the planar right triangle for a run and rise.
func Hypotenuse(run, rise float64) float64 {
	return math.Sqrt(run*run + rise*rise)
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
