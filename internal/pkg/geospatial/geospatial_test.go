package geospatial_test

import (
	"math"
	"testing"

	"github.com/strategickhaos/pipetrades/internal/pkg/geospatial"
)

func TestHaversine_ZeroDistance(t *testing.T) {
	if d := geospatial.Haversine(30.2266, -93.2174, 30.2266, -93.2174, "ft"); d != 0 {
		t.Errorf("expected 0, got %f", d)
	}
}

func TestHaversine_OneDegreeLatitude(t *testing.T) {
	// One degree of latitude is roughly 69 miles.
	d := geospatial.Haversine(30, -93, 31, -93, "mi")
	if math.Abs(d-69) > 1 {
		t.Errorf("expected ~69 mi, got %f", d)
	}
}

func TestHaversine_UnitConversion(t *testing.T) {
	ft := geospatial.Haversine(30.2266, -93.2174, 30.2366, -93.3774, "ft")

	cases := []struct {
		unit   string
		factor float64
	}{
		{"in", 12},
		{"m", 0.3048},
		{"mi", 1.0 / 5280},
	}
	for _, tc := range cases {
		got := geospatial.Haversine(30.2266, -93.2174, 30.2366, -93.3774, tc.unit)
		want := ft * tc.factor
		if math.Abs(got-want) > 1e-6*math.Abs(want) {
			t.Errorf("unit %s: expected %f, got %f", tc.unit, want, got)
		}
	}
}

func TestHaversine_UnknownUnitDefaultsToFeet(t *testing.T) {
	ft := geospatial.Haversine(30, -93, 30.5, -93.5, "ft")
	got := geospatial.Haversine(30, -93, 30.5, -93.5, "furlongs")
	if got != ft {
		t.Errorf("unknown unit must fall back to feet: %f vs %f", got, ft)
	}
}

func TestHypotenuse(t *testing.T) {
	cases := []struct {
		run, rise, want float64
	}{
		{3, 4, 5},
		{62, 0, 62},
		{0, 0, 0},
		{62, 30, math.Sqrt(62*62 + 30*30)},
	}
	for _, tc := range cases {
		if got := geospatial.Hypotenuse(tc.run, tc.rise); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Hypotenuse(%f, %f) = %f, want %f", tc.run, tc.rise, got, tc.want)
		}
	}
}
