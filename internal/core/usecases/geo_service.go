package usecases

import (
	"context"
	"encoding/json"

	"github.com/strategickhaos/pipetrades/internal/core/ports"
	"github.com/strategickhaos/pipetrades/internal/pkg/geospatial"
	"github.com/strategickhaos/pipetrades/internal/pluscode"
)

// GeoService handles location decoding and distance queries.
type GeoService struct {
	cache ports.CacheService
}

// NewGeoService creates a new GeoService.
func NewGeoService(cache ports.CacheService) *GeoService {
	return &GeoService{cache: cache}
}

// Decode resolves a location code to its bounding rectangle. Decodes are
// deterministic, so successful results are cached aggressively.
func (s *GeoService) Decode(ctx context.Context, code string) (*pluscode.CodeArea, error) {
	cacheKey := "decode:" + code
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var area pluscode.CodeArea
			if err := json.Unmarshal(data, &area); err == nil {
				return &area, nil
			}
		}
	}

	area, err := pluscode.Decode(code)
	if err != nil {
		return nil, err
	}

	// Cache for a day; the alphabet and locality table never change at
	// runtime.
	if s.cache != nil {
		if data, err := json.Marshal(area); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 86400)
		}
	}

	return area, nil
}

// Distance returns the great-circle distance between two points in the
// requested unit. An unrecognized unit falls back to feet.
func (s *GeoService) Distance(lat1, lon1, lat2, lon2 float64, unit string) float64 {
	return geospatial.Haversine(lat1, lon1, lat2, lon2, unit)
}

// Hypotenuse solves the planar right triangle for a run and rise in inches.
func (s *GeoService) Hypotenuse(run, rise float64) float64 {
	return geospatial.Hypotenuse(run, rise)
}
