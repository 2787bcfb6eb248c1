package domain

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds represents a geographic bounding box.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// Center returns the centroid of the box.
func (b Bounds) Center() GeoPoint {
	return GeoPoint{
		Lat: (b.South + b.North) / 2,
		Lon: (b.West + b.East) / 2,
	}
}
