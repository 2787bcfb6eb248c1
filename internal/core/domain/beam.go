package domain

import (
	"math"

	"github.com/strategickhaos/pipetrades/internal/pkg/geospatial"
)

// DefaultShoeSize is the length in inches of one "shoe" pace, the field
// constant crews use to step off a beam run.
const DefaultShoeSize = 14.0

// bandWidth is the coverage in inches of one band along the beam, and the
// width of a mesh panel.
const bandWidth = 40.0

// BeamJob holds the raw field measurements for a beam wrap estimate. All
// lengths are inches. Derived quantities are computed on demand so a job can
// never go stale; nothing is cached.
//
// Inputs are not validated here. A negative circumference produces a
// negative band length rather than an error — field tolerance for sloppy
// readings is deliberate, and the presentation layer owns rejection of
// obviously bad input.
type BeamJob struct {
	Circumference float64 `json:"circumference"`
	ShoeCount     int     `json:"shoe_count"`
	BootFinal     float64 `json:"boot_final"`
	Rise          float64 `json:"rise"`
	ShoeSize      float64 `json:"shoe_size"`
}

// NewBeamJob builds a job with the standard shoe size.
func NewBeamJob(circumference float64, shoeCount int, bootFinal, rise float64) BeamJob {
	return BeamJob{
		Circumference: circumference,
		ShoeCount:     shoeCount,
		BootFinal:     bootFinal,
		Rise:          rise,
		ShoeSize:      DefaultShoeSize,
	}
}

// Run is the horizontal beam length stepped off in shoes plus the final boot
// measurement.
func (b BeamJob) Run() float64 {
	return float64(b.ShoeCount)*b.ShoeSize + b.BootFinal
}

// BeamLength is the true beam length. An angled beam (nonzero rise) solves
// the right triangle; a horizontal beam is just the run.
func (b BeamJob) BeamLength() float64 {
	if b.Rise != 0 {
		return geospatial.Hypotenuse(b.Run(), b.Rise)
	}
	return b.Run()
}

// BandLength is circumference plus 7" bander grab plus 1" clip.
func (b BeamJob) BandLength() float64 {
	return b.Circumference + 8
}

// BandQty is one band per 40" of beam, rounded up, plus one spare.
func (b BeamJob) BandQty() int {
	return int(math.Ceil(b.BeamLength()/bandWidth)) + 1
}

// MeshLength is circumference plus 12" corners, 3" overlap and 4" edge.
func (b BeamJob) MeshLength() float64 {
	return b.Circumference + 19
}

// MeshQty is one panel between each pair of bands, never fewer than one.
func (b BeamJob) MeshQty() int {
	if q := b.BandQty() - 1; q > 1 {
		return q
	}
	return 1
}

// BeamEstimate is a snapshot of a job and every derived quantity, produced
// for reporting, persistence and the crew channel.
type BeamEstimate struct {
	BeamJob
	Run        float64 `json:"run"`
	BeamLength float64 `json:"beam_length"`
	BandLength float64 `json:"band_length"`
	BandQty    int     `json:"band_qty"`
	MeshLength float64 `json:"mesh_length"`
	MeshQty    int     `json:"mesh_qty"`
}

// Estimate derives the material quantities for the job.
func (b BeamJob) Estimate() BeamEstimate {
	return BeamEstimate{
		BeamJob:    b,
		Run:        b.Run(),
		BeamLength: b.BeamLength(),
		BandLength: b.BandLength(),
		BandQty:    b.BandQty(),
		MeshLength: b.MeshLength(),
		MeshQty:    b.MeshQty(),
	}
}
