package domain_test

import (
	"math"
	"testing"

	"github.com/strategickhaos/pipetrades/internal/core/domain"
)

func TestBeamJob_Horizontal(t *testing.T) {
	job := domain.NewBeamJob(44, 4, 6, 0)

	if got := job.Run(); got != 62 {
		t.Errorf("expected run 62, got %f", got)
	}
	if got := job.BeamLength(); got != 62 {
		t.Errorf("expected beam length 62, got %f", got)
	}
	if got := job.BandLength(); got != 52 {
		t.Errorf("expected band length 52, got %f", got)
	}
	if got := job.BandQty(); got != 3 {
		t.Errorf("expected 3 bands, got %d", got)
	}
	if got := job.MeshLength(); got != 63 {
		t.Errorf("expected mesh length 63, got %f", got)
	}
	if got := job.MeshQty(); got != 2 {
		t.Errorf("expected 2 mesh panels, got %d", got)
	}
}

func TestBeamJob_Angled(t *testing.T) {
	job := domain.NewBeamJob(44, 4, 6, 30)

	want := math.Sqrt(62*62 + 30*30) // ~68.88
	if got := job.BeamLength(); math.Abs(got-want) > 1e-9 {
		t.Errorf("expected beam length %f, got %f", want, got)
	}
	if got := job.BandQty(); got != 3 {
		t.Errorf("expected 3 bands, got %d", got)
	}
}

func TestBeamJob_BandQtyRoundsUp(t *testing.T) {
	// 41" of beam needs two bands plus the spare.
	job := domain.BeamJob{ShoeCount: 0, BootFinal: 41, ShoeSize: domain.DefaultShoeSize}
	if got := job.BandQty(); got != 3 {
		t.Errorf("expected 3 bands for 41in beam, got %d", got)
	}
}

func TestBeamJob_MeshQtyFloor(t *testing.T) {
	// A tiny beam still needs one mesh panel.
	job := domain.NewBeamJob(10, 0, 1, 0)
	if got := job.BandQty(); got != 2 {
		t.Errorf("expected 2 bands, got %d", got)
	}
	if got := job.MeshQty(); got != 1 {
		t.Errorf("expected mesh floor of 1, got %d", got)
	}
}

func TestBeamJob_QuantityInvariants(t *testing.T) {
	jobs := []domain.BeamJob{
		domain.NewBeamJob(44, 4, 6, 0),
		domain.NewBeamJob(44, 4, 6, 30),
		domain.NewBeamJob(12, 0, 0.5, 0),
		domain.NewBeamJob(80, 20, 13.5, 120),
	}
	for _, job := range jobs {
		want := int(math.Ceil(job.BeamLength()/40)) + 1
		if got := job.BandQty(); got != want {
			t.Errorf("BandQty = %d, want ceil(%f/40)+1 = %d", got, job.BeamLength(), want)
		}
		if job.BandQty() < 1 {
			t.Errorf("BandQty must be >= 1, got %d", job.BandQty())
		}
		if job.MeshQty() < 1 {
			t.Errorf("MeshQty must be >= 1, got %d", job.MeshQty())
		}
	}
}

func TestBeamJob_NegativeInputsPassThrough(t *testing.T) {
	// Negative measurements are accepted arithmetically; rejecting them is
	// the presentation layer's call.
	job := domain.NewBeamJob(-44, 0, 10, 0)
	if got := job.BandLength(); got != -36 {
		t.Errorf("expected band length -36, got %f", got)
	}
}

func TestBeamJob_EstimateSnapshot(t *testing.T) {
	job := domain.NewBeamJob(44, 4, 6, 30)
	est := job.Estimate()

	if est.Run != job.Run() || est.BeamLength != job.BeamLength() ||
		est.BandLength != job.BandLength() || est.BandQty != job.BandQty() ||
		est.MeshLength != job.MeshLength() || est.MeshQty != job.MeshQty() {
		t.Errorf("estimate snapshot diverged from on-demand values: %+v", est)
	}

	// Identical inputs must reproduce the snapshot exactly.
	again := domain.NewBeamJob(44, 4, 6, 30).Estimate()
	if est != again {
		t.Errorf("estimate not reproducible: %+v vs %+v", est, again)
	}
}
