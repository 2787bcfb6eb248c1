package usecases_test

import (
	"context"
	"testing"

	"github.com/strategickhaos/pipetrades/internal/core/domain"
	"github.com/strategickhaos/pipetrades/internal/core/usecases"
)

func TestBeamService_Estimate(t *testing.T) {
	svc := usecases.NewBeamService(nil, nil)

	est := svc.Estimate(domain.NewBeamJob(44, 4, 6, 0))
	if est.Run != 62 || est.BeamLength != 62 || est.BandQty != 3 || est.MeshQty != 2 {
		t.Errorf("unexpected estimate: %+v", est)
	}
}

func TestBeamService_EstimateAndRecord_Save(t *testing.T) {
	var inserted *domain.Job
	repo := &mockJobRepo{
		insertFn: func(ctx context.Context, job *domain.Job) error {
			inserted = job
			return nil
		},
	}
	svc := usecases.NewBeamService(repo, nil)

	_, saved, err := svc.EstimateAndRecord(context.Background(),
		domain.NewBeamJob(44, 4, 6, 0),
		usecases.EstimateOptions{Save: true, CrewID: "crew-7", Location: "5MHH+P8G lake charles"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted == nil || saved == nil {
		t.Fatal("job was not persisted")
	}
	if inserted.Kind != domain.JobKindBeam {
		t.Errorf("expected kind beam, got %s", inserted.Kind)
	}
	if inserted.Outputs["band_qty"] != 3 {
		t.Errorf("expected band_qty 3, got %v", inserted.Outputs["band_qty"])
	}
	if inserted.CrewID != "crew-7" {
		t.Errorf("expected crew-7, got %s", inserted.CrewID)
	}
}

func TestBeamService_EstimateAndRecord_Share(t *testing.T) {
	pub := &mockPublisher{}
	svc := usecases.NewBeamService(&mockJobRepo{}, pub)

	_, _, err := svc.EstimateAndRecord(context.Background(),
		domain.NewBeamJob(44, 4, 6, 30),
		usecases.EstimateOptions{Share: true, CrewID: "crew-7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pub.crewUpdates) != 1 {
		t.Fatalf("expected 1 crew update, got %d", len(pub.crewUpdates))
	}
	if pub.crewUpdates[0].Kind != domain.JobKindBeam {
		t.Errorf("expected beam update, got %s", pub.crewUpdates[0].Kind)
	}
}

func TestBeamService_ShareFailureDoesNotFailEstimate(t *testing.T) {
	pub := &mockPublisher{publishErr: context.DeadlineExceeded}
	svc := usecases.NewBeamService(&mockJobRepo{}, pub)

	est, _, err := svc.EstimateAndRecord(context.Background(),
		domain.NewBeamJob(44, 4, 6, 0),
		usecases.EstimateOptions{Share: true, CrewID: "crew-7"})
	if err != nil {
		t.Fatalf("broker outage must not fail the calculation: %v", err)
	}
	if est.BandQty != 3 {
		t.Errorf("unexpected estimate: %+v", est)
	}
}

func TestBeamService_SaveWithoutRepo(t *testing.T) {
	svc := usecases.NewBeamService(nil, nil)

	_, _, err := svc.EstimateAndRecord(context.Background(),
		domain.NewBeamJob(44, 4, 6, 0), usecases.EstimateOptions{Save: true})
	if err == nil {
		t.Fatal("expected error when persistence is not configured")
	}
}
