//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	handler "github.com/strategickhaos/pipetrades/internal/adapters/http"
	"github.com/strategickhaos/pipetrades/internal/adapters/postgres"
	"github.com/strategickhaos/pipetrades/internal/core/domain"
	"github.com/strategickhaos/pipetrades/internal/core/usecases"
	"github.com/strategickhaos/pipetrades/internal/pkg/config"
)

// setupTestDB connects to the test database and returns a clean DB instance.
func setupTestDB(t *testing.T) *postgres.DB {
	cfg, err := config.Load("pipetrades-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}

	db := &postgres.DB{Pool: pool}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("ping db: %v", err)
	}

	if _, err := pool.Exec(ctx, `TRUNCATE jobs`); err != nil {
		t.Fatalf("truncate jobs: %v", err)
	}

	return db
}

// setupTestDeps creates dependencies with a real DB and repo, no cache or broker.
func setupTestDeps(t *testing.T, db *postgres.DB) *handler.Dependencies {
	jobRepo := postgres.NewJobRepo(db)

	return &handler.Dependencies{
		Geo:         usecases.NewGeoService(nil),
		Beam:        usecases.NewBeamService(jobRepo, nil),
		Fitting:     usecases.NewFittingService(),
		Calibration: usecases.NewCalibrationService(jobRepo),
		Jobs:        usecases.NewJobService(jobRepo, nil),
		Crew:        usecases.NewCrewService(jobRepo, nil),
		DB:          db,
	}
}

func TestIntegration_BeamSaveAndReadBack(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	deps := setupTestDeps(t, db)
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)

	// Save a beam estimate
	req := httptest.NewRequest("GET", "/v1/beam?circ=44&shoes=4&boot=6&rise=0&save=true&crew=alpha", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var saveResult struct {
		JobID string `json:"job_id"`
	}
	json.NewDecoder(resp.Body).Decode(&saveResult)
	if saveResult.JobID == "" {
		t.Fatal("expected a job id from save")
	}

	// Read it back
	req = httptest.NewRequest("GET", "/v1/jobs/"+saveResult.JobID, nil)
	resp, _ = app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 reading job back, got %d", resp.StatusCode)
	}

	var job domain.Job
	json.NewDecoder(resp.Body).Decode(&job)
	if job.Kind != domain.JobKindBeam {
		t.Errorf("expected kind beam, got %q", job.Kind)
	}
	if job.CrewID != "alpha" {
		t.Errorf("expected crew alpha, got %q", job.CrewID)
	}
	if job.Outputs["band_qty"].(float64) != 3 {
		t.Errorf("expected band_qty 3, got %v", job.Outputs["band_qty"])
	}

	// Stats reflect the save
	req = httptest.NewRequest("GET", "/v1/jobs/stats", nil)
	resp, _ = app.Test(req, -1)

	var stats domain.JobStats
	json.NewDecoder(resp.Body).Decode(&stats)
	if stats.Total != 1 {
		t.Errorf("expected total 1, got %d", stats.Total)
	}
	if stats.ByKind[domain.JobKindBeam] != 1 {
		t.Errorf("expected 1 beam job, got %d", stats.ByKind[domain.JobKindBeam])
	}
}

func TestIntegration_ListJobsByKind(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	deps := setupTestDeps(t, db)
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)

	// Save one beam and one calibration
	req := httptest.NewRequest("GET", "/v1/beam?circ=44&shoes=4&boot=6&save=true", nil)
	if resp, _ := app.Test(req, -1); resp.StatusCode != 200 {
		t.Fatalf("beam save failed: %d", resp.StatusCode)
	}
	req = httptest.NewRequest("GET", "/v1/calibrate?satellite=305&field=306&save=true", nil)
	if resp, _ := app.Test(req, -1); resp.StatusCode != 200 {
		t.Fatalf("calibration save failed: %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/v1/jobs?kind=calibration", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.Job `json:"data"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Pagination.Total != 1 {
		t.Errorf("expected 1 calibration job, got %d", result.Pagination.Total)
	}
	if len(result.Data) != 1 || result.Data[0].Kind != domain.JobKindCalibration {
		t.Errorf("unexpected jobs: %+v", result.Data)
	}
}
