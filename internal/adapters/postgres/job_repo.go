package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/strategickhaos/pipetrades/internal/core/domain"
)

// JobRepo implements ports.JobRepository.
type JobRepo struct {
	db *DB
}

func NewJobRepo(db *DB) *JobRepo {
	return &JobRepo{db: db}
}

func (r *JobRepo) Insert(ctx context.Context, job *domain.Job) error {
	inputs, err := json.Marshal(job.Inputs)
	if err != nil {
		return fmt.Errorf("marshal inputs: %w", err)
	}
	outputs, err := json.Marshal(job.Outputs)
	if err != nil {
		return fmt.Errorf("marshal outputs: %w", err)
	}

	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO jobs (kind, crew_id, location, inputs, outputs)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, job.Kind, job.CrewID, job.Location, inputs, outputs).
		Scan(&job.ID, &job.CreatedAt)
}

func (r *JobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	j := &domain.Job{}
	var inputs, outputs []byte
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, kind, COALESCE(crew_id, ''), COALESCE(location, ''),
		       inputs, outputs, created_at
		FROM jobs WHERE id = $1
	`, id).Scan(&j.ID, &j.Kind, &j.CrewID, &j.Location, &inputs, &outputs, &j.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(inputs, &j.Inputs); err != nil {
		return nil, fmt.Errorf("unmarshal inputs: %w", err)
	}
	if err := json.Unmarshal(outputs, &j.Outputs); err != nil {
		return nil, fmt.Errorf("unmarshal outputs: %w", err)
	}
	return j, nil
}

func (r *JobRepo) ListRecent(ctx context.Context, limit, offset int) ([]domain.Job, int, error) {
	return r.list(ctx, "", limit, offset)
}

func (r *JobRepo) ListByKind(ctx context.Context, kind string, limit, offset int) ([]domain.Job, int, error) {
	return r.list(ctx, kind, limit, offset)
}

func (r *JobRepo) list(ctx context.Context, kind string, limit, offset int) ([]domain.Job, int, error) {
	var total int
	if err := r.db.Pool.QueryRow(ctx, `
		SELECT count(*) FROM jobs WHERE ($1 = '' OR kind = $1)
	`, kind).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, kind, COALESCE(crew_id, ''), COALESCE(location, ''),
		       inputs, outputs, created_at
		FROM jobs
		WHERE ($1 = '' OR kind = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, kind, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var j domain.Job
		var inputs, outputs []byte
		if err := rows.Scan(&j.ID, &j.Kind, &j.CrewID, &j.Location,
			&inputs, &outputs, &j.CreatedAt); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal(inputs, &j.Inputs); err != nil {
			return nil, 0, fmt.Errorf("unmarshal inputs: %w", err)
		}
		if err := json.Unmarshal(outputs, &j.Outputs); err != nil {
			return nil, 0, fmt.Errorf("unmarshal outputs: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, total, rows.Err()
}

func (r *JobRepo) Stats(ctx context.Context) (*domain.JobStats, error) {
	stats := &domain.JobStats{ByKind: make(map[string]int)}

	if err := r.db.Pool.QueryRow(ctx, `
		SELECT count(*), COALESCE(max(created_at)::text, '') FROM jobs
	`).Scan(&stats.Total, &stats.LastSave); err != nil {
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT kind, count(*) FROM jobs GROUP BY kind
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, err
		}
		stats.ByKind[kind] = count
	}
	return stats, rows.Err()
}
