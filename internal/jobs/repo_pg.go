package jobs

import (
	"context"
	"database/sql"
	"errors"

	"hiring-backend/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new job.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (id, title, description_text, embedding, created_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		job.ID,
		job.Title,
		job.Description,
		db.Float64Array(job.Embedding),
		job.CreatedAt,
	)
	return err
}

// GetByID returns a job by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Job, error) {
	const query = `SELECT id, title, description_text, embedding, created_at FROM jobs WHERE id = $1`

	var job Job
	var embedding db.Float64Array
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&embedding,
		&job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	job.Embedding = embedding
	return job, nil
}

// List returns all jobs, newest first.
func (r *PGRepo) List(ctx context.Context) ([]Job, error) {
	const query = `SELECT id, title, description_text, embedding, created_at FROM jobs ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var job Job
		var embedding db.Float64Array
		if err := rows.Scan(&job.ID, &job.Title, &job.Description, &embedding, &job.CreatedAt); err != nil {
			return nil, err
		}
		job.Embedding = embedding
		out = append(out, job)
	}
	return out, rows.Err()
}
