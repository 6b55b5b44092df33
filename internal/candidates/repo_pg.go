package candidates

import (
	"context"
	"database/sql"
	"errors"

	"hiring-backend/internal/policy"
	"hiring-backend/internal/shared/storage/db"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const candidateColumns = `
id, job_id, name, email, resume_text, embedding, fit_score, decision,
evaluation_status, created_at`

// Create inserts a new candidate.
func (r *PGRepo) Create(ctx context.Context, c Candidate) error {
	const query = `
INSERT INTO candidates (
    id, job_id, name, email, resume_text, embedding, fit_score, decision,
    evaluation_status, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		c.ID,
		c.JobID,
		c.Name,
		c.Email,
		c.ResumeText,
		db.Float64Array(c.Embedding),
		nullFloat(c.FitScore),
		nullString(string(c.Decision)),
		c.EvaluationStatus,
		c.CreatedAt,
	)
	return err
}

// GetByID returns a candidate by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// ListByJob returns candidates for a job, newest first.
func (r *PGRepo) ListByJob(ctx context.Context, jobID string) ([]Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE job_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateEvaluation overwrites the evaluation fields of an existing candidate.
func (r *PGRepo) UpdateEvaluation(ctx context.Context, c Candidate) error {
	const query = `
UPDATE candidates
SET embedding = $2,
    fit_score = $3,
    decision = $4,
    evaluation_status = $5
WHERE id = $1`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		c.ID,
		db.Float64Array(c.Embedding),
		nullFloat(c.FitScore),
		nullString(string(c.Decision)),
		c.EvaluationStatus,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) scanOne(row *sql.Row) (Candidate, error) {
	c, err := scanCandidate(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Candidate{}, ErrNotFound
		}
		return Candidate{}, err
	}
	return c, nil
}

func scanCandidate(scan func(dest ...any) error) (Candidate, error) {
	var c Candidate
	var embedding db.Float64Array
	var fitScore sql.NullFloat64
	var decision sql.NullString
	err := scan(
		&c.ID,
		&c.JobID,
		&c.Name,
		&c.Email,
		&c.ResumeText,
		&embedding,
		&fitScore,
		&decision,
		&c.EvaluationStatus,
		&c.CreatedAt,
	)
	if err != nil {
		return Candidate{}, err
	}
	c.Embedding = embedding
	if fitScore.Valid {
		c.FitScore = &fitScore.Float64
	}
	if decision.Valid {
		c.Decision = policy.Decision(decision.String)
	}
	return c, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
