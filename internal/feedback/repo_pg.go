package feedback

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Append inserts a new entry.
func (r *PGRepo) Append(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO feedback (id, candidate_id, job_id, agent_score, hr_score, note, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.CandidateID,
		entry.JobID,
		nullFloat(entry.AgentScore),
		entry.HRScore,
		nullString(entry.Note),
		entry.CreatedAt,
	)
	return err
}

// ListByCandidate returns entries for a candidate, oldest first.
func (r *PGRepo) ListByCandidate(ctx context.Context, candidateID string) ([]Entry, error) {
	const query = `
SELECT id, candidate_id, job_id, agent_score, hr_score, note, created_at
FROM feedback
WHERE candidate_id = $1
ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var agentScore sql.NullFloat64
		var note sql.NullString
		if err := rows.Scan(&e.ID, &e.CandidateID, &e.JobID, &agentScore, &e.HRScore, &note, &e.CreatedAt); err != nil {
			return nil, err
		}
		if agentScore.Valid {
			e.AgentScore = &agentScore.Float64
		}
		if note.Valid {
			e.Note = note.String
		}
		out = append(out, e)
	}
	return out, rows.Err()
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
