package audit

import (
	"context"
	"database/sql"
	"encoding/json"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Append inserts an audit entry.
func (r *PGRepo) Append(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO audit_logs (id, candidate_id, job_id, action, details, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	var details []byte
	if entry.Details != nil {
		var err error
		details, err = json.Marshal(entry.Details)
		if err != nil {
			return err
		}
	}

	var candidateID, jobID sql.NullString
	if entry.CandidateID != "" {
		candidateID = sql.NullString{String: entry.CandidateID, Valid: true}
	}
	if entry.JobID != "" {
		jobID = sql.NullString{String: entry.JobID, Valid: true}
	}

	_, err := r.DB.ExecContext(ctx, query, entry.ID, candidateID, jobID, entry.Action, details, entry.CreatedAt)
	return err
}

// ListByCandidate returns entries for a candidate, oldest first.
func (r *PGRepo) ListByCandidate(ctx context.Context, candidateID string) ([]Entry, error) {
	const query = `
SELECT id, candidate_id, job_id, action, details, created_at
FROM audit_logs
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
		var cid, jid sql.NullString
		var details []byte
		if err := rows.Scan(&e.ID, &cid, &jid, &e.Action, &details, &e.CreatedAt); err != nil {
			return nil, err
		}
		if cid.Valid {
			e.CandidateID = cid.String
		}
		if jid.Valid {
			e.JobID = jid.String
		}
		if len(details) > 0 {
			_ = json.Unmarshal(details, &e.Details)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
