package interviews

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres. The status transition relies on a
// conditional UPDATE so concurrent deciders resolve to a single winner at the
// database rather than in process memory.
type PGRepo struct {
	DB *sql.DB
}

const proposalColumns = `
id, candidate_id, job_id, summary, status, slot_start, slot_end,
event_ref, meet_link, failure_reason, expires_at, created_at, decided_at`

// Create inserts a new proposal.
func (r *PGRepo) Create(ctx context.Context, p Proposal) error {
	const query = `
INSERT INTO interview_proposals (
    id, candidate_id, job_id, summary, status, slot_start, slot_end,
    event_ref, meet_link, failure_reason, expires_at, created_at, decided_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		p.ID,
		p.CandidateID,
		p.JobID,
		p.Summary,
		string(p.Status),
		nullTime(p.SlotStart),
		nullTime(p.SlotEnd),
		nullString(p.EventRef),
		nullString(p.MeetLink),
		nullString(p.FailureReason),
		p.ExpiresAt,
		p.CreatedAt,
		nullTime(p.DecidedAt),
	)
	return err
}

// GetByID returns a proposal by id.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM interview_proposals WHERE id = $1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// ListByStatus returns proposals in the given status, oldest first.
func (r *PGRepo) ListByStatus(ctx context.Context, status Status) ([]Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM interview_proposals WHERE status = $1 ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// FindActiveByCandidate returns the candidate's non-terminal proposal, if any.
func (r *PGRepo) FindActiveByCandidate(ctx context.Context, candidateID string) (Proposal, error) {
	query := `SELECT ` + proposalColumns + `
FROM interview_proposals
WHERE candidate_id = $1 AND status IN ('pending', 'approved')
ORDER BY created_at DESC
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, candidateID))
}

// FindLatestByCandidate returns the candidate's most recent proposal in any
// status, if any.
func (r *PGRepo) FindLatestByCandidate(ctx context.Context, candidateID string) (Proposal, error) {
	query := `SELECT ` + proposalColumns + `
FROM interview_proposals
WHERE candidate_id = $1
ORDER BY created_at DESC
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, candidateID))
}

// ListExpired returns pending proposals whose TTL elapsed before now.
func (r *PGRepo) ListExpired(ctx context.Context, now time.Time) ([]Proposal, error) {
	query := `SELECT ` + proposalColumns + `
FROM interview_proposals
WHERE status = 'pending' AND expires_at < $1`
	rows, err := r.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// TransitionStatus applies a guarded lifecycle transition. The WHERE clause
// carries the expected source status; zero rows affected means another
// decider won the race or the proposal is terminal.
func (r *PGRepo) TransitionStatus(ctx context.Context, id string, from, to Status, update StatusUpdate) (Proposal, error) {
	if !CanTransition(from, to) {
		return Proposal{}, ErrAlreadyDecided
	}

	const query = `
UPDATE interview_proposals
SET status = $3,
    slot_start = COALESCE($4, slot_start),
    slot_end = COALESCE($5, slot_end),
    event_ref = COALESCE($6, event_ref),
    meet_link = COALESCE($7, meet_link),
    failure_reason = COALESCE($8, failure_reason),
    decided_at = COALESCE($9, decided_at)
WHERE id = $1 AND status = $2`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		id,
		string(from),
		string(to),
		nullTime(update.SlotStart),
		nullTime(update.SlotEnd),
		nullString(update.EventRef),
		nullString(update.MeetLink),
		nullString(update.FailureReason),
		nullTime(update.DecidedAt),
	)
	if err != nil {
		return Proposal{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Proposal{}, err
	}
	if affected == 0 {
		// Distinguish a race loss from an unknown id.
		if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, ErrNotFound) {
			return Proposal{}, ErrNotFound
		}
		return Proposal{}, ErrAlreadyDecided
	}
	return r.GetByID(ctx, id)
}

func (r *PGRepo) scanOne(row *sql.Row) (Proposal, error) {
	var p Proposal
	var status string
	var slotStart, slotEnd, decidedAt sql.NullTime
	var eventRef, meetLink, failureReason sql.NullString
	err := row.Scan(
		&p.ID,
		&p.CandidateID,
		&p.JobID,
		&p.Summary,
		&status,
		&slotStart,
		&slotEnd,
		&eventRef,
		&meetLink,
		&failureReason,
		&p.ExpiresAt,
		&p.CreatedAt,
		&decidedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Proposal{}, ErrNotFound
		}
		return Proposal{}, err
	}
	p.Status = Status(status)
	if slotStart.Valid {
		p.SlotStart = &slotStart.Time
	}
	if slotEnd.Valid {
		p.SlotEnd = &slotEnd.Time
	}
	if eventRef.Valid {
		p.EventRef = eventRef.String
	}
	if meetLink.Valid {
		p.MeetLink = meetLink.String
	}
	if failureReason.Valid {
		p.FailureReason = failureReason.String
	}
	if decidedAt.Valid {
		p.DecidedAt = &decidedAt.Time
	}
	return p, nil
}

func (r *PGRepo) scanMany(rows *sql.Rows) ([]Proposal, error) {
	var out []Proposal
	for rows.Next() {
		var p Proposal
		var status string
		var slotStart, slotEnd, decidedAt sql.NullTime
		var eventRef, meetLink, failureReason sql.NullString
		if err := rows.Scan(
			&p.ID,
			&p.CandidateID,
			&p.JobID,
			&p.Summary,
			&status,
			&slotStart,
			&slotEnd,
			&eventRef,
			&meetLink,
			&failureReason,
			&p.ExpiresAt,
			&p.CreatedAt,
			&decidedAt,
		); err != nil {
			return nil, err
		}
		p.Status = Status(status)
		if slotStart.Valid {
			p.SlotStart = &slotStart.Time
		}
		if slotEnd.Valid {
			p.SlotEnd = &slotEnd.Time
		}
		if eventRef.Valid {
			p.EventRef = eventRef.String
		}
		if meetLink.Valid {
			p.MeetLink = meetLink.String
		}
		if failureReason.Valid {
			p.FailureReason = failureReason.String
		}
		if decidedAt.Valid {
			p.DecidedAt = &decidedAt.Time
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
