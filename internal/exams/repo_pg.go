package exams

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres. Question and answer lists are
// stored as JSONB.
type PGRepo struct {
	DB *sql.DB
}

// CreateExam inserts a new exam.
func (r *PGRepo) CreateExam(ctx context.Context, exam Exam) error {
	questions, err := json.Marshal(exam.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}

	const query = `INSERT INTO exams (id, job_id, questions, created_at) VALUES ($1, $2, $3, $4)`
	_, err = r.DB.ExecContext(ctx, query, exam.ID, exam.JobID, questions, exam.CreatedAt)
	return err
}

// GetExam returns an exam by id.
func (r *PGRepo) GetExam(ctx context.Context, id string) (Exam, error) {
	const query = `SELECT id, job_id, questions, created_at FROM exams WHERE id = $1`

	var exam Exam
	var questions []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&exam.ID, &exam.JobID, &questions, &exam.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Exam{}, ErrNotFound
		}
		return Exam{}, err
	}
	if err := json.Unmarshal(questions, &exam.Questions); err != nil {
		return Exam{}, fmt.Errorf("unmarshal questions: %w", err)
	}
	return exam, nil
}

// CreateAssignment inserts a new assignment.
func (r *PGRepo) CreateAssignment(ctx context.Context, a Assignment) error {
	const query = `
INSERT INTO candidate_exams (id, candidate_id, exam_id, access_token, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(ctx, query, a.ID, a.CandidateID, a.ExamID, a.AccessToken, a.Status, a.CreatedAt)
	return err
}

// GetAssignmentByToken returns an assignment by access token.
func (r *PGRepo) GetAssignmentByToken(ctx context.Context, token string) (Assignment, error) {
	const query = `
SELECT id, candidate_id, exam_id, access_token, status, answers, submitted_at, created_at
FROM candidate_exams
WHERE access_token = $1`

	var a Assignment
	var answers []byte
	var submittedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, token).Scan(
		&a.ID, &a.CandidateID, &a.ExamID, &a.AccessToken, &a.Status, &answers, &submittedAt, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Assignment{}, ErrNotFound
		}
		return Assignment{}, err
	}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &a.Answers); err != nil {
			return Assignment{}, fmt.Errorf("unmarshal answers: %w", err)
		}
	}
	if submittedAt.Valid {
		a.SubmittedAt = &submittedAt.Time
	}
	return a, nil
}

// Submit completes a pending assignment. The status guard in the WHERE
// clause makes the submission one-shot under concurrent replays.
func (r *PGRepo) Submit(ctx context.Context, token string, answers []string) (Assignment, error) {
	payload, err := json.Marshal(answers)
	if err != nil {
		return Assignment{}, fmt.Errorf("marshal answers: %w", err)
	}

	const query = `
UPDATE candidate_exams
SET status = $2, answers = $3, submitted_at = $4
WHERE access_token = $1 AND status = $5`

	res, err := r.DB.ExecContext(ctx, query, token, AssignmentCompleted, payload, time.Now().UTC(), AssignmentPending)
	if err != nil {
		return Assignment{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Assignment{}, err
	}
	if affected == 0 {
		if _, getErr := r.GetAssignmentByToken(ctx, token); errors.Is(getErr, ErrNotFound) {
			return Assignment{}, ErrNotFound
		}
		return Assignment{}, ErrAlreadySubmitted
	}
	return r.GetAssignmentByToken(ctx, token)
}
