package exams

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu          sync.RWMutex
	exams       map[string]Exam
	assignments map[string]Assignment // keyed by access token
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		exams:       make(map[string]Exam),
		assignments: make(map[string]Assignment),
	}
}

// CreateExam stores a new exam.
func (r *MemoryRepo) CreateExam(ctx context.Context, exam Exam) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exams[exam.ID] = exam
	return nil
}

// GetExam returns an exam by id.
func (r *MemoryRepo) GetExam(ctx context.Context, id string) (Exam, error) {
	if err := ctx.Err(); err != nil {
		return Exam{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	exam, ok := r.exams[id]
	if !ok {
		return Exam{}, ErrNotFound
	}
	return exam, nil
}

// CreateAssignment stores a new assignment.
func (r *MemoryRepo) CreateAssignment(ctx context.Context, a Assignment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignments[a.AccessToken] = a
	return nil
}

// GetAssignmentByToken returns an assignment by access token.
func (r *MemoryRepo) GetAssignmentByToken(ctx context.Context, token string) (Assignment, error) {
	if err := ctx.Err(); err != nil {
		return Assignment{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.assignments[token]
	if !ok {
		return Assignment{}, ErrNotFound
	}
	return a, nil
}

// Submit completes a pending assignment. A second submission fails.
func (r *MemoryRepo) Submit(ctx context.Context, token string, answers []string) (Assignment, error) {
	if err := ctx.Err(); err != nil {
		return Assignment{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[token]
	if !ok {
		return Assignment{}, ErrNotFound
	}
	if a.Status != AssignmentPending {
		return Assignment{}, ErrAlreadySubmitted
	}
	now := time.Now().UTC()
	a.Status = AssignmentCompleted
	a.Answers = answers
	a.SubmittedAt = &now
	r.assignments[token] = a
	return a, nil
}
