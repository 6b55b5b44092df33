package exams

import "context"

// Repo defines persistence operations for exams and assignments.
//
// Submit must be atomic on the assignment status so a token replay cannot
// overwrite an earlier submission.
type Repo interface {
	CreateExam(ctx context.Context, exam Exam) error
	GetExam(ctx context.Context, id string) (Exam, error)
	CreateAssignment(ctx context.Context, a Assignment) error
	GetAssignmentByToken(ctx context.Context, token string) (Assignment, error)
	Submit(ctx context.Context, token string, answers []string) (Assignment, error)
}
