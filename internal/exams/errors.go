package exams

import "errors"

var (
	// ErrNotFound indicates the exam or assignment does not exist.
	ErrNotFound = errors.New("exam not found")
	// ErrAlreadySubmitted indicates the assignment was already completed.
	ErrAlreadySubmitted = errors.New("exam already submitted")
)
