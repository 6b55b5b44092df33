package jobs

import "time"

// Job is an open position candidates are evaluated against. The embedding is
// computed once at creation and reused for every candidate score.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Embedding   []float64 `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}
