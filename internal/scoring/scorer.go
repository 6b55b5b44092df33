// Package scoring computes a normalized fit score between a job requirement
// embedding and a resume embedding.
package scoring

import (
	"errors"
	"math"
)

// ErrDimensionMismatch is returned when the two vectors differ in length.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// Score returns the cosine similarity of the two vectors mapped into [0, 1].
// Raw cosine lies in [-1, 1] since embeddings are not guaranteed non-negative;
// the result is (cosine + 1) / 2. A zero vector contributes cosine 0.
func Score(job, resume []float64) (float64, error) {
	if len(job) != len(resume) {
		return 0, ErrDimensionMismatch
	}
	if len(job) == 0 {
		return 0, ErrDimensionMismatch
	}

	var dot, normJob, normResume float64
	for i := range job {
		dot += job[i] * resume[i]
		normJob += job[i] * job[i]
		normResume += resume[i] * resume[i]
	}

	if normJob == 0 || normResume == 0 {
		return 0.5, nil
	}

	cos := dot / (math.Sqrt(normJob) * math.Sqrt(normResume))
	// Clamp against floating point drift before mapping.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return (cos + 1) / 2, nil
}
