package feedback

import "errors"

var (
	// ErrUnknownCandidate indicates feedback references a candidate that
	// does not exist.
	ErrUnknownCandidate = errors.New("unknown candidate")
	// ErrInvalidScore indicates the HR score is outside [0, 1].
	ErrInvalidScore = errors.New("score must be in [0, 1]")
)
