package interviews

import "errors"

var (
	// ErrNotFound means the proposal id does not resolve.
	ErrNotFound = errors.New("proposal not found")
	// ErrAlreadyDecided means the proposal left the expected source state
	// before the requested transition; the loser of an approval race sees
	// this, as does any decision on a terminal proposal.
	ErrAlreadyDecided = errors.New("proposal already decided")
	// ErrActiveProposalExists means the candidate already has a non-terminal
	// proposal in this evaluation cycle.
	ErrActiveProposalExists = errors.New("active proposal already exists for candidate")
)
