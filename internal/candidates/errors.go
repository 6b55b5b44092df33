package candidates

import "errors"

// ErrNotFound indicates the candidate does not exist.
var ErrNotFound = errors.New("candidate not found")
