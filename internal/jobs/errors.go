package jobs

import "errors"

// ErrNotFound indicates the job does not exist.
var ErrNotFound = errors.New("job not found")
