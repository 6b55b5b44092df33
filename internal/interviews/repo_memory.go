package interviews

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo. Transitions are
// compare-and-set under the repo mutex.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Proposal
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Proposal)}
}

// Create stores a new proposal.
func (r *MemoryRepo) Create(ctx context.Context, p Proposal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[p.ID] = p
	return nil
}

// GetByID returns a proposal by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Proposal, error) {
	if err := ctx.Err(); err != nil {
		return Proposal{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.data[id]
	if !ok {
		return Proposal{}, ErrNotFound
	}
	return p, nil
}

// ListByStatus returns proposals in the given status, oldest first.
func (r *MemoryRepo) ListByStatus(ctx context.Context, status Status) ([]Proposal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Proposal
	for _, p := range r.data {
		if p.Status == status {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// FindActiveByCandidate returns the candidate's non-terminal proposal, if any.
func (r *MemoryRepo) FindActiveByCandidate(ctx context.Context, candidateID string) (Proposal, error) {
	if err := ctx.Err(); err != nil {
		return Proposal{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.data {
		if p.CandidateID == candidateID && !p.Status.Terminal() {
			return p, nil
		}
	}
	return Proposal{}, ErrNotFound
}

// FindLatestByCandidate returns the candidate's most recent proposal in any
// status, if any.
func (r *MemoryRepo) FindLatestByCandidate(ctx context.Context, candidateID string) (Proposal, error) {
	if err := ctx.Err(); err != nil {
		return Proposal{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest Proposal
	found := false
	for _, p := range r.data {
		if p.CandidateID != candidateID {
			continue
		}
		if !found || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
			found = true
		}
	}
	if !found {
		return Proposal{}, ErrNotFound
	}
	return latest, nil
}

// ListExpired returns pending proposals whose TTL elapsed before now.
func (r *MemoryRepo) ListExpired(ctx context.Context, now time.Time) ([]Proposal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Proposal
	for _, p := range r.data {
		if p.Status == StatusPending && p.ExpiresAt.Before(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

// TransitionStatus applies a guarded lifecycle transition.
func (r *MemoryRepo) TransitionStatus(ctx context.Context, id string, from, to Status, update StatusUpdate) (Proposal, error) {
	if err := ctx.Err(); err != nil {
		return Proposal{}, err
	}
	if !CanTransition(from, to) {
		return Proposal{}, ErrAlreadyDecided
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.data[id]
	if !ok {
		return Proposal{}, ErrNotFound
	}
	if p.Status != from {
		return Proposal{}, ErrAlreadyDecided
	}
	p.Status = to
	applyUpdate(&p, update)
	r.data[id] = p
	return p, nil
}

func applyUpdate(p *Proposal, update StatusUpdate) {
	if update.SlotStart != nil {
		p.SlotStart = update.SlotStart
	}
	if update.SlotEnd != nil {
		p.SlotEnd = update.SlotEnd
	}
	if update.EventRef != "" {
		p.EventRef = update.EventRef
	}
	if update.MeetLink != "" {
		p.MeetLink = update.MeetLink
	}
	if update.FailureReason != "" {
		p.FailureReason = update.FailureReason
	}
	if update.DecidedAt != nil {
		p.DecidedAt = update.DecidedAt
	}
}
