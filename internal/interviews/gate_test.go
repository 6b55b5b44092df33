package interviews

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestGate(repo Repo, now time.Time) *Service {
	return &Service{
		Repo: repo,
		TTL:  72 * time.Hour,
		now:  func() time.Time { return now },
	}
}

func TestProposeCreatesPendingWithTTL(t *testing.T) {
	repo := NewMemoryRepo()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	gate := newTestGate(repo, now)

	p, err := gate.Propose(context.Background(), "cand-1", "job-1", "Interview: Backend Engineer")
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}
	if p.Status != StatusPending {
		t.Fatalf("expected status pending, got %s", p.Status)
	}
	if !p.ExpiresAt.Equal(now.Add(72 * time.Hour)) {
		t.Fatalf("expected expiry %v, got %v", now.Add(72*time.Hour), p.ExpiresAt)
	}
	if p.ID == "" {
		t.Fatal("expected a generated id")
	}
}

func TestProposeRejectsSecondActiveProposal(t *testing.T) {
	repo := NewMemoryRepo()
	gate := newTestGate(repo, time.Now().UTC())

	if _, err := gate.Propose(context.Background(), "cand-1", "job-1", "Interview"); err != nil {
		t.Fatalf("first Propose: %v", err)
	}
	_, err := gate.Propose(context.Background(), "cand-1", "job-1", "Interview")
	if !errors.Is(err, ErrActiveProposalExists) {
		t.Fatalf("expected ErrActiveProposalExists, got %v", err)
	}
}

func TestProposeAllowsNewProposalAfterTerminal(t *testing.T) {
	repo := NewMemoryRepo()
	gate := newTestGate(repo, time.Now().UTC())

	p, err := gate.Propose(context.Background(), "cand-1", "job-1", "Interview")
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}
	if _, err := gate.Reject(context.Background(), p.ID); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if _, err := gate.Propose(context.Background(), "cand-1", "job-1", "Interview"); err != nil {
		t.Fatalf("Propose after terminal: %v", err)
	}
}

func TestApproveDispatchesOnce(t *testing.T) {
	repo := NewMemoryRepo()
	gate := newTestGate(repo, time.Now().UTC())

	var dispatched int32
	gate.OnApproved = func(p Proposal) {
		atomic.AddInt32(&dispatched, 1)
	}

	p, err := gate.Propose(context.Background(), "cand-1", "job-1", "Interview")
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}

	approved, err := gate.Approve(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Fatalf("expected status approved, got %s", approved.Status)
	}
	if approved.DecidedAt == nil {
		t.Fatal("expected decidedAt to be set")
	}

	if _, err := gate.Approve(context.Background(), p.ID); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("expected ErrAlreadyDecided on second approve, got %v", err)
	}
	if got := atomic.LoadInt32(&dispatched); got != 1 {
		t.Fatalf("expected exactly 1 dispatch, got %d", got)
	}
}

func TestRejectThenApproveConflicts(t *testing.T) {
	repo := NewMemoryRepo()
	gate := newTestGate(repo, time.Now().UTC())

	p, err := gate.Propose(context.Background(), "cand-1", "job-1", "Interview")
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}
	if _, err := gate.Reject(context.Background(), p.ID); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if _, err := gate.Approve(context.Background(), p.ID); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("expected ErrAlreadyDecided, got %v", err)
	}

	got, err := gate.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusRejected {
		t.Fatalf("expected status rejected, got %s", got.Status)
	}
}

func TestConcurrentDecisionsHaveOneWinner(t *testing.T) {
	repo := NewMemoryRepo()
	gate := newTestGate(repo, time.Now().UTC())

	var dispatched int32
	gate.OnApproved = func(p Proposal) {
		atomic.AddInt32(&dispatched, 1)
	}

	p, err := gate.Propose(context.Background(), "cand-1", "job-1", "Interview")
	if err != nil {
		t.Fatalf("Propose: %v", err)
	}

	const deciders = 20
	var wins, losses int32
	var wg sync.WaitGroup
	wg.Add(deciders)
	for i := 0; i < deciders; i++ {
		approve := i%2 == 0
		go func(approve bool) {
			defer wg.Done()
			var err error
			if approve {
				_, err = gate.Approve(context.Background(), p.ID)
			} else {
				_, err = gate.Reject(context.Background(), p.ID)
			}
			switch {
			case err == nil:
				atomic.AddInt32(&wins, 1)
			case errors.Is(err, ErrAlreadyDecided):
				atomic.AddInt32(&losses, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(approve)
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("expected exactly 1 winning decision, got %d", wins)
	}
	if losses != deciders-1 {
		t.Fatalf("expected %d losers, got %d", deciders-1, losses)
	}

	got, err := gate.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != StatusApproved && got.Status != StatusRejected {
		t.Fatalf("unexpected final status %s", got.Status)
	}
	if got.Status == StatusApproved && atomic.LoadInt32(&dispatched) != 1 {
		t.Fatalf("approved proposal must dispatch exactly once, got %d", dispatched)
	}
	if got.Status == StatusRejected && atomic.LoadInt32(&dispatched) != 0 {
		t.Fatalf("rejected proposal must not dispatch, got %d", dispatched)
	}
}

func TestExpireStaleRejectsOnlyElapsedPending(t *testing.T) {
	repo := NewMemoryRepo()
	created := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	gate := newTestGate(repo, created)

	stale, err := gate.Propose(context.Background(), "cand-1", "job-1", "Interview")
	if err != nil {
		t.Fatalf("Propose stale: %v", err)
	}
	fresh, err := gate.Propose(context.Background(), "cand-2", "job-1", "Interview")
	if err != nil {
		t.Fatalf("Propose fresh: %v", err)
	}
	approved, err := gate.Propose(context.Background(), "cand-3", "job-1", "Interview")
	if err != nil {
		t.Fatalf("Propose approved: %v", err)
	}
	if _, err := gate.Approve(context.Background(), approved.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	// Push only the first proposal past its TTL.
	repo.mu.Lock()
	p := repo.data[stale.ID]
	p.ExpiresAt = created.Add(-time.Minute)
	repo.data[stale.ID] = p
	repo.mu.Unlock()

	expired, err := gate.ExpireStale(context.Background(), created)
	if err != nil {
		t.Fatalf("ExpireStale: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expected 1 expiry, got %d", expired)
	}

	got, _ := gate.Get(context.Background(), stale.ID)
	if got.Status != StatusRejected || got.FailureReason != ReasonExpired {
		t.Fatalf("expected rejected/Expired, got %s/%q", got.Status, got.FailureReason)
	}
	if got.DecidedAt == nil {
		t.Fatal("expected decidedAt on expired proposal")
	}

	for _, id := range []string{fresh.ID, approved.ID} {
		got, _ := gate.Get(context.Background(), id)
		if got.Status == StatusRejected {
			t.Fatalf("proposal %s should not have been expired", id)
		}
	}
}
