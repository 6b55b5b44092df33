package interviews

import (
	"context"
	"time"

	"hiring-backend/internal/shared/telemetry"
)

// Reaper periodically expires stale pending proposals.
type Reaper struct {
	Gate     *Service
	Interval time.Duration
}

// Run blocks until ctx is cancelled, sweeping on each tick.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	telemetry.Info("reaper.started", map[string]any{
		"interval": r.Interval.String(),
	})

	for {
		select {
		case <-ctx.Done():
			telemetry.Info("reaper.stopped", nil)
			return
		case now := <-ticker.C:
			expired, err := r.Gate.ExpireStale(ctx, now.UTC())
			if err != nil {
				telemetry.Error("reaper.sweep_failed", map[string]any{
					"error": err.Error(),
				})
				continue
			}
			if expired > 0 {
				telemetry.Info("reaper.swept", map[string]any{
					"expired": expired,
				})
			}
		}
	}
}
