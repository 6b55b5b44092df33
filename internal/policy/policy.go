// Package policy converts a fit score into a hiring pipeline decision.
package policy

import "fmt"

// Decision is the outcome of evaluating a candidate's fit score.
type Decision string

const (
	AutoPropose   Decision = "auto_propose"
	Reject        Decision = "reject"
	HoldForReview Decision = "hold_for_manual_review"
)

// Config holds the decision thresholds. It is passed in explicitly so the
// policy stays testable with varied configurations.
type Config struct {
	// Threshold is the minimum score for an automatic interview proposal.
	Threshold float64
	// Margin widens a band below Threshold that is routed to manual review
	// instead of an abrupt rejection.
	Margin float64
}

// Validate checks the configured threshold and margin.
func (c Config) Validate() error {
	if c.Threshold <= 0 || c.Threshold >= 1 {
		return fmt.Errorf("threshold must be in (0, 1), got %v", c.Threshold)
	}
	if c.Margin < 0 {
		return fmt.Errorf("margin must be non-negative, got %v", c.Margin)
	}
	return nil
}

// Decide maps a score to a decision:
// score >= threshold          -> AutoPropose
// score <  threshold - margin -> Reject
// otherwise                   -> HoldForReview
func Decide(cfg Config, score float64) Decision {
	switch {
	case score >= cfg.Threshold:
		return AutoPropose
	case score < cfg.Threshold-cfg.Margin:
		return Reject
	default:
		return HoldForReview
	}
}
