package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecideBands(t *testing.T) {
	cfg := Config{Threshold: 0.75, Margin: 0.05}

	cases := []struct {
		name  string
		score float64
		want  Decision
	}{
		{"well above threshold", 0.80, AutoPropose},
		{"exactly threshold", 0.75, AutoPropose},
		{"inside review band", 0.72, HoldForReview},
		{"band lower edge", 0.70, HoldForReview},
		{"below band", 0.60, Reject},
		{"just below band", 0.6999, Reject},
		{"perfect score", 1.0, AutoPropose},
		{"zero score", 0.0, Reject},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(cfg, tc.score))
		})
	}
}

func TestDecideZeroMarginHasNoReviewBand(t *testing.T) {
	cfg := Config{Threshold: 0.5, Margin: 0}
	assert.Equal(t, AutoPropose, Decide(cfg, 0.5))
	assert.Equal(t, Reject, Decide(cfg, 0.4999))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Threshold: 0.75, Margin: 0.05}.Validate())
	assert.Error(t, Config{Threshold: 0, Margin: 0.05}.Validate())
	assert.Error(t, Config{Threshold: 1, Margin: 0.05}.Validate())
	assert.Error(t, Config{Threshold: 1.2, Margin: 0}.Validate())
	assert.Error(t, Config{Threshold: 0.75, Margin: -0.1}.Validate())
}
