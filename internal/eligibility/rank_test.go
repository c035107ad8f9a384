// internal/eligibility/rank_test.go
package eligibility

import (
	"testing"

	"pathway-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRank_StableForEqualScoreAndAmount(t *testing.T) {
	results := []models.OpportunityEvaluation{
		{ScholarshipID: "a", EligibilityScore: 80, Amount: 1000},
		{ScholarshipID: "b", EligibilityScore: 80, Amount: 1000},
		{ScholarshipID: "c", EligibilityScore: 90, Amount: 500},
	}

	Rank(results)

	assert.Equal(t, "c", results[0].ScholarshipID)
	assert.Equal(t, "a", results[1].ScholarshipID)
	assert.Equal(t, "b", results[2].ScholarshipID)
}

func TestSummarize(t *testing.T) {
	results := []models.OpportunityEvaluation{
		{EligibilityStatus: models.StatusHighlyEligible, Amount: 10000},
		{EligibilityStatus: models.StatusEligible, Amount: 5000},
		{EligibilityStatus: models.StatusPartiallyEligible, Amount: 3000},
		{EligibilityStatus: models.StatusNotEligible, Amount: 2000},
		{EligibilityStatus: models.StatusHighlyEligible, Amount: 7500},
	}

	summary := Summarize(results)

	assert.Equal(t, 5, summary.TotalChecked)
	assert.Equal(t, 2, summary.HighlyEligible)
	assert.Equal(t, 1, summary.Eligible)
	assert.Equal(t, 1, summary.PartiallyEligible)
	assert.Equal(t, 1, summary.NotEligible)
	// Only eligible and highly eligible awards count toward potential value.
	assert.Equal(t, 22500.0, summary.PotentialValue)
}

func TestStatusForScore_Boundaries(t *testing.T) {
	tests := []struct {
		score    float64
		expected models.EligibilityStatus
	}{
		{100, models.StatusHighlyEligible},
		{80, models.StatusHighlyEligible},
		{79, models.StatusEligible},
		{60, models.StatusEligible},
		{59, models.StatusPartiallyEligible},
		{40, models.StatusPartiallyEligible},
		{39, models.StatusNotEligible},
		{0, models.StatusNotEligible},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, models.StatusForScore(tt.score), "score %v", tt.score)
	}
}
