// internal/eligibility/rank.go
package eligibility

import (
	"sort"

	"pathway-workers/internal/models"
)

// Rank orders evaluations by eligibility score descending, breaking ties
// by award amount descending. The sort is stable so equally scored and
// equally funded entries keep their catalog order.
func Rank(results []models.OpportunityEvaluation) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].EligibilityScore != results[j].EligibilityScore {
			return results[i].EligibilityScore > results[j].EligibilityScore
		}
		return results[i].Amount > results[j].Amount
	})
}

// Summarize counts evaluations per tier and totals the award value of the
// opportunities the applicant is eligible or highly eligible for.
func Summarize(results []models.OpportunityEvaluation) models.EligibilitySummary {
	summary := models.EligibilitySummary{TotalChecked: len(results)}
	for _, r := range results {
		switch r.EligibilityStatus {
		case models.StatusHighlyEligible:
			summary.HighlyEligible++
			summary.PotentialValue += r.Amount
		case models.StatusEligible:
			summary.Eligible++
			summary.PotentialValue += r.Amount
		case models.StatusPartiallyEligible:
			summary.PartiallyEligible++
		default:
			summary.NotEligible++
		}
	}
	return summary
}
