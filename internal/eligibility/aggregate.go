// internal/eligibility/aggregate.go
package eligibility

import "math"

// aggregateScore computes the percentage score over the evaluable criteria.
// Non-evaluable criteria contribute to neither the numerator nor the
// denominator; an opportunity with no evaluable criteria scores 0.
func aggregateScore(outcomes []CriterionOutcome) float64 {
	var achieved, applicableMax float64
	for _, o := range outcomes {
		if o.Status == CriterionNotEvaluable {
			continue
		}
		achieved += o.Achieved
		applicableMax += o.MaxPoints
	}

	if applicableMax == 0 {
		return 0
	}
	return math.Round(achieved / applicableMax * 100)
}
