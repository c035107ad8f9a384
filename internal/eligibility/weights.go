// internal/eligibility/weights.go
package eligibility

import "fmt"

// criterionWeights is the single source of truth for how much each
// criterion contributes to the maximum achievable score.
var criterionWeights = map[CriterionKind]float64{
	KindAcademicLevel:  20,
	KindFieldOfStudy:   15,
	KindGPA:            20,
	KindTestScore:      15,
	KindAge:            10,
	KindWorkExperience: 10,
	KindCountry:        10,
	KindDemographic:    10,
}

// evaluationOrder fixes the order criteria are evaluated and reported in.
var evaluationOrder = []CriterionKind{
	KindAcademicLevel,
	KindFieldOfStudy,
	KindGPA,
	KindTestScore,
	KindAge,
	KindWorkExperience,
	KindCountry,
	KindDemographic,
}

// WeightFor returns the weight of a criterion kind, 0 for unknown kinds.
func WeightFor(kind CriterionKind) float64 {
	return criterionWeights[kind]
}

// ValidateWeights confirms the table covers every criterion and sums to the
// expected total of 110 points.
func ValidateWeights() error {
	var sum float64
	for _, kind := range evaluationOrder {
		w, ok := criterionWeights[kind]
		if !ok {
			return fmt.Errorf("missing weight for criterion %s", kind)
		}
		if w <= 0 {
			return fmt.Errorf("non-positive weight for criterion %s", kind)
		}
		sum += w
	}
	if len(criterionWeights) != len(evaluationOrder) {
		return fmt.Errorf("weight table has %d entries, expected %d", len(criterionWeights), len(evaluationOrder))
	}
	if sum != 110 {
		return fmt.Errorf("weights sum to %.0f, expected 110", sum)
	}
	return nil
}
