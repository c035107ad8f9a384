// internal/models/eligibility.go
package models

// EligibilityStatus is the tier assigned from the percentage score.
type EligibilityStatus string

const (
	StatusHighlyEligible    EligibilityStatus = "highly_eligible"
	StatusEligible          EligibilityStatus = "eligible"
	StatusPartiallyEligible EligibilityStatus = "partially_eligible"
	StatusNotEligible       EligibilityStatus = "not_eligible"
)

// Tier cut-offs on the 0-100 percentage scale.
const (
	ThresholdHighlyEligible    = 80.0
	ThresholdEligible          = 60.0
	ThresholdPartiallyEligible = 40.0
)

// StatusForScore maps a percentage score to its tier.
func StatusForScore(score float64) EligibilityStatus {
	switch {
	case score >= ThresholdHighlyEligible:
		return StatusHighlyEligible
	case score >= ThresholdEligible:
		return StatusEligible
	case score >= ThresholdPartiallyEligible:
		return StatusPartiallyEligible
	default:
		return StatusNotEligible
	}
}

// OpportunityEvaluation is the scored outcome for one applicant against
// one opportunity.
type OpportunityEvaluation struct {
	ScholarshipID          string            `json:"scholarshipId"`
	ScholarshipName        string            `json:"scholarshipName"`
	Provider               string            `json:"provider,omitempty"`
	Amount                 float64           `json:"amount"`
	EligibilityScore       float64           `json:"eligibilityScore"`
	EligibilityStatus      EligibilityStatus `json:"eligibilityStatus"`
	MatchReasons           []string          `json:"matchReasons"`
	MissingCriteria        []string          `json:"missingCriteria"`
	ImprovementSuggestions []string          `json:"improvementSuggestions"`
	Deadline               string            `json:"deadline,omitempty"`
	Tags                   []string          `json:"tags,omitempty"`
}

// EligibilitySummary aggregates one batch of evaluations.
type EligibilitySummary struct {
	TotalChecked      int     `json:"totalChecked"`
	HighlyEligible    int     `json:"highlyEligible"`
	Eligible          int     `json:"eligible"`
	PartiallyEligible int     `json:"partiallyEligible"`
	NotEligible       int     `json:"notEligible"`
	PotentialValue    float64 `json:"potentialValue"`
}

// EligibilityReport is the ranked result set returned to callers.
type EligibilityReport struct {
	Results []OpportunityEvaluation `json:"results"`
	Summary EligibilitySummary      `json:"summary"`
}
