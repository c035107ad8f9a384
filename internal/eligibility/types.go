// internal/eligibility/types.go
package eligibility

// CriterionKind identifies one of the scored criteria.
type CriterionKind string

const (
	KindAcademicLevel  CriterionKind = "academic-level"
	KindFieldOfStudy   CriterionKind = "field-of-study"
	KindGPA            CriterionKind = "gpa"
	KindTestScore      CriterionKind = "test-score"
	KindAge            CriterionKind = "age"
	KindWorkExperience CriterionKind = "work-experience"
	KindCountry        CriterionKind = "country"
	KindDemographic    CriterionKind = "demographic"
)

// CriterionStatus is the outcome of evaluating one criterion.
type CriterionStatus string

const (
	CriterionMet          CriterionStatus = "MET"
	CriterionNotMet       CriterionStatus = "NOT_MET"
	CriterionNotEvaluable CriterionStatus = "NOT_EVALUABLE"
)

// CriterionOutcome holds the evaluation of a single criterion. Achieved and
// MaxPoints both count toward the percentage only when the criterion was
// evaluable.
type CriterionOutcome struct {
	Kind       CriterionKind   `json:"kind"`
	Status     CriterionStatus `json:"status"`
	Achieved   float64         `json:"achieved"`
	MaxPoints  float64         `json:"maxPoints"`
	Reason     string          `json:"reason,omitempty"`
	Suggestion string          `json:"suggestion,omitempty"`
}
