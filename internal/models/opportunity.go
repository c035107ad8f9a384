// internal/models/opportunity.go
package models

// OpportunityRecord is one catalog entry: a scholarship or grant with its
// award amount and eligibility criteria.
type OpportunityRecord struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Provider string              `json:"provider,omitempty"`
	Amount   float64             `json:"amount"`
	Currency string              `json:"currency,omitempty"`
	Deadline string              `json:"deadline,omitempty"`
	Tags     []string            `json:"tags,omitempty"`
	Criteria OpportunityCriteria `json:"criteria"`
}

// OpportunityCriteria describes the requirements an applicant is scored
// against. Any absent requirement leaves the matching criterion
// non-evaluable rather than failing it.
type OpportunityCriteria struct {
	RequiredLevel          string   `json:"requiredLevel,omitempty"`
	EligibleFields         []string `json:"eligibleFields,omitempty"` // "All Fields" acts as a wildcard
	MinGPA                 *float64 `json:"minGPA,omitempty"` // expressed on a 4.0 baseline unless GPAScale says otherwise
	GPAScale               string   `json:"gpaScale,omitempty"`
	MinIELTS               *float64 `json:"minIELTS,omitempty"`
	MinTOEFL               *float64 `json:"minTOEFL,omitempty"`
	MaxAge                 *int     `json:"maxAge,omitempty"`
	MinWorkExperienceYears *float64 `json:"minWorkExperienceYears,omitempty"`
	EligibleCountries      []string `json:"eligibleCountries,omitempty"`
	TargetIndigenous       bool     `json:"targetIndigenous,omitempty"`
	TargetFirstGeneration  bool     `json:"targetFirstGeneration,omitempty"`
	TargetDisability       bool     `json:"targetDisability,omitempty"`
	TargetGender           string   `json:"targetGender,omitempty"`
}
