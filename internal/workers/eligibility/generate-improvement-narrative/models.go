// internal/workers/eligibility/generate-improvement-narrative/models.go
package generateimprovementnarrative

import "pathway-workers/internal/models"

type Input struct {
	ApplicantID string                         `json:"applicantId"`
	Profile     *models.ApplicantProfile       `json:"profile,omitempty"`
	Results     []models.OpportunityEvaluation `json:"results"`
}

type Output struct {
	Narrative  string   `json:"narrative"`
	Confidence float64  `json:"confidence"`
	FocusAreas []string `json:"focusAreas"`
}
