// internal/workers/eligibility/check-eligibility/models.go
package checkeligibility

import "pathway-workers/internal/models"

type Input struct {
	ApplicantID string `json:"applicantId,omitempty"`
	// Profile, when present, is used as-is and no lookup happens.
	Profile *models.ApplicantProfile `json:"profile,omitempty"`
	// Opportunities, when present, replace the catalog lookup.
	Opportunities []models.OpportunityRecord `json:"opportunities,omitempty"`
	CatalogTag    string                     `json:"catalogTag,omitempty"`
}

type Output struct {
	Results []models.OpportunityEvaluation `json:"results"`
	Summary models.EligibilitySummary      `json:"summary"`
}
