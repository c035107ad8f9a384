// internal/workers/eligibility/rank-results/models.go
package rankresults

import "pathway-workers/internal/models"

type Input struct {
	Results  []models.OpportunityEvaluation `json:"results"`
	MaxItems int                            `json:"maxItems,omitempty"`
}

type Output struct {
	Results []models.OpportunityEvaluation `json:"results"`
	Summary models.EligibilitySummary      `json:"summary"`
}
