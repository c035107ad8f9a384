// internal/eligibility/engine.go
package eligibility

import (
	"strings"

	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/models"
)

// Engine runs the full scoring pipeline: evaluate each catalog entry,
// aggregate per-criterion points into a percentage, attach explanations,
// rank, and summarize.
type Engine struct {
	logger logger.Logger
}

func NewEngine(log logger.Logger) *Engine {
	return &Engine{logger: log}
}

// CheckProfile scores one applicant against the full catalog. Malformed
// catalog entries are logged and skipped; they never abort the batch.
// The returned report always has a non-nil Results slice.
func (e *Engine) CheckProfile(profile *models.ApplicantProfile, catalog []models.OpportunityRecord) *models.EligibilityReport {
	results := make([]models.OpportunityEvaluation, 0, len(catalog))

	for i := range catalog {
		opp := &catalog[i]
		if reason := validateOpportunity(opp); reason != "" {
			e.logger.Warn("skipping malformed opportunity", map[string]interface{}{
				"opportunityId": opp.ID,
				"reason":        reason,
				"position":      i,
			})
			continue
		}
		results = append(results, e.Evaluate(profile, opp))
	}

	Rank(results)

	return &models.EligibilityReport{
		Results: results,
		Summary: Summarize(results),
	}
}

// Evaluate scores one applicant against one well-formed opportunity.
func (e *Engine) Evaluate(profile *models.ApplicantProfile, opp *models.OpportunityRecord) models.OpportunityEvaluation {
	outcomes := evaluateOpportunity(profile, opp)
	score := aggregateScore(outcomes)
	matchReasons, missingCriteria, suggestions := buildExplanations(outcomes)

	return models.OpportunityEvaluation{
		ScholarshipID:          opp.ID,
		ScholarshipName:        opp.Name,
		Provider:               opp.Provider,
		Amount:                 opp.Amount,
		EligibilityScore:       score,
		EligibilityStatus:      models.StatusForScore(score),
		MatchReasons:           matchReasons,
		MissingCriteria:        missingCriteria,
		ImprovementSuggestions: suggestions,
		Deadline:               opp.Deadline,
		Tags:                   opp.Tags,
	}
}

// Outcomes exposes the raw per-criterion outcomes for one opportunity,
// used by the narrative worker to build richer guidance.
func (e *Engine) Outcomes(profile *models.ApplicantProfile, opp *models.OpportunityRecord) []CriterionOutcome {
	return evaluateOpportunity(profile, opp)
}

// validateOpportunity returns a short reason when the record is malformed,
// empty string when it is usable.
func validateOpportunity(opp *models.OpportunityRecord) string {
	if strings.TrimSpace(opp.ID) == "" {
		return "missing id"
	}
	if strings.TrimSpace(opp.Name) == "" {
		return "missing name"
	}
	if opp.Amount < 0 {
		return "negative amount"
	}
	return ""
}
