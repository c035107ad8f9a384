// internal/eligibility/explain.go
package eligibility

// buildExplanations splits criterion outcomes into the three explanation
// lists shown to applicants. All three are always non-nil so the JSON
// output carries empty arrays instead of null.
func buildExplanations(outcomes []CriterionOutcome) (matchReasons, missingCriteria, suggestions []string) {
	matchReasons = []string{}
	missingCriteria = []string{}
	suggestions = []string{}

	for _, o := range outcomes {
		switch o.Status {
		case CriterionMet:
			if o.Reason != "" {
				matchReasons = append(matchReasons, o.Reason)
			}
		case CriterionNotMet:
			if o.Reason != "" {
				missingCriteria = append(missingCriteria, o.Reason)
			}
			if o.Suggestion != "" {
				suggestions = append(suggestions, o.Suggestion)
			}
		}
	}
	return matchReasons, missingCriteria, suggestions
}
