// internal/eligibility/evaluate.go
package eligibility

import (
	"fmt"
	"strconv"
	"strings"

	"pathway-workers/internal/models"
)

// supportedGPAScales are the denominators accepted for GPA normalization.
var supportedGPAScales = map[string]float64{
	"4.0":  4.0,
	"5.0":  5.0,
	"7.0":  7.0,
	"10.0": 10.0,
	"100":  100,
}

const (
	defaultProfileGPAScale = "7.0"
	// Opportunity minimums are assumed to be on a 4.0 baseline unless the
	// record declares a different scale.
	defaultRequirementGPAScale = "4.0"
)

// allFieldsWildcard makes an opportunity open to every field of study.
const allFieldsWildcard = "all fields"

// fieldGroups maps umbrella field labels used in catalogs to the study
// fields they cover. Matched by substring against the profile field.
var fieldGroups = map[string][]string{
	"stem": {
		"science", "technology", "engineering", "mathematics", "math",
		"computer", "physics", "chemistry", "biology", "statistics", "data",
	},
	"humanities": {
		"history", "philosophy", "literature", "languages", "classics", "arts",
	},
}

// evaluateOpportunity scores one applicant against one opportunity and
// returns the per-criterion outcomes in evaluation order.
func evaluateOpportunity(profile *models.ApplicantProfile, opp *models.OpportunityRecord) []CriterionOutcome {
	outcomes := make([]CriterionOutcome, 0, len(evaluationOrder))
	for _, kind := range evaluationOrder {
		var outcome CriterionOutcome
		switch kind {
		case KindAcademicLevel:
			outcome = evaluateAcademicLevel(profile, &opp.Criteria)
		case KindFieldOfStudy:
			outcome = evaluateFieldOfStudy(profile, &opp.Criteria)
		case KindGPA:
			outcome = evaluateGPA(profile, &opp.Criteria)
		case KindTestScore:
			outcome = evaluateTestScore(profile, &opp.Criteria)
		case KindAge:
			outcome = evaluateAge(profile, &opp.Criteria)
		case KindWorkExperience:
			outcome = evaluateWorkExperience(profile, &opp.Criteria)
		case KindCountry:
			outcome = evaluateCountry(profile, &opp.Criteria)
		case KindDemographic:
			outcome = evaluateDemographic(profile, &opp.Criteria)
		}
		outcome.Kind = kind
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func notEvaluable() CriterionOutcome {
	return CriterionOutcome{Status: CriterionNotEvaluable}
}

func met(points float64, reason string) CriterionOutcome {
	return CriterionOutcome{
		Status:    CriterionMet,
		Achieved:  points,
		MaxPoints: points,
		Reason:    reason,
	}
}

func notMet(maxPoints float64, reason, suggestion string) CriterionOutcome {
	return CriterionOutcome{
		Status:     CriterionNotMet,
		MaxPoints:  maxPoints,
		Reason:     reason,
		Suggestion: suggestion,
	}
}

// evaluateAcademicLevel is a case-insensitive equality check; ordering
// between levels is not assumed.
func evaluateAcademicLevel(profile *models.ApplicantProfile, c *models.OpportunityCriteria) CriterionOutcome {
	if c.RequiredLevel == "" || profile.AcademicLevel == "" {
		return notEvaluable()
	}

	weight := WeightFor(KindAcademicLevel)
	if strings.EqualFold(strings.TrimSpace(c.RequiredLevel), strings.TrimSpace(profile.AcademicLevel)) {
		return met(weight, fmt.Sprintf("✓ Academic level requirement met (%s)", profile.AcademicLevel))
	}
	return notMet(weight,
		fmt.Sprintf("✗ Requires %s level (you are at %s)", c.RequiredLevel, profile.AcademicLevel),
		fmt.Sprintf("Look for opportunities at the %s level, or revisit this one after progressing", profile.AcademicLevel),
	)
}

func evaluateFieldOfStudy(profile *models.ApplicantProfile, c *models.OpportunityCriteria) CriterionOutcome {
	if len(c.EligibleFields) == 0 || profile.FieldOfStudy == "" {
		return notEvaluable()
	}

	weight := WeightFor(KindFieldOfStudy)
	applicantField := strings.ToLower(strings.TrimSpace(profile.FieldOfStudy))

	for _, field := range c.EligibleFields {
		eligible := strings.ToLower(strings.TrimSpace(field))
		if eligible == allFieldsWildcard {
			return met(weight, "✓ Open to all fields of study")
		}
		if fieldMatches(applicantField, eligible) {
			return met(weight, fmt.Sprintf("✓ Field of study matches (%s)", field))
		}
	}

	return notMet(weight,
		fmt.Sprintf("✗ Field of study not eligible (requires: %s)", strings.Join(c.EligibleFields, ", ")),
		"",
	)
}

// fieldMatches checks an eligible-field label against the applicant's field:
// substring in either direction, or membership in an umbrella group such as
// "STEM".
func fieldMatches(applicantField, eligible string) bool {
	if strings.Contains(applicantField, eligible) || strings.Contains(eligible, applicantField) {
		return true
	}
	if members, ok := fieldGroups[eligible]; ok {
		for _, m := range members {
			if strings.Contains(applicantField, m) {
				return true
			}
		}
	}
	return false
}

func evaluateGPA(profile *models.ApplicantProfile, c *models.OpportunityCriteria) CriterionOutcome {
	if c.MinGPA == nil || profile.GPA == nil {
		return notEvaluable()
	}

	profileScale, ok := gpaScaleValue(profile.GPAScale, defaultProfileGPAScale)
	if !ok {
		return notEvaluable()
	}
	targetScale, ok := gpaScaleValue(c.GPAScale, defaultRequirementGPAScale)
	if !ok {
		return notEvaluable()
	}

	// Both sides are compared on the requirement's scale.
	normalized := *profile.GPA / profileScale * targetScale
	required := *c.MinGPA

	weight := WeightFor(KindGPA)
	if normalized >= required {
		return met(weight, fmt.Sprintf("✓ GPA requirement met (%.2f ≥ %.2f)", normalized, required))
	}
	return notMet(weight,
		fmt.Sprintf("✗ GPA below requirement (%.2f < %.2f)", normalized, required),
		"Maintain or improve your GPA to meet the minimum requirement",
	)
}

// evaluateTestScore tries IELTS first; TOEFL is only consulted when the
// IELTS pairing is unavailable. A test requirement that cannot be satisfied
// by any provided score counts against the applicant.
func evaluateTestScore(profile *models.ApplicantProfile, c *models.OpportunityCriteria) CriterionOutcome {
	if c.MinIELTS == nil && c.MinTOEFL == nil {
		return notEvaluable()
	}

	weight := WeightFor(KindTestScore)

	if c.MinIELTS != nil && profile.IELTSScore != nil {
		if *profile.IELTSScore >= *c.MinIELTS {
			return met(weight, fmt.Sprintf("✓ IELTS requirement met (%.1f ≥ %.1f)", *profile.IELTSScore, *c.MinIELTS))
		}
		return notMet(weight,
			fmt.Sprintf("✗ IELTS below requirement (%.1f < %.1f)", *profile.IELTSScore, *c.MinIELTS),
			fmt.Sprintf("Retake IELTS aiming for a band score of %.1f or higher", *c.MinIELTS),
		)
	}

	if c.MinTOEFL != nil && profile.TOEFLScore != nil {
		if *profile.TOEFLScore >= *c.MinTOEFL {
			return met(weight, fmt.Sprintf("✓ TOEFL requirement met (%.0f ≥ %.0f)", *profile.TOEFLScore, *c.MinTOEFL))
		}
		return notMet(weight,
			fmt.Sprintf("✗ TOEFL below requirement (%.0f < %.0f)", *profile.TOEFLScore, *c.MinTOEFL),
			fmt.Sprintf("Retake TOEFL aiming for a score of %.0f or higher", *c.MinTOEFL),
		)
	}

	return notMet(weight,
		"✗ Standardized test score required but not provided",
		"Take an English proficiency test (IELTS or TOEFL) to qualify",
	)
}

func evaluateAge(profile *models.ApplicantProfile, c *models.OpportunityCriteria) CriterionOutcome {
	if c.MaxAge == nil || profile.Age == nil {
		return notEvaluable()
	}

	weight := WeightFor(KindAge)
	if *profile.Age <= *c.MaxAge {
		return met(weight, fmt.Sprintf("✓ Age requirement met (%d ≤ %d)", *profile.Age, *c.MaxAge))
	}
	return notMet(weight,
		fmt.Sprintf("✗ Above the age limit (%d > %d)", *profile.Age, *c.MaxAge),
		"",
	)
}

// evaluateWorkExperience treats a missing profile value as zero years:
// absence of experience is a valid state, unlike a missing GPA.
func evaluateWorkExperience(profile *models.ApplicantProfile, c *models.OpportunityCriteria) CriterionOutcome {
	if c.MinWorkExperienceYears == nil {
		return notEvaluable()
	}

	var years float64
	if profile.WorkExperienceYears != nil {
		years = *profile.WorkExperienceYears
	}

	weight := WeightFor(KindWorkExperience)
	required := *c.MinWorkExperienceYears
	if years >= required {
		return met(weight, fmt.Sprintf("✓ Work experience requirement met (%s ≥ %s years)", formatYears(years), formatYears(required)))
	}
	return notMet(weight,
		fmt.Sprintf("✗ Requires %s+ years of work experience (you have %s)", formatYears(required), formatYears(years)),
		fmt.Sprintf("Gain %s more years of relevant work experience", formatYears(required-years)),
	)
}

func evaluateCountry(profile *models.ApplicantProfile, c *models.OpportunityCriteria) CriterionOutcome {
	if len(c.EligibleCountries) == 0 || profile.CountryOfOrigin == "" {
		return notEvaluable()
	}

	weight := WeightFor(KindCountry)
	applicantCountry := strings.ToLower(strings.TrimSpace(profile.CountryOfOrigin))
	for _, country := range c.EligibleCountries {
		if strings.ToLower(strings.TrimSpace(country)) == applicantCountry {
			return met(weight, fmt.Sprintf("✓ Open to applicants from %s", profile.CountryOfOrigin))
		}
	}
	return notMet(weight,
		fmt.Sprintf("✗ Restricted to %s", strings.Join(c.EligibleCountries, ", ")),
		fmt.Sprintf("This opportunity is restricted to %s; consider alternatives open to your country", strings.Join(c.EligibleCountries, ", ")),
	)
}

// evaluateDemographic gives each targeted group an equal share of the
// criterion weight.
func evaluateDemographic(profile *models.ApplicantProfile, c *models.OpportunityCriteria) CriterionOutcome {
	type target struct {
		matched bool
		label   string
	}

	var targets []target
	if c.TargetIndigenous {
		targets = append(targets, target{profile.Demographics.IndigenousStatus, "Indigenous applicants"})
	}
	if c.TargetFirstGeneration {
		targets = append(targets, target{profile.Demographics.FirstGeneration, "first-generation students"})
	}
	if c.TargetDisability {
		targets = append(targets, target{profile.Demographics.DisabilityStatus, "applicants with disability"})
	}
	if c.TargetGender != "" {
		matched := profile.Demographics.Gender != "" &&
			strings.EqualFold(strings.TrimSpace(profile.Demographics.Gender), strings.TrimSpace(c.TargetGender))
		targets = append(targets, target{matched, fmt.Sprintf("%s applicants", c.TargetGender)})
	}

	if len(targets) == 0 {
		return notEvaluable()
	}

	weight := WeightFor(KindDemographic)
	share := weight / float64(len(targets))

	var achieved float64
	var matchedLabels, missedLabels []string
	for _, t := range targets {
		if t.matched {
			achieved += share
			matchedLabels = append(matchedLabels, t.label)
		} else {
			missedLabels = append(missedLabels, t.label)
		}
	}

	if len(missedLabels) == 0 {
		return met(weight, fmt.Sprintf("✓ Priority group match (%s)", strings.Join(matchedLabels, ", ")))
	}

	outcome := notMet(weight, fmt.Sprintf("✗ Targeted at %s", strings.Join(missedLabels, ", ")), "")
	outcome.Achieved = achieved
	if len(matchedLabels) > 0 {
		outcome.Reason = fmt.Sprintf("✗ Partial priority group match (targeted at %s)", strings.Join(missedLabels, ", "))
	}
	return outcome
}

// gpaScaleValue resolves a scale label to its numeric denominator, falling
// back to the given default when the label is empty.
func gpaScaleValue(label, fallback string) (float64, bool) {
	if label == "" {
		label = fallback
	}
	if v, ok := supportedGPAScales[label]; ok {
		return v, true
	}
	// Tolerate labels like "7" or "4".
	if f, err := strconv.ParseFloat(label, 64); err == nil {
		for _, v := range supportedGPAScales {
			if v == f {
				return v, true
			}
		}
	}
	return 0, false
}

func formatYears(years float64) string {
	return strconv.FormatFloat(years, 'f', -1, 64)
}
