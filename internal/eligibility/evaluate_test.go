// internal/eligibility/evaluate_test.go
package eligibility

import (
	"testing"

	"pathway-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func createTestProfile() *models.ApplicantProfile {
	return &models.ApplicantProfile{
		ID:                  "applicant-001",
		AcademicLevel:       "Undergraduate",
		FieldOfStudy:        "Computer Science",
		GPA:                 floatPtr(6.2),
		GPAScale:            "7.0",
		IELTSScore:          floatPtr(7.5),
		Age:                 intPtr(22),
		WorkExperienceYears: floatPtr(1),
		CountryOfOrigin:     "Australia",
		Demographics: models.Demographics{
			FirstGeneration: true,
			Gender:          "Female",
		},
	}
}

// ==========================
// Criterion Evaluator Tests
// ==========================

func TestEvaluateAcademicLevel(t *testing.T) {
	tests := []struct {
		name           string
		profileLevel   string
		requiredLevel  string
		expectedStatus CriterionStatus
	}{
		{"exact match", "Undergraduate", "Undergraduate", CriterionMet},
		{"case-insensitive match", "undergraduate", "UNDERGRADUATE", CriterionMet},
		{"different level", "Undergraduate", "Postgraduate", CriterionNotMet},
		{"no requirement", "Undergraduate", "", CriterionNotEvaluable},
		{"unknown profile level", "", "Undergraduate", CriterionNotEvaluable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := createTestProfile()
			profile.AcademicLevel = tt.profileLevel
			outcome := evaluateAcademicLevel(profile, &models.OpportunityCriteria{RequiredLevel: tt.requiredLevel})
			assert.Equal(t, tt.expectedStatus, outcome.Status)
			if tt.expectedStatus == CriterionMet {
				assert.Equal(t, 20.0, outcome.Achieved)
			}
		})
	}
}

func TestEvaluateFieldOfStudy(t *testing.T) {
	tests := []struct {
		name           string
		profileField   string
		eligibleFields []string
		expectedStatus CriterionStatus
	}{
		{"all fields wildcard", "Computer Science", []string{"All Fields"}, CriterionMet},
		{"direct substring", "Computer Science", []string{"Science"}, CriterionMet},
		{"reverse substring", "Science", []string{"Computer Science"}, CriterionMet},
		{"stem umbrella", "Computer Science", []string{"STEM"}, CriterionMet},
		{"no match", "Fine Arts", []string{"Engineering", "Medicine"}, CriterionNotMet},
		{"no requirement", "Computer Science", nil, CriterionNotEvaluable},
		{"unknown profile field", "", []string{"Engineering"}, CriterionNotEvaluable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := createTestProfile()
			profile.FieldOfStudy = tt.profileField
			outcome := evaluateFieldOfStudy(profile, &models.OpportunityCriteria{EligibleFields: tt.eligibleFields})
			assert.Equal(t, tt.expectedStatus, outcome.Status)
		})
	}
}

func TestEvaluateGPA_NormalizesToRequirementScale(t *testing.T) {
	// 6.2 on a 7.0 scale is 3.54 on a 4.0 scale, comfortably above 2.86.
	profile := createTestProfile()
	outcome := evaluateGPA(profile, &models.OpportunityCriteria{MinGPA: floatPtr(2.86)})

	assert.Equal(t, CriterionMet, outcome.Status)
	assert.Equal(t, 20.0, outcome.Achieved)
	assert.Contains(t, outcome.Reason, "3.54")
	assert.Contains(t, outcome.Reason, "2.86")
}

func TestEvaluateGPA(t *testing.T) {
	tests := []struct {
		name           string
		gpa            *float64
		gpaScale       string
		minGPA         *float64
		reqScale       string
		expectedStatus CriterionStatus
	}{
		{"meets on same scale", floatPtr(3.5), "4.0", floatPtr(3.0), "", CriterionMet},
		{"below requirement", floatPtr(4.0), "7.0", floatPtr(3.0), "", CriterionNotMet},
		{"percentage scale", floatPtr(85), "100", floatPtr(3.0), "", CriterionMet},
		{"requirement on 7.0 scale", floatPtr(6.2), "7.0", floatPtr(5.0), "7.0", CriterionMet},
		{"gpa absent", nil, "", floatPtr(3.0), "", CriterionNotEvaluable},
		{"no minimum", floatPtr(3.5), "4.0", nil, "", CriterionNotEvaluable},
		{"unsupported scale", floatPtr(3.5), "9.0", floatPtr(3.0), "", CriterionNotEvaluable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := createTestProfile()
			profile.GPA = tt.gpa
			profile.GPAScale = tt.gpaScale
			outcome := evaluateGPA(profile, &models.OpportunityCriteria{MinGPA: tt.minGPA, GPAScale: tt.reqScale})
			assert.Equal(t, tt.expectedStatus, outcome.Status)
		})
	}
}

func TestEvaluateGPA_HigherGPANeverRegresses(t *testing.T) {
	// Once a GPA matches at a given scale, any higher GPA on that scale
	// must keep matching.
	criteria := &models.OpportunityCriteria{MinGPA: floatPtr(2.86)}

	profile := createTestProfile()
	profile.GPAScale = "7.0"
	profile.GPA = floatPtr(5.1)
	require.Equal(t, CriterionMet, evaluateGPA(profile, criteria).Status)

	for _, gpa := range []float64{5.2, 6.0, 6.7, 7.0} {
		profile.GPA = floatPtr(gpa)
		assert.Equal(t, CriterionMet, evaluateGPA(profile, criteria).Status, "gpa %.1f", gpa)
	}
}

func TestEvaluateTestScore(t *testing.T) {
	tests := []struct {
		name           string
		ielts          *float64
		toefl          *float64
		minIELTS       *float64
		minTOEFL       *float64
		expectedStatus CriterionStatus
		reasonContains string
	}{
		{"ielts meets", floatPtr(7.5), nil, floatPtr(6.5), nil, CriterionMet, "IELTS"},
		{"ielts below", floatPtr(6.0), nil, floatPtr(6.5), nil, CriterionNotMet, "IELTS"},
		{"ielts takes precedence over toefl", floatPtr(7.5), floatPtr(10), floatPtr(6.5), floatPtr(90), CriterionMet, "IELTS"},
		{"toefl fallback when no ielts score", nil, floatPtr(95), floatPtr(6.5), floatPtr(90), CriterionMet, "TOEFL"},
		{"toefl below", nil, floatPtr(80), nil, floatPtr(90), CriterionNotMet, "TOEFL"},
		{"required but no scores", nil, nil, floatPtr(6.5), nil, CriterionNotMet, "not provided"},
		{"no test requirement", floatPtr(7.5), nil, nil, nil, CriterionNotEvaluable, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := createTestProfile()
			profile.IELTSScore = tt.ielts
			profile.TOEFLScore = tt.toefl
			outcome := evaluateTestScore(profile, &models.OpportunityCriteria{MinIELTS: tt.minIELTS, MinTOEFL: tt.minTOEFL})
			assert.Equal(t, tt.expectedStatus, outcome.Status)
			if tt.reasonContains != "" {
				assert.Contains(t, outcome.Reason, tt.reasonContains)
			}
		})
	}
}

func TestEvaluateAge(t *testing.T) {
	tests := []struct {
		name           string
		age            *int
		maxAge         *int
		expectedStatus CriterionStatus
	}{
		{"under limit", intPtr(22), intPtr(30), CriterionMet},
		{"at limit", intPtr(30), intPtr(30), CriterionMet},
		{"over limit", intPtr(35), intPtr(30), CriterionNotMet},
		{"age unknown", nil, intPtr(30), CriterionNotEvaluable},
		{"no limit", intPtr(22), nil, CriterionNotEvaluable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := createTestProfile()
			profile.Age = tt.age
			outcome := evaluateAge(profile, &models.OpportunityCriteria{MaxAge: tt.maxAge})
			assert.Equal(t, tt.expectedStatus, outcome.Status)
		})
	}
}

func TestEvaluateWorkExperience_MissingTreatedAsZero(t *testing.T) {
	profile := createTestProfile()
	profile.WorkExperienceYears = nil

	outcome := evaluateWorkExperience(profile, &models.OpportunityCriteria{MinWorkExperienceYears: floatPtr(2)})

	// Unlike GPA, a missing value is a valid "no experience" state.
	assert.Equal(t, CriterionNotMet, outcome.Status)
	assert.Contains(t, outcome.Reason, "you have 0")
}

func TestEvaluateWorkExperience(t *testing.T) {
	tests := []struct {
		name           string
		years          *float64
		minYears       *float64
		expectedStatus CriterionStatus
	}{
		{"meets requirement", floatPtr(3), floatPtr(2), CriterionMet},
		{"exactly at requirement", floatPtr(2), floatPtr(2), CriterionMet},
		{"below requirement", floatPtr(1), floatPtr(2), CriterionNotMet},
		{"no requirement", floatPtr(3), nil, CriterionNotEvaluable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := createTestProfile()
			profile.WorkExperienceYears = tt.years
			outcome := evaluateWorkExperience(profile, &models.OpportunityCriteria{MinWorkExperienceYears: tt.minYears})
			assert.Equal(t, tt.expectedStatus, outcome.Status)
		})
	}
}

func TestEvaluateCountry(t *testing.T) {
	tests := []struct {
		name           string
		country        string
		eligible       []string
		expectedStatus CriterionStatus
	}{
		{"listed country", "Australia", []string{"Australia", "New Zealand"}, CriterionMet},
		{"case-insensitive", "australia", []string{"Australia"}, CriterionMet},
		{"not listed", "Canada", []string{"Australia"}, CriterionNotMet},
		{"country unset", "", []string{"International"}, CriterionNotEvaluable},
		{"no restriction", "Australia", nil, CriterionNotEvaluable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := createTestProfile()
			profile.CountryOfOrigin = tt.country
			outcome := evaluateCountry(profile, &models.OpportunityCriteria{EligibleCountries: tt.eligible})
			assert.Equal(t, tt.expectedStatus, outcome.Status)
		})
	}
}

func TestEvaluateDemographic(t *testing.T) {
	tests := []struct {
		name             string
		demographics     models.Demographics
		criteria         models.OpportunityCriteria
		expectedStatus   CriterionStatus
		expectedAchieved float64
	}{
		{
			name:             "gender target matched",
			demographics:     models.Demographics{Gender: "Female"},
			criteria:         models.OpportunityCriteria{TargetGender: "Female"},
			expectedStatus:   CriterionMet,
			expectedAchieved: 10,
		},
		{
			name:             "all flags matched",
			demographics:     models.Demographics{IndigenousStatus: true, FirstGeneration: true},
			criteria:         models.OpportunityCriteria{TargetIndigenous: true, TargetFirstGeneration: true},
			expectedStatus:   CriterionMet,
			expectedAchieved: 10,
		},
		{
			name:             "half the targets matched",
			demographics:     models.Demographics{FirstGeneration: true},
			criteria:         models.OpportunityCriteria{TargetIndigenous: true, TargetFirstGeneration: true},
			expectedStatus:   CriterionNotMet,
			expectedAchieved: 5, // equal share per targeted group
		},
		{
			name:             "no targets",
			demographics:     models.Demographics{FirstGeneration: true},
			criteria:         models.OpportunityCriteria{},
			expectedStatus:   CriterionNotEvaluable,
			expectedAchieved: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := createTestProfile()
			profile.Demographics = tt.demographics
			outcome := evaluateDemographic(profile, &tt.criteria)
			assert.Equal(t, tt.expectedStatus, outcome.Status)
			assert.Equal(t, tt.expectedAchieved, outcome.Achieved)
		})
	}
}
