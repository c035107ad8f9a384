// internal/workers/profile/validate-profile-data/models.go
package validateprofiledata

import "regexp"

type Input struct {
	ProfileData map[string]interface{} `json:"profileData"`
}

type Output struct {
	IsValid          bool                   `json:"isValid"`
	ValidatedData    map[string]interface{} `json:"validatedData"`
	ValidationErrors []ValidationError      `json:"validationErrors"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// E.164 format: optional +, must start with 1-9, then 6-14 more digits.
// Applied after the raw value is stripped of spaces, dashes and parens.
var phoneRegex = regexp.MustCompile(`^[\+]?[1-9][\d]{6,14}$`)

// Per-scale GPA bounds used after schema validation passes.
var gpaScaleBounds = map[string]float64{
	"4.0":  4.0,
	"5.0":  5.0,
	"7.0":  7.0,
	"10.0": 10.0,
	"100":  100.0,
}

// Schema for the structural pass. Field-level rules (scale bounds, score
// ranges) run afterwards so the caller gets every violation at once.
const profileSchema = `{
	"type": "object",
	"required": ["id", "academicLevel", "fieldOfStudy"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"academicLevel": {"type": "string", "minLength": 1},
		"fieldOfStudy": {"type": "string", "minLength": 1},
		"gpa": {"type": "number", "minimum": 0},
		"gpaScale": {"type": "string"},
		"ieltsScore": {"type": "number", "minimum": 0, "maximum": 9},
		"toeflScore": {"type": "number", "minimum": 0, "maximum": 120},
		"age": {"type": "integer", "minimum": 10, "maximum": 120},
		"workExperienceYears": {"type": "number", "minimum": 0},
		"countryOfOrigin": {"type": "string"},
		"email": {"type": "string"},
		"phone": {"type": "string"},
		"demographics": {
			"type": "object",
			"properties": {
				"indigenousStatus": {"type": "boolean"},
				"firstGeneration": {"type": "boolean"},
				"disabilityStatus": {"type": "boolean"},
				"gender": {"type": "string"}
			}
		}
	}
}`
