// internal/models/applicant.go
package models

// ApplicantProfile carries everything the scoring engine knows about an
// applicant. Numeric fields are pointers so an absent value can be told
// apart from zero; absent fields make the related criteria non-evaluable.
type ApplicantProfile struct {
	ID                  string       `json:"id,omitempty"`
	AcademicLevel       string       `json:"academicLevel,omitempty"`
	FieldOfStudy        string       `json:"fieldOfStudy,omitempty"`
	GPA                 *float64     `json:"gpa,omitempty"`
	GPAScale            string       `json:"gpaScale,omitempty"` // defaults to "7.0"
	IELTSScore          *float64     `json:"ieltsScore,omitempty"`
	TOEFLScore          *float64     `json:"toeflScore,omitempty"`
	Age                 *int         `json:"age,omitempty"`
	WorkExperienceYears *float64     `json:"workExperienceYears,omitempty"`
	CountryOfOrigin     string       `json:"countryOfOrigin,omitempty"`
	Demographics        Demographics `json:"demographics,omitempty"`
	Email               string       `json:"email,omitempty"`
	Phone               string       `json:"phone,omitempty"`
	CreatedAt           string       `json:"createdAt,omitempty"`
	UpdatedAt           string       `json:"updatedAt,omitempty"`
}

// Demographics holds the self-declared flags used by demographic-targeted
// opportunities.
type Demographics struct {
	IndigenousStatus bool   `json:"indigenousStatus,omitempty"`
	FirstGeneration  bool   `json:"firstGeneration,omitempty"`
	DisabilityStatus bool   `json:"disabilityStatus,omitempty"`
	Gender           string `json:"gender,omitempty"`
}
