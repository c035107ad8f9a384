// internal/workers/profile/save-profile-record/models.go
package saveprofilerecord

import "pathway-workers/internal/models"

type Input struct {
	Profile   *models.ApplicantProfile `json:"profile"`
	Overwrite bool                     `json:"overwrite,omitempty"`
}

type Output struct {
	ProfileID string `json:"profileId"`
	Created   bool   `json:"created"`
	SavedAt   string `json:"savedAt"` // ISO 8601
}
