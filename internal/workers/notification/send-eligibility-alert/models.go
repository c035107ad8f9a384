// internal/workers/notification/send-eligibility-alert/models.go
package sendeligibilityalert

type Input struct {
	RecipientID      string                 `json:"recipientId"`
	RecipientType    string                 `json:"recipientType"` // "applicant" or "counselor"
	NotificationType string                 `json:"notificationType"`
	ApplicantID      string                 `json:"applicantId,omitempty"`
	PotentialValue   float64                `json:"potentialValue,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "failed", "disabled"
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Notification types
const (
	TypeEligibilityResults = "eligibility_results"
	TypeDeadlineReminder   = "deadline_reminder"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Recipient types
const (
	RecipientTypeApplicant = "applicant"
	RecipientTypeCounselor = "counselor"
)
