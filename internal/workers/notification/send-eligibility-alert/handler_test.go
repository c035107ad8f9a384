// internal/workers/notification/send-eligibility-alert/handler_test.go
package sendeligibilityalert

import (
	"context"
	"testing"
	"time"

	"pathway-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, from, to, subject, body string) (string, error)
}

func (m *MockSESService) SendEmail(ctx context.Context, from, to, subject, body string) (string, error) {
	return m.SendEmailFunc(ctx, from, to, subject, body)
}

type MockSNSService struct {
	PublishSMSFunc func(ctx context.Context, phoneNumber, message string) (string, error)
}

func (m *MockSNSService) PublishSMS(ctx context.Context, phoneNumber, message string) (string, error) {
	return m.PublishSMSFunc(ctx, phoneNumber, message)
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		EmailEnabled:       true,
		SMSEnabled:         true,
		FromEmail:          "noreply@pathway-edu.com",
		AWSRegion:          "ap-southeast-2",
		HighValueThreshold: 20000,
		Timeout:            30 * time.Second,
	}
}

func createTestInput(notificationType string) *Input {
	return &Input{
		RecipientID:      "applicant-001",
		RecipientType:    RecipientTypeApplicant,
		NotificationType: notificationType,
		ApplicantID:      "applicant-001",
		PotentialValue:   15000,
		Metadata: map[string]interface{}{
			"topMatch": "Women in STEM Scholarship",
		},
	}
}

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Notifications(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		emailEnabled   bool
		smsEnabled     bool
		potentialValue float64
		expectSMS      bool
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:           "email and SMS for high value match",
			input:          createTestInput(TypeEligibilityResults),
			emailEnabled:   true,
			smsEnabled:     true,
			potentialValue: 25000,
			expectSMS:      true,
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, StatusSent, output.Status)
				assert.NotEmpty(t, output.NotificationID)
				assert.NotEmpty(t, output.SentAt)
			},
		},
		{
			name:           "email only below threshold",
			input:          createTestInput(TypeEligibilityResults),
			emailEnabled:   true,
			smsEnabled:     true,
			potentialValue: 5000,
			expectSMS:      false,
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, StatusSent, output.Status)
			},
		},
		{
			name:           "no SMS below threshold when email disabled",
			input:          createTestInput(TypeDeadlineReminder),
			emailEnabled:   false,
			smsEnabled:     true,
			potentialValue: 5000,
			expectSMS:      false,
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, StatusDisabled, output.Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(`SELECT email, phone FROM applicant_profiles WHERE id = \$1`).
				WithArgs("applicant-001").
				WillReturnRows(sqlmock.NewRows([]string{"email", "phone"}).
					AddRow("student@example.edu", "+61412345678"))

			smsCalled := false
			mockSES := &MockSESService{
				SendEmailFunc: func(ctx context.Context, from, to, subject, body string) (string, error) {
					assert.Equal(t, "student@example.edu", to)
					assert.Equal(t, "noreply@pathway-edu.com", from)
					assert.NotEmpty(t, subject)
					return "msg-ses-001", nil
				},
			}
			mockSNS := &MockSNSService{
				PublishSMSFunc: func(ctx context.Context, phoneNumber, message string) (string, error) {
					smsCalled = true
					assert.Equal(t, "+61412345678", phoneNumber)
					return "msg-sns-001", nil
				},
			}

			config := createTestConfig()
			config.EmailEnabled = tt.emailEnabled
			config.SMSEnabled = tt.smsEnabled

			handler := &Handler{
				config:      config,
				db:          db,
				logger:      newTestLogger(t),
				sesClient:   mockSES,
				snsClient:   mockSNS,
				templateMap: loadTemplates(),
			}

			tt.input.PotentialValue = tt.potentialValue
			output, err := handler.Execute(context.Background(), tt.input)

			assert.NoError(t, err)
			assert.NotNil(t, output)
			assert.Equal(t, tt.expectSMS, smsCalled)

			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHandler_Execute_UnknownRecipientDisablesQuietly(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT email, phone FROM applicant_profiles WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnError(context.DeadlineExceeded)

	handler := &Handler{
		config:      createTestConfig(),
		db:          db,
		logger:      newTestLogger(t),
		templateMap: loadTemplates(),
	}

	input := createTestInput(TypeEligibilityResults)
	input.RecipientID = "ghost"

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, StatusDisabled, output.Status)
}

func TestHandler_Execute_UnknownTemplateFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT email, phone FROM applicant_profiles WHERE id = \$1`).
		WithArgs("applicant-001").
		WillReturnRows(sqlmock.NewRows([]string{"email", "phone"}).
			AddRow("student@example.edu", ""))

	handler := &Handler{
		config:      createTestConfig(),
		db:          db,
		logger:      newTestLogger(t),
		templateMap: loadTemplates(),
	}

	input := createTestInput("carrier_pigeon")

	_, err = handler.Execute(context.Background(), input)

	assert.Error(t, err)
}

func TestRenderTemplate_RemovesUnknownPlaceholders(t *testing.T) {
	result := renderTemplate("Hello {{name}}, {{missing}} results ready.", map[string]interface{}{
		"name": "Priya",
	})

	assert.Equal(t, "Hello Priya,  results ready.", result)
}
