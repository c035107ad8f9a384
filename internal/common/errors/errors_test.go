// internal/common/errors/errors_test.go
package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToBPMNError_RetryableTechnical(t *testing.T) {
	stdErr := NewDatabaseConnectionFailedError(fmt.Errorf("dial tcp: connection refused"))

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "DATABASE_CONNECTION_FAILED", bpmnErr.Code)
	assert.True(t, bpmnErr.Retryable)
	assert.Equal(t, 3, bpmnErr.Retries)
	assert.Equal(t, "DATABASE_CONNECTION_FAILED", bpmnErr.ErrorVariables["originalErrorCode"])
}

func TestConvertToBPMNError_BusinessErrorNoRetries(t *testing.T) {
	stdErr := NewInvalidQueryTypeError("random_by_color")

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "INVALID_QUERY_TYPE", bpmnErr.Code)
	assert.False(t, bpmnErr.Retryable)
	assert.Equal(t, 0, bpmnErr.Retries)
}

func TestConvertToBPMNError_TimeoutPartialRetry(t *testing.T) {
	cases := []struct {
		stdErr  *StandardError
		code    string
		retries int
	}{
		{NewQueryTimeoutError("opportunity_by_tag"), "QUERY_TIMEOUT", 2},
		{NewSearchTimeoutError("full_text"), "SEARCH_TIMEOUT", 2},
		{NewPathwayAPITimeoutError(), "PATHWAY_API_TIMEOUT", 2},
		{NewNarrativeTimeoutError(), "NARRATIVE_TIMEOUT", 1},
	}

	for _, tc := range cases {
		bpmnErr := ConvertToBPMNError(tc.stdErr)
		assert.Equal(t, tc.code, bpmnErr.Code)
		assert.Equal(t, tc.retries, bpmnErr.Retries)
	}
}

func TestConvertToBPMNError_CustomCodePassthrough(t *testing.T) {
	stdErr := &StandardError{Code: "SOMETHING_NEW", Message: "custom", Retryable: false}

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "SOMETHING_NEW", bpmnErr.Code)
}

func TestToErrorVariables_MergesCustomVariables(t *testing.T) {
	bpmnErr := &BPMNError{
		Code:    "PATHWAY_SYNC_FAILED",
		Message: "sync failed",
		ErrorVariables: map[string]interface{}{
			"programsProcessed": 12,
		},
	}

	vars := bpmnErr.ToErrorVariables()

	assert.Equal(t, "PATHWAY_SYNC_FAILED", vars["errorCode"])
	assert.Equal(t, "sync failed", vars["errorMessage"])
	assert.Equal(t, 12, vars["programsProcessed"])
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeNotificationSendFailed))
	assert.True(t, IsRetryableErrorCode(ErrCodePathwaySyncFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeDuplicateProfile))
	assert.False(t, IsRetryableErrorCode(ErrCodeRankingFailed))
}

func TestGetErrorCategory(t *testing.T) {
	cases := map[ErrorCode]string{
		ErrCodeProfileValidationFailed: "PROFILE",
		ErrCodeQueryTimeout:            "DATABASE",
		ErrCodeSearchTimeout:           "SEARCH",
		ErrCodePathwaySyncFailed:       "CATALOG",
		ErrCodeScoringFailed:           "SCORING",
		ErrCodeNotificationSendFailed:  "NOTIFICATION",
		ErrCodeNarrativeTimeout:        "AI",
		ErrCodeInvalidQueryType:        "DATABASE",
		ErrorCode("INVALID_INPUT"):     "VALIDATION",
	}

	for code, want := range cases {
		assert.Equal(t, want, GetErrorCategory(code), "code %s", code)
	}
}

func TestStandardError_ErrorString(t *testing.T) {
	err := NewDuplicateProfileError("applicant-123")

	assert.Contains(t, err.Error(), "DUPLICATE_PROFILE")
	assert.Contains(t, err.Error(), "already exists")
}
