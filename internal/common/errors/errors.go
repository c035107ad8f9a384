// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes. The BPMN error
// codes thrown to the workflow engine use the same strings.
type ErrorCode string

const (
	ErrCodeProfileValidationFailed ErrorCode = "PROFILE_VALIDATION_FAILED"
	ErrCodeInvalidProfile          ErrorCode = "INVALID_PROFILE"
	ErrCodeDuplicateProfile        ErrorCode = "DUPLICATE_PROFILE"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeInvalidQueryType         ErrorCode = "INVALID_QUERY_TYPE"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"

	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout                 ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound                 ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeCatalogUnavailable   ErrorCode = "CATALOG_UNAVAILABLE"
	ErrCodeMalformedOpportunity ErrorCode = "MALFORMED_OPPORTUNITY"
	ErrCodeScoringFailed        ErrorCode = "SCORING_FAILED"
	ErrCodeRankingFailed        ErrorCode = "RANKING_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodePathwaySyncFailed  ErrorCode = "PATHWAY_SYNC_FAILED"
	ErrCodePathwayAPITimeout  ErrorCode = "PATHWAY_API_TIMEOUT"
	ErrCodeNarrativeTimeout   ErrorCode = "NARRATIVE_TIMEOUT"
	ErrCodeNarrativeGenFailed ErrorCode = "NARRATIVE_GENERATION_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

func newStandardError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// Profile errors, all terminal.

func NewProfileValidationFailedError(details string) *StandardError {
	return newStandardError(ErrCodeProfileValidationFailed, "Applicant profile validation failed", details, false)
}

func NewInvalidProfileError(details string) *StandardError {
	return newStandardError(ErrCodeInvalidProfile, "Applicant profile is malformed", details, false)
}

func NewDuplicateProfileError(profileID string) *StandardError {
	return newStandardError(ErrCodeDuplicateProfile, "Applicant profile already exists",
		fmt.Sprintf("profileId: %s", profileID), false)
}

// Postgres errors. Connection, execution, and insert failures are
// retryable; an unsupported query type is not.

func NewDatabaseConnectionFailedError(err error) *StandardError {
	return newStandardError(ErrCodeDatabaseConnectionFailed, "Database connection error", err.Error(), true)
}

func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newStandardError(ErrCodeQueryExecutionFailed, "Database query execution error",
		fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true)
}

func NewQueryTimeoutError(queryType string) *StandardError {
	return newStandardError(ErrCodeQueryTimeout, "Database query timeout",
		fmt.Sprintf("queryType: %s", queryType), true)
}

func NewInvalidQueryTypeError(queryType string) *StandardError {
	return newStandardError(ErrCodeInvalidQueryType, "Unsupported query type",
		fmt.Sprintf("queryType: %s", queryType), false)
}

func NewDatabaseInsertFailedError(err error) *StandardError {
	return newStandardError(ErrCodeDatabaseInsertFailed, "Database insert operation failed", err.Error(), true)
}

// Elasticsearch errors.

func NewElasticsearchConnectionFailedError(err error) *StandardError {
	return newStandardError(ErrCodeElasticsearchConnectionFailed, "Elasticsearch connection error", err.Error(), true)
}

func NewSearchQueryFailedError(queryType string, err error) *StandardError {
	return newStandardError(ErrCodeSearchQueryFailed, "Elasticsearch query error",
		fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true)
}

func NewSearchTimeoutError(queryType string) *StandardError {
	return newStandardError(ErrCodeSearchTimeout, "Elasticsearch query timeout",
		fmt.Sprintf("queryType: %s", queryType), true)
}

func NewIndexNotFoundError(indexName string) *StandardError {
	return newStandardError(ErrCodeIndexNotFound, "Elasticsearch index not found",
		fmt.Sprintf("indexName: %s", indexName), false)
}

// Catalog and scoring errors.

func NewCatalogUnavailableError(err error) *StandardError {
	return newStandardError(ErrCodeCatalogUnavailable, "Opportunity catalog could not be loaded", err.Error(), true)
}

// NewMalformedOpportunityError marks a bad catalog entry. Callers normally
// log and skip instead of failing the job.
func NewMalformedOpportunityError(opportunityID, details string) *StandardError {
	return newStandardError(ErrCodeMalformedOpportunity, "Opportunity record is malformed",
		fmt.Sprintf("opportunityId: %s, %s", opportunityID, details), false)
}

func NewScoringFailedError(details string) *StandardError {
	return newStandardError(ErrCodeScoringFailed, "Eligibility scoring failed", details, false)
}

func NewRankingFailedError(details string) *StandardError {
	return newStandardError(ErrCodeRankingFailed, "Eligibility result ranking failed", details, false)
}

// Delivery and integration errors.

func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return newStandardError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()), true)
}

func NewPathwaySyncFailedError(err error) *StandardError {
	return newStandardError(ErrCodePathwaySyncFailed, "Pathway program sync failed", err.Error(), true)
}

func NewPathwayAPITimeoutError() *StandardError {
	return newStandardError(ErrCodePathwayAPITimeout, "Pathway API timeout",
		"API call exceeded timeout threshold", true)
}

func NewNarrativeTimeoutError() *StandardError {
	return newStandardError(ErrCodeNarrativeTimeout, "Improvement narrative generation timeout",
		"LLM call exceeded timeout threshold", true)
}

func NewNarrativeGenerationFailedError(err error) *StandardError {
	return newStandardError(ErrCodeNarrativeGenFailed, "Improvement narrative generation error", err.Error(), true)
}

// Generic constructors used by the broker error mapping.

func NewBusinessRuleError(message, details string) *StandardError {
	return newStandardError("BUSINESS_RULE_VIOLATION", message, details, false)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newStandardError("EXTERNAL_SERVICE_ERROR",
		fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newStandardError("TIMEOUT_ERROR",
		fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewAuthenticationError(details string) *StandardError {
	return newStandardError("AUTHENTICATION_ERROR", "Authentication or authorization failure", details, false)
}

func NewResourceNotFoundError(service, details string) *StandardError {
	return newStandardError("RESOURCE_NOT_FOUND",
		fmt.Sprintf("Resource not found in %s", service), details, false)
}

// GetRetryCount returns the recommended retry count per error class.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeCatalogUnavailable,
		ErrCodeNotificationSendFailed,
		ErrCodePathwaySyncFailed,
		ErrCodeNarrativeGenFailed:
		return 3 // Retryable technical errors

	case ErrCodeQueryTimeout,
		ErrCodeSearchTimeout,
		ErrCodePathwayAPITimeout:
		return 2 // Partial retry for timeouts

	case ErrCodeNarrativeTimeout:
		return 1 // As per BPMN boundary event

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
// The BPMN code is the internal code string; non-retryable errors carry
// zero retries regardless of class.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "PROFILE"):
		return "PROFILE"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "ELASTICSEARCH") || strings.Contains(codeStr, "SEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "CATALOG") || strings.Contains(codeStr, "OPPORTUNITY") || strings.Contains(codeStr, "PATHWAY"):
		return "CATALOG"
	case strings.Contains(codeStr, "SCORING") || strings.Contains(codeStr, "RANKING"):
		return "SCORING"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "NARRATIVE"):
		return "AI"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
