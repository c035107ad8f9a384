// internal/workers/profile/validate-profile-data/handler.go
package validateprofiledata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const (
	TaskType = "validate-profile-data"
)

var (
	ErrProfileValidationFailed = errors.New("PROFILE_VALIDATION_FAILED")
)

type Handler struct {
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), LoadConfig().Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "PROFILE_VALIDATION_FAILED", err.Error())
		return
	}

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.ProfileData == nil {
		return nil, fmt.Errorf("%w: profileData is required", ErrProfileValidationFailed)
	}

	validationErrors := h.validateSchema(input.ProfileData)

	validated := make(map[string]interface{}, len(input.ProfileData))
	for k, v := range input.ProfileData {
		validated[k] = v
	}
	validationErrors = append(validationErrors, h.validateFields(validated)...)

	isValid := len(validationErrors) == 0
	h.logger.Info("validation completed", map[string]interface{}{
		"isValid":    isValid,
		"errorCount": len(validationErrors),
	})

	if !isValid {
		return &Output{
			IsValid:          false,
			ValidatedData:    nil,
			ValidationErrors: validationErrors,
		}, nil
	}

	return &Output{
		IsValid:          true,
		ValidatedData:    validated,
		ValidationErrors: []ValidationError{},
	}, nil
}

func (h *Handler) validateSchema(data map[string]interface{}) []ValidationError {
	schemaLoader := gojsonschema.NewStringLoader(profileSchema)
	documentLoader := gojsonschema.NewGoLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return []ValidationError{{
			Field:   "profileData",
			Code:    "SCHEMA_ERROR",
			Message: err.Error(),
		}}
	}

	var errs []ValidationError
	for _, desc := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   desc.Field(),
			Code:    "SCHEMA_VIOLATION",
			Message: desc.Description(),
		})
	}
	return errs
}

// validateFields runs the rules the schema cannot express and sanitizes
// string fields in place.
func (h *Handler) validateFields(data map[string]interface{}) []ValidationError {
	errs := []ValidationError{}

	scale := "7.0"
	if scaleRaw, ok := data["gpaScale"]; ok {
		scaleStr, isStr := scaleRaw.(string)
		if !isStr {
			errs = append(errs, ValidationError{
				Field:   "gpaScale",
				Code:    "INVALID_TYPE",
				Message: "gpaScale must be a string",
			})
		} else if _, supported := gpaScaleBounds[scaleStr]; !supported {
			errs = append(errs, ValidationError{
				Field:   "gpaScale",
				Code:    "UNSUPPORTED_SCALE",
				Message: fmt.Sprintf("gpaScale %q is not supported (4.0, 5.0, 7.0, 10.0, 100)", scaleStr),
			})
		} else {
			scale = scaleStr
		}
	}

	if gpaRaw, ok := data["gpa"]; ok {
		if gpa, isNum := gpaRaw.(float64); isNum {
			if bound, supported := gpaScaleBounds[scale]; supported && gpa > bound {
				errs = append(errs, ValidationError{
					Field:   "gpa",
					Code:    "OUT_OF_RANGE",
					Message: fmt.Sprintf("GPA %.2f exceeds the %s scale maximum", gpa, scale),
				})
			}
		}
	}

	if emailRaw, ok := data["email"]; ok {
		if emailStr, isStr := emailRaw.(string); isStr && emailStr != "" {
			emailStr = strings.TrimSpace(emailStr)
			if !validation.ValidateEmail(emailStr) {
				errs = append(errs, ValidationError{
					Field:   "email",
					Code:    "INVALID_FORMAT",
					Message: "Invalid email format",
				})
			} else {
				data["email"] = emailStr
			}
		}
	}

	if phoneRaw, ok := data["phone"]; ok {
		if phoneStr, isStr := phoneRaw.(string); isStr && phoneStr != "" {
			phoneStr = regexp.MustCompile(`[^\d\+]`).ReplaceAllString(strings.TrimSpace(phoneStr), "")
			if phoneStr == "" || !phoneRegex.MatchString(phoneStr) {
				errs = append(errs, ValidationError{
					Field:   "phone",
					Code:    "INVALID_FORMAT",
					Message: "Invalid phone format (E.164 recommended)",
				})
			} else {
				data["phone"] = phoneStr
			}
		}
	}

	return errs
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
