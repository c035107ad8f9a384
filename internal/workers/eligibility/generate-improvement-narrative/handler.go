// internal/workers/eligibility/generate-improvement-narrative/handler.go
package generateimprovementnarrative

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-improvement-narrative"
)

var (
	ErrNarrativeTimeout          = errors.New("NARRATIVE_TIMEOUT")
	ErrNarrativeGenerationFailed = errors.New("NARRATIVE_GENERATION_FAILED")
)

type Handler struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		// Timeout comes from the job context, not the HTTP client.
		client: &http.Client{},
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
		h.failJob(client, job, fmt.Errorf("parse input: %w", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		retries := int32(0)
		if errors.Is(err, ErrNarrativeTimeout) || errors.Is(err, ErrNarrativeGenerationFailed) {
			retries = 1
		}
		h.failJob(client, job, err, retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	focusAreas := collectFocusAreas(input.Results)

	prompt := h.buildPrompt(input, focusAreas)
	requestBody := map[string]interface{}{
		"prompt": prompt,
		"context": map[string]interface{}{
			"applicantId": input.ApplicantID,
			"focusAreas":  focusAreas,
		},
		"max_tokens":  h.config.MaxTokens,
		"temperature": h.config.Temperature,
	}

	body, _ := json.Marshal(requestBody)

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt <= h.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ErrNarrativeTimeout
			}
		}

		req, err := http.NewRequestWithContext(ctx, "POST", h.config.GenAIBaseURL+"/api/ai/generate", bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNarrativeGenerationFailed, err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, lastErr = h.client.Do(req)
		if lastErr == nil {
			if resp.StatusCode == http.StatusOK {
				break
			}
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			resp = nil
		}

		if ctx.Err() != nil {
			return nil, ErrNarrativeTimeout
		}
	}

	if lastErr != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrNarrativeTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrNarrativeGenerationFailed, lastErr)
	}

	if resp == nil {
		return nil, fmt.Errorf("%w: no successful response after retries", ErrNarrativeGenerationFailed)
	}
	defer resp.Body.Close()

	var apiResponse struct {
		Text       string  `json:"text"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, fmt.Errorf("%w: decode error: %v", ErrNarrativeGenerationFailed, err)
	}

	// Fall back to the deterministic suggestions when the model returns nothing.
	if strings.TrimSpace(apiResponse.Text) == "" {
		apiResponse.Text = fallbackNarrative(focusAreas)
		apiResponse.Confidence = 0.1
	}

	if apiResponse.Confidence < 0.0 || apiResponse.Confidence > 1.0 {
		apiResponse.Confidence = 0.5
	}

	h.logger.Info("narrative generation completed", map[string]interface{}{
		"confidence":     apiResponse.Confidence,
		"focusAreaCount": len(focusAreas),
	})

	return &Output{
		Narrative:  apiResponse.Text,
		Confidence: apiResponse.Confidence,
		FocusAreas: focusAreas,
	}, nil
}

// collectFocusAreas gathers the distinct improvement suggestions across all
// evaluated opportunities, preserving first-seen order.
func collectFocusAreas(results []models.OpportunityEvaluation) []string {
	seen := make(map[string]bool)
	var areas []string
	for _, result := range results {
		for _, suggestion := range result.ImprovementSuggestions {
			if suggestion == "" || seen[suggestion] {
				continue
			}
			seen[suggestion] = true
			areas = append(areas, suggestion)
		}
	}
	return areas
}

func (h *Handler) buildPrompt(input *Input, focusAreas []string) string {
	var parts []string

	parts = append(parts, "You are a scholarship advisor. Write a short, encouraging note telling the applicant how to improve their scholarship eligibility, based ONLY on the provided data.")

	if input.Profile != nil {
		profileJSON, _ := json.MarshalIndent(input.Profile, "", "  ")
		parts = append(parts, "\nApplicant Profile:")
		parts = append(parts, string(profileJSON))
	}

	if len(input.Results) > 0 {
		parts = append(parts, "\nEligibility Results:")
		for _, result := range input.Results {
			parts = append(parts, fmt.Sprintf("- %s (%s, %.0f%%)",
				result.ScholarshipName, result.EligibilityStatus, result.EligibilityScore))
			for _, missing := range result.MissingCriteria {
				parts = append(parts, fmt.Sprintf("  missing: %s", missing))
			}
		}
	}

	if len(focusAreas) > 0 {
		parts = append(parts, "\nSuggested Focus Areas:")
		for _, area := range focusAreas {
			parts = append(parts, fmt.Sprintf("- %s", area))
		}
	}

	parts = append(parts, "\nInstructions:")
	parts = append(parts, "- Address the applicant directly")
	parts = append(parts, "- Order advice by likely impact")
	parts = append(parts, "- Keep it under 200 words")
	parts = append(parts, "- Return confidence score between 0.0 and 1.0")

	parts = append(parts, "\nNote:")

	return strings.Join(parts, "\n")
}

func fallbackNarrative(focusAreas []string) string {
	if len(focusAreas) == 0 {
		return "Your profile already meets the requirements we could evaluate. Keep your documents up to date and check back for new scholarships."
	}
	var b strings.Builder
	b.WriteString("Here is what would most improve your scholarship matches:\n")
	for _, area := range focusAreas {
		b.WriteString("- ")
		b.WriteString(area)
		b.WriteString("\n")
	}
	return b.String()
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error, retries int32) {
	errorCode := "UNKNOWN_ERROR"
	if errors.Is(err, ErrNarrativeTimeout) {
		errorCode = "NARRATIVE_TIMEOUT"
	} else if errors.Is(err, ErrNarrativeGenerationFailed) {
		errorCode = "NARRATIVE_GENERATION_FAILED"
	}

	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":    job.Key,
		"error":     err.Error(),
		"errorCode": errorCode,
		"retries":   retries,
	})

	_, _ = client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(retries).
		ErrorMessage(err.Error()).
		Send(context.Background())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
