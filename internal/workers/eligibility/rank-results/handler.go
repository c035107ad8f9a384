// internal/workers/eligibility/rank-results/handler.go
package rankresults

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/eligibility"
	"pathway-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "rank-results"
)

var (
	ErrNilInput = errors.New("input cannot be nil")
)

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
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
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "RANKING_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	start := time.Now()

	// Merge branches can deliver the same scholarship more than once.
	// Keep the entry with the highest score; on a tie keep the first seen.
	seen := make(map[string]int)
	deduped := make([]models.OpportunityEvaluation, 0, len(input.Results))
	for _, result := range input.Results {
		idx, exists := seen[result.ScholarshipID]
		if !exists {
			seen[result.ScholarshipID] = len(deduped)
			deduped = append(deduped, result)
			continue
		}
		if result.EligibilityScore > deduped[idx].EligibilityScore {
			deduped[idx] = result
		}
	}

	eligibility.Rank(deduped)

	maxItems := input.MaxItems
	if maxItems <= 0 || maxItems > h.config.MaxItems {
		maxItems = h.config.MaxItems
	}
	if len(deduped) > maxItems {
		deduped = deduped[:maxItems]
	}

	summary := eligibility.Summarize(deduped)

	h.logger.Info("ranking completed", map[string]interface{}{
		"inputCount":  len(input.Results),
		"outputCount": len(deduped),
		"durationMs":  time.Since(start).Milliseconds(),
	})

	return &Output{Results: deduped, Summary: summary}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
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
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
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
