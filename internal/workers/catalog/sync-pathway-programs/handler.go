// internal/workers/catalog/sync-pathway-programs/handler.go
package syncpathwayprograms

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/common/pathways"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "sync-pathway-programs"
)

var (
	ErrPathwaySyncFailed = errors.New("PATHWAY_SYNC_FAILED")
	ErrPathwayAPITimeout = errors.New("PATHWAY_API_TIMEOUT")
)

// ProgramLister is the slice of the pathways client the sync needs.
type ProgramLister interface {
	ListPrograms(ctx context.Context, modifiedSince string, page int) ([]pathways.Program, bool, error)
}

type Handler struct {
	config   *Config
	db       *sql.DB
	pathways ProgramLister
	logger   logger.Logger
}

func NewHandler(config *Config, db *sql.DB, client ProgramLister, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		db:       db,
		pathways: client,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		errorCode := "PATHWAY_SYNC_FAILED"
		if errors.Is(err, ErrPathwayAPITimeout) {
			errorCode = "PATHWAY_API_TIMEOUT"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	maxPages := h.config.MaxPages
	if input.MaxPages > 0 && input.MaxPages < maxPages {
		maxPages = input.MaxPages
	}

	fetched := 0
	upserted := 0
	skipped := 0
	pages := 0

	for page := 1; page <= maxPages; page++ {
		programs, more, err := h.pathways.ListPrograms(ctx, input.ModifiedSince, page)
		if err != nil {
			if ctx.Err() == context.DeadlineExceeded {
				return nil, ErrPathwayAPITimeout
			}
			return nil, fmt.Errorf("%w: page %d: %v", ErrPathwaySyncFailed, page, err)
		}
		pages++
		fetched += len(programs)

		for _, program := range programs {
			if program.ID == "" || program.Name == "" || program.Amount < 0 {
				h.logger.Warn("skipping malformed program", map[string]interface{}{
					"programId": program.ID,
					"page":      page,
				})
				skipped++
				continue
			}
			if err := h.upsertProgram(ctx, program); err != nil {
				return nil, fmt.Errorf("%w: upsert %s: %v", ErrPathwaySyncFailed, program.ID, err)
			}
			upserted++
		}

		if !more {
			break
		}
	}

	syncedAt := time.Now().UTC().Format(time.RFC3339)
	h.logger.Info("pathway program sync completed", map[string]interface{}{
		"fetched":  fetched,
		"upserted": upserted,
		"skipped":  skipped,
		"pages":    pages,
	})

	return &Output{
		ProgramsFetched:  fetched,
		ProgramsUpserted: upserted,
		ProgramsSkipped:  skipped,
		PagesProcessed:   pages,
		SyncedAt:         syncedAt,
	}, nil
}

func (h *Handler) upsertProgram(ctx context.Context, program pathways.Program) error {
	tagsJSON, err := json.Marshal(program.Tags)
	if err != nil {
		return err
	}
	criteria := []byte(program.Criteria)
	if len(criteria) == 0 {
		criteria = []byte("{}")
	}
	now := time.Now().UTC().Format(time.RFC3339)

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO opportunities (
			id, name, provider, amount, currency, deadline,
			active, tags, criteria, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, true, $7, $8, $9, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			provider = EXCLUDED.provider,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			deadline = EXCLUDED.deadline,
			tags = EXCLUDED.tags,
			criteria = EXCLUDED.criteria,
			updated_at = EXCLUDED.updated_at`,
		program.ID,
		program.Name,
		program.Provider,
		program.Amount,
		program.Currency,
		program.Deadline,
		tagsJSON,
		criteria,
		now,
	)
	return err
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
