// internal/workers/eligibility/check-eligibility/handler.go
package checkeligibility

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/common/metrics"
	"pathway-workers/internal/eligibility"
	"pathway-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "check-eligibility"

	profileCacheKeyPrefix = "applicant:profile:"
)

var (
	ErrProfileNotFound    = errors.New("PROFILE_NOT_FOUND")
	ErrCatalogUnavailable = errors.New("CATALOG_UNAVAILABLE")
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	engine *eligibility.Engine
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, rdb *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  rdb,
		engine: eligibility.NewEngine(log),
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, "PARSE_ERROR").Inc()
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		errorCode := "ELIGIBILITY_CHECK_FAILED"
		if errors.Is(err, ErrProfileNotFound) {
			errorCode = "PROFILE_NOT_FOUND"
		} else if errors.Is(err, ErrCatalogUnavailable) {
			errorCode = "CATALOG_UNAVAILABLE"
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile := input.Profile
	if profile == nil {
		if input.ApplicantID == "" {
			return nil, fmt.Errorf("%w: neither profile nor applicantId provided", ErrProfileNotFound)
		}
		var err error
		profile, err = h.getProfile(ctx, input.ApplicantID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProfileNotFound, err)
		}
	}

	catalog := input.Opportunities
	if catalog == nil {
		var err error
		catalog, err = h.loadCatalog(ctx, input.CatalogTag)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}
	}

	report := h.engine.CheckProfile(profile, catalog)

	metrics.EligibilityChecks.Inc()
	metrics.OpportunitiesEvaluated.Add(float64(len(report.Results)))
	for _, result := range report.Results {
		metrics.EligibilityScores.Observe(result.EligibilityScore)
	}

	h.logger.Info("eligibility check complete", map[string]interface{}{
		"applicantId":    input.ApplicantID,
		"totalChecked":   report.Summary.TotalChecked,
		"highlyEligible": report.Summary.HighlyEligible,
		"eligible":       report.Summary.Eligible,
		"potentialValue": report.Summary.PotentialValue,
	})

	return &Output{
		Results: report.Results,
		Summary: report.Summary,
	}, nil
}

// getProfile reads the applicant profile from cache, falling back to
// PostgreSQL and refreshing the cache on a miss.
func (h *Handler) getProfile(ctx context.Context, applicantID string) (*models.ApplicantProfile, error) {
	cacheKey := profileCacheKeyPrefix + applicantID
	if val, err := h.redis.Get(ctx, cacheKey).Result(); err == nil {
		var profile models.ApplicantProfile
		if err := json.Unmarshal([]byte(val), &profile); err == nil {
			return &profile, nil
		}
	}

	row := h.db.QueryRowContext(ctx, `
		SELECT id, academic_level, field_of_study, gpa, gpa_scale,
		       ielts_score, toefl_score, age, work_experience_years,
		       country_of_origin, demographics
		FROM applicant_profiles WHERE id = $1`, applicantID)

	var profile models.ApplicantProfile
	var demographics []byte
	err := row.Scan(
		&profile.ID,
		&profile.AcademicLevel,
		&profile.FieldOfStudy,
		&profile.GPA,
		&profile.GPAScale,
		&profile.IELTSScore,
		&profile.TOEFLScore,
		&profile.Age,
		&profile.WorkExperienceYears,
		&profile.CountryOfOrigin,
		&demographics,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(demographics, &profile.Demographics); err != nil {
		profile.Demographics = models.Demographics{}
	}

	data, _ := json.Marshal(profile)
	h.redis.Set(ctx, cacheKey, data, h.config.ProfileCacheTTL)

	return &profile, nil
}

// loadCatalog fetches active opportunities, optionally filtered by tag.
// Rows whose criteria blob cannot be decoded are passed through with empty
// criteria; the engine's malformed-record check handles the rest.
func (h *Handler) loadCatalog(ctx context.Context, tag string) ([]models.OpportunityRecord, error) {
	query := `
		SELECT id, name, provider, amount, currency, deadline, tags, criteria
		FROM opportunities
		WHERE active = true`
	args := []interface{}{}
	if tag != "" {
		query += ` AND tags ? $1`
		args = append(args, tag)
	}
	query += fmt.Sprintf(` ORDER BY amount DESC LIMIT %d`, h.config.CatalogLimit)

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var catalog []models.OpportunityRecord
	for rows.Next() {
		var opp models.OpportunityRecord
		var tags, criteria []byte
		if err := rows.Scan(&opp.ID, &opp.Name, &opp.Provider, &opp.Amount,
			&opp.Currency, &opp.Deadline, &tags, &criteria); err != nil {
			h.logger.Warn("failed to scan opportunity row", map[string]interface{}{"error": err})
			continue
		}
		if err := json.Unmarshal(tags, &opp.Tags); err != nil {
			opp.Tags = nil
		}
		if err := json.Unmarshal(criteria, &opp.Criteria); err != nil {
			h.logger.Warn("undecodable criteria for opportunity", map[string]interface{}{
				"opportunityId": opp.ID,
				"error":         err,
			})
			opp.Criteria = models.OpportunityCriteria{}
		}
		catalog = append(catalog, opp)
	}

	return catalog, rows.Err()
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
