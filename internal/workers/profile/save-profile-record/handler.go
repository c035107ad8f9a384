// internal/workers/profile/save-profile-record/handler.go
package saveprofilerecord

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pathway-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "save-profile-record"

	profileCacheKeyPrefix = "applicant:profile:"
)

var (
	ErrDatabaseInsertFailed = errors.New("DATABASE_INSERT_FAILED")
	ErrDuplicateProfile     = errors.New("DUPLICATE_PROFILE")
	ErrInvalidProfile       = errors.New("INVALID_PROFILE")
)

type Handler struct {
	config *Config
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, rdb *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
		redis:  rdb,
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
		errorCode := "UNKNOWN_ERROR"
		if errors.Is(err, ErrDatabaseInsertFailed) {
			errorCode = "DATABASE_INSERT_FAILED"
		} else if errors.Is(err, ErrDuplicateProfile) {
			errorCode = "DUPLICATE_PROFILE"
		} else if errors.Is(err, ErrInvalidProfile) {
			errorCode = "INVALID_PROFILE"
		}
		h.failJob(client, job, errorCode, err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Profile == nil {
		return nil, fmt.Errorf("%w: profile is required", ErrInvalidProfile)
	}
	profile := input.Profile
	if profile.AcademicLevel == "" || profile.FieldOfStudy == "" {
		return nil, fmt.Errorf("%w: academicLevel and fieldOfStudy are required", ErrInvalidProfile)
	}

	created := profile.ID == ""
	if created {
		profile.ID = uuid.New().String()
	} else {
		var exists bool
		err := h.db.QueryRowContext(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM applicant_profiles
				WHERE id = $1
			)`, profile.ID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrDatabaseInsertFailed, err)
		}
		if exists && !input.Overwrite {
			return nil, fmt.Errorf("%w: profile %s already exists", ErrDuplicateProfile, profile.ID)
		}
		created = !exists
	}

	savedAt := time.Now().UTC().Format(time.RFC3339)

	demographicsJSON, err := json.Marshal(profile.Demographics)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal demographics: %v", ErrDatabaseInsertFailed, err)
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO applicant_profiles (
			id, academic_level, field_of_study, gpa, gpa_scale,
			ielts_score, toefl_score, age, work_experience_years,
			country_of_origin, demographics, email, phone, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
		ON CONFLICT (id) DO UPDATE SET
			academic_level = EXCLUDED.academic_level,
			field_of_study = EXCLUDED.field_of_study,
			gpa = EXCLUDED.gpa,
			gpa_scale = EXCLUDED.gpa_scale,
			ielts_score = EXCLUDED.ielts_score,
			toefl_score = EXCLUDED.toefl_score,
			age = EXCLUDED.age,
			work_experience_years = EXCLUDED.work_experience_years,
			country_of_origin = EXCLUDED.country_of_origin,
			demographics = EXCLUDED.demographics,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			updated_at = EXCLUDED.updated_at`,
		profile.ID,
		profile.AcademicLevel,
		profile.FieldOfStudy,
		profile.GPA,
		profile.GPAScale,
		profile.IELTSScore,
		profile.TOEFLScore,
		profile.Age,
		profile.WorkExperienceYears,
		profile.CountryOfOrigin,
		demographicsJSON,
		profile.Email,
		profile.Phone,
		savedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrDatabaseInsertFailed, err)
	}

	// Stale cached profiles would feed old data into eligibility checks.
	if err := h.redis.Del(ctx, profileCacheKeyPrefix+profile.ID).Err(); err != nil {
		h.logger.Warn("profile cache invalidation failed", map[string]interface{}{
			"profileId": profile.ID,
			"error":     err,
		})
	}

	// Audit entry is non-critical, log and continue on failure.
	auditDetailsJSON, err := json.Marshal(map[string]interface{}{
		"academicLevel": profile.AcademicLevel,
		"fieldOfStudy":  profile.FieldOfStudy,
		"created":       created,
	})
	if err != nil {
		h.logger.Warn("failed to marshal audit log details", map[string]interface{}{
			"error": err,
		})
		auditDetailsJSON = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		"profile_saved",
		"applicant_profile",
		profile.ID,
		auditDetailsJSON,
		savedAt,
	)
	if err != nil {
		h.logger.Warn("audit log insert failed", map[string]interface{}{
			"error":     err,
			"profileId": profile.ID,
		})
	}

	h.logger.Info("applicant profile saved", map[string]interface{}{
		"profileId": profile.ID,
		"created":   created,
	})

	return &Output{
		ProfileID: profile.ID,
		Created:   created,
		SavedAt:   savedAt,
	}, nil
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
	} else {
		h.logger.Info("job completed successfully", map[string]interface{}{
			"jobKey": job.Key,
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
