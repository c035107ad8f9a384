// internal/workers/eligibility/check-eligibility/handler_test.go
package checkeligibility

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		ProfileCacheTTL: 10 * time.Minute,
		CatalogLimit:    100,
		Timeout:         5 * time.Second,
	}
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	return db, mock
}

func setupMockRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func floatPtr(v float64) *float64 { return &v }

func createTestProfile() *models.ApplicantProfile {
	return &models.ApplicantProfile{
		ID:            "applicant-001",
		AcademicLevel: "Undergraduate",
		FieldOfStudy:  "Computer Science",
		GPA:           floatPtr(6.2),
		GPAScale:      "7.0",
		Demographics:  models.Demographics{Gender: "Female"},
	}
}

func createTestOpportunities() []models.OpportunityRecord {
	return []models.OpportunityRecord{
		{
			ID:     "opp-001",
			Name:   "Women in STEM Scholarship",
			Amount: 10000,
			Criteria: models.OpportunityCriteria{
				RequiredLevel:  "Undergraduate",
				EligibleFields: []string{"STEM"},
				MinGPA:         floatPtr(2.86),
				TargetGender:   "Female",
			},
		},
		{
			ID:     "opp-002",
			Name:   "Regional Access Grant",
			Amount: 5000,
			Criteria: models.OpportunityCriteria{
				EligibleCountries: []string{"Canada"},
			},
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

func TestHandler_Execute_WithInlineProfileAndCatalog(t *testing.T) {
	db, _ := setupMockDB(t)
	defer db.Close()
	_, rdb := setupMockRedis(t)

	handler := NewHandler(createTestConfig(), db, rdb, newTestLogger(t))

	input := &Input{
		Profile:       createTestProfile(),
		Opportunities: createTestOpportunities(),
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	require.Len(t, output.Results, 2)
	assert.Equal(t, "opp-001", output.Results[0].ScholarshipID)
	assert.Equal(t, 100.0, output.Results[0].EligibilityScore)
	assert.Equal(t, models.StatusHighlyEligible, output.Results[0].EligibilityStatus)
	assert.Equal(t, 2, output.Summary.TotalChecked)
	assert.Equal(t, 10000.0, output.Summary.PotentialValue)
}

func TestHandler_Execute_ProfileFromCache(t *testing.T) {
	db, _ := setupMockDB(t)
	defer db.Close()
	mr, rdb := setupMockRedis(t)

	profile := createTestProfile()
	data, _ := json.Marshal(profile)
	mr.Set(profileCacheKeyPrefix+"applicant-001", string(data))

	handler := NewHandler(createTestConfig(), db, rdb, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		ApplicantID:   "applicant-001",
		Opportunities: createTestOpportunities(),
	})

	require.NoError(t, err)
	assert.Len(t, output.Results, 2)
}

func TestHandler_Execute_ProfileFromDatabase(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	_, rdb := setupMockRedis(t)

	demographics, _ := json.Marshal(models.Demographics{Gender: "Female"})
	rows := sqlmock.NewRows([]string{
		"id", "academic_level", "field_of_study", "gpa", "gpa_scale",
		"ielts_score", "toefl_score", "age", "work_experience_years",
		"country_of_origin", "demographics",
	}).AddRow("applicant-001", "Undergraduate", "Computer Science", 6.2, "7.0",
		nil, nil, nil, nil, "Australia", demographics)
	mock.ExpectQuery("SELECT id, academic_level").
		WithArgs("applicant-001").
		WillReturnRows(rows)

	handler := NewHandler(createTestConfig(), db, rdb, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		ApplicantID:   "applicant-001",
		Opportunities: createTestOpportunities(),
	})

	require.NoError(t, err)
	assert.Len(t, output.Results, 2)
	assert.Equal(t, models.StatusHighlyEligible, output.Results[0].EligibilityStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_CatalogFromDatabase(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	_, rdb := setupMockRedis(t)

	criteria, _ := json.Marshal(models.OpportunityCriteria{RequiredLevel: "Undergraduate"})
	tags, _ := json.Marshal([]string{"stem"})
	rows := sqlmock.NewRows([]string{
		"id", "name", "provider", "amount", "currency", "deadline", "tags", "criteria",
	}).AddRow("opp-010", "Faculty Merit Award", "State University", 7500.0, "AUD", "2026-11-30", tags, criteria)
	mock.ExpectQuery("SELECT id, name, provider, amount").
		WillReturnRows(rows)

	handler := NewHandler(createTestConfig(), db, rdb, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Profile: createTestProfile()})

	require.NoError(t, err)
	require.Len(t, output.Results, 1)
	assert.Equal(t, "opp-010", output.Results[0].ScholarshipID)
	assert.Equal(t, 100.0, output.Results[0].EligibilityScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_MissingProfileAndID(t *testing.T) {
	db, _ := setupMockDB(t)
	defer db.Close()
	_, rdb := setupMockRedis(t)

	handler := NewHandler(createTestConfig(), db, rdb, newTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{Opportunities: createTestOpportunities()})

	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestHandler_Execute_EmptyCatalogIsNotAnError(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()
	_, rdb := setupMockRedis(t)

	mock.ExpectQuery("SELECT id, name, provider, amount").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "provider", "amount", "currency", "deadline", "tags", "criteria",
		}))

	handler := NewHandler(createTestConfig(), db, rdb, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Profile: createTestProfile()})

	require.NoError(t, err)
	assert.NotNil(t, output.Results)
	assert.Empty(t, output.Results)
	assert.Equal(t, 0, output.Summary.TotalChecked)
}

func TestHandler_Execute_MalformedCatalogEntrySkipped(t *testing.T) {
	db, _ := setupMockDB(t)
	defer db.Close()
	_, rdb := setupMockRedis(t)

	catalog := append(createTestOpportunities(),
		models.OpportunityRecord{Name: "Nameless Fund", Amount: 3000}, // no id
		models.OpportunityRecord{ID: "opp-004", Name: "Community Award", Amount: 1500},
	)

	handler := NewHandler(createTestConfig(), db, rdb, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Profile:       createTestProfile(),
		Opportunities: catalog,
	})

	require.NoError(t, err)
	assert.Len(t, output.Results, 3)
}
