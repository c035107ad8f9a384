// internal/workers/catalog/query-opportunities/handler_test.go
package queryopportunities

import (
	"context"
	"database/sql"
	"testing"

	"pathway-workers/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock db: %v", err)
	}
	return db, mock
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

func TestHandler_Execute_OpportunitiesByTag(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "provider", "amount", "currency", "deadline"}).
		AddRow("opp-001", "Women in STEM Scholarship", "Tech Foundation", 10000.0, "AUD", "2026-10-01").
		AddRow("opp-002", "Engineering Access Grant", "State University", 5000.0, "AUD", "2026-11-15")
	mock.ExpectQuery("SELECT id, name, provider, amount").
		WithArgs("stem").
		WillReturnRows(rows)

	handler := NewHandler(LoadConfig(), db, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		QueryType: "opportunities_by_tag",
		Tag:       "stem",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, output.RowCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_ApplicantProfile(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "academic_level", "field_of_study", "gpa", "gpa_scale",
		"ielts_score", "toefl_score", "age", "work_experience_years",
		"country_of_origin", "demographics",
	}).AddRow("applicant-001", "Undergraduate", "Computer Science", 6.2, "7.0",
		7.5, nil, 22, 1.0, "Australia", []byte(`{"gender":"Female"}`))
	mock.ExpectQuery("SELECT id, academic_level").
		WithArgs("applicant-001").
		WillReturnRows(rows)

	handler := NewHandler(LoadConfig(), db, newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		QueryType:   "applicant_profile",
		ApplicantID: "applicant-001",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, output.RowCount)
	data, ok := output.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Undergraduate", data["academicLevel"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_InvalidQueryType(t *testing.T) {
	db, _ := setupMockDB(t)
	defer db.Close()

	handler := NewHandler(LoadConfig(), db, newTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{QueryType: "drop_tables"})

	assert.ErrorIs(t, err, ErrInvalidQueryType)
}

func TestHandler_Execute_MissingRequiredParam(t *testing.T) {
	db, _ := setupMockDB(t)
	defer db.Close()

	handler := NewHandler(LoadConfig(), db, newTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{QueryType: "opportunity_full_details"})

	assert.ErrorIs(t, err, ErrQueryExecutionFailed)
}

func TestHandler_Execute_NilInput(t *testing.T) {
	db, _ := setupMockDB(t)
	defer db.Close()

	handler := NewHandler(LoadConfig(), db, newTestLogger(t))

	_, err := handler.Execute(context.Background(), nil)

	assert.Error(t, err)
}
