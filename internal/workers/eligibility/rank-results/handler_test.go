// internal/workers/eligibility/rank-results/handler_test.go
package rankresults

import (
	"context"
	"testing"
	"time"

	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		MaxItems: 10,
		Timeout:  5 * time.Second,
	}
}

func createTestResult(id string, score float64, amount float64) models.OpportunityEvaluation {
	return models.OpportunityEvaluation{
		ScholarshipID:     id,
		ScholarshipName:   "Scholarship " + id,
		Amount:            amount,
		EligibilityScore:  score,
		EligibilityStatus: models.StatusForScore(score),
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

func TestHandler_Execute_SortsByScoreThenAmount(t *testing.T) {
	handler := NewHandler(createTestConfig(), newTestLogger(t))

	input := &Input{
		Results: []models.OpportunityEvaluation{
			createTestResult("opp-001", 60, 2000),
			createTestResult("opp-002", 95, 5000),
			createTestResult("opp-003", 95, 10000),
		},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	require.Len(t, output.Results, 3)
	assert.Equal(t, "opp-003", output.Results[0].ScholarshipID)
	assert.Equal(t, "opp-002", output.Results[1].ScholarshipID)
	assert.Equal(t, "opp-001", output.Results[2].ScholarshipID)
}

func TestHandler_Execute_DeduplicatesKeepingHighestScore(t *testing.T) {
	handler := NewHandler(createTestConfig(), newTestLogger(t))

	input := &Input{
		Results: []models.OpportunityEvaluation{
			createTestResult("opp-001", 55, 4000),
			createTestResult("opp-002", 70, 3000),
			createTestResult("opp-001", 85, 4000),
		},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	require.Len(t, output.Results, 2)
	assert.Equal(t, "opp-001", output.Results[0].ScholarshipID)
	assert.Equal(t, 85.0, output.Results[0].EligibilityScore)
	assert.Equal(t, 2, output.Summary.TotalChecked)
}

func TestHandler_Execute_TruncatesToMaxItems(t *testing.T) {
	handler := NewHandler(createTestConfig(), newTestLogger(t))

	input := &Input{MaxItems: 2}
	for i := 0; i < 5; i++ {
		input.Results = append(input.Results,
			createTestResult(string(rune('a'+i)), float64(50+i*10), 1000))
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Len(t, output.Results, 2)
	assert.Equal(t, 90.0, output.Results[0].EligibilityScore)
}

func TestHandler_Execute_MaxItemsCappedByConfig(t *testing.T) {
	handler := NewHandler(&Config{MaxItems: 3, Timeout: time.Second}, newTestLogger(t))

	input := &Input{MaxItems: 100}
	for i := 0; i < 5; i++ {
		input.Results = append(input.Results,
			createTestResult(string(rune('a'+i)), float64(i*10), 1000))
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Len(t, output.Results, 3)
}

func TestHandler_Execute_SummaryRecomputedAfterTruncation(t *testing.T) {
	handler := NewHandler(createTestConfig(), newTestLogger(t))

	input := &Input{
		MaxItems: 2,
		Results: []models.OpportunityEvaluation{
			createTestResult("opp-001", 90, 10000),
			createTestResult("opp-002", 85, 5000),
			createTestResult("opp-003", 30, 50000),
		},
	}

	output, err := handler.Execute(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, 2, output.Summary.TotalChecked)
	assert.Equal(t, 2, output.Summary.HighlyEligible)
	assert.Equal(t, 15000.0, output.Summary.PotentialValue)
}

func TestHandler_Execute_EmptyInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), newTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Empty(t, output.Results)
	assert.Equal(t, 0, output.Summary.TotalChecked)
}

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), newTestLogger(t))

	_, err := handler.Execute(context.Background(), nil)

	assert.ErrorIs(t, err, ErrNilInput)
}
