// internal/workers/catalog/sync-pathway-programs/handler_test.go
package syncpathwayprograms

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"pathway-workers/internal/common/logger"
	"pathway-workers/internal/common/pathways"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
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

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

// fakeLister serves canned pages in order.
type fakeLister struct {
	pages [][]pathways.Program
	err   error
	calls int
}

func (f *fakeLister) ListPrograms(_ context.Context, _ string, page int) ([]pathways.Program, bool, error) {
	f.calls++
	if f.err != nil {
		return nil, false, f.err
	}
	if page > len(f.pages) {
		return nil, false, nil
	}
	return f.pages[page-1], page < len(f.pages), nil
}

func createTestProgram(id string) pathways.Program {
	return pathways.Program{
		ID:       id,
		Name:     "Program " + id,
		Provider: "Pathways Provider",
		Amount:   5000,
		Currency: "AUD",
		Deadline: "2026-12-01",
		Tags:     []string{"stem"},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_SyncsAllPages(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	lister := &fakeLister{pages: [][]pathways.Program{
		{createTestProgram("prog-001"), createTestProgram("prog-002")},
		{createTestProgram("prog-003")},
	}}

	for i := 0; i < 3; i++ {
		mock.ExpectExec("INSERT INTO opportunities").
			WillReturnResult(sqlmock.NewResult(1, 1))
	}

	handler := NewHandler(LoadConfig(), db, lister, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, 3, output.ProgramsFetched)
	assert.Equal(t, 3, output.ProgramsUpserted)
	assert.Equal(t, 0, output.ProgramsSkipped)
	assert.Equal(t, 2, output.PagesProcessed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_SkipsMalformedPrograms(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	bad := createTestProgram("")
	negative := createTestProgram("prog-neg")
	negative.Amount = -100

	lister := &fakeLister{pages: [][]pathways.Program{
		{createTestProgram("prog-001"), bad, negative},
	}}

	mock.ExpectExec("INSERT INTO opportunities").
		WillReturnResult(sqlmock.NewResult(1, 1))

	handler := NewHandler(LoadConfig(), db, lister, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, 1, output.ProgramsUpserted)
	assert.Equal(t, 2, output.ProgramsSkipped)
}

func TestHandler_Execute_RespectsMaxPages(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	lister := &fakeLister{pages: [][]pathways.Program{
		{createTestProgram("prog-001")},
		{createTestProgram("prog-002")},
		{createTestProgram("prog-003")},
	}}

	mock.ExpectExec("INSERT INTO opportunities").
		WillReturnResult(sqlmock.NewResult(1, 1))

	handler := NewHandler(LoadConfig(), db, lister, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{MaxPages: 1})

	require.NoError(t, err)
	assert.Equal(t, 1, output.PagesProcessed)
	assert.Equal(t, 1, output.ProgramsUpserted)
}

func TestHandler_Execute_ProviderError(t *testing.T) {
	db, _ := setupMockDB(t)
	defer db.Close()

	lister := &fakeLister{err: errors.New("upstream unavailable")}

	handler := NewHandler(LoadConfig(), db, lister, createTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{})

	assert.ErrorIs(t, err, ErrPathwaySyncFailed)
}

func TestHandler_Execute_UpsertFailureAborts(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	lister := &fakeLister{pages: [][]pathways.Program{
		{createTestProgram("prog-001")},
	}}

	mock.ExpectExec("INSERT INTO opportunities").
		WillReturnError(sql.ErrConnDone)

	handler := NewHandler(LoadConfig(), db, lister, createTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{})

	assert.ErrorIs(t, err, ErrPathwaySyncFailed)
}
