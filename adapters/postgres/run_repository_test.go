package postgres

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statengine/adapters/battery"
	"statengine/app"
	"statengine/domain/stats"
)

func newMockRepo(t *testing.T) (*RunRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRunRepository(sqlx.NewDb(db, "postgres")), mock
}

func sampleResult(t *testing.T) *app.AnalysisResult {
	t.Helper()
	svc := app.NewAnalysisService(battery.New())
	result, err := svc.Analyze([]stats.Group{
		{Name: "Control", Values: []float64{10, 12, 11, 13, 12}},
		{Name: "Treated", Values: []float64{20, 22, 21, 23, 22}},
	})
	require.NoError(t, err)
	return result
}

func TestSaveAnalysisRun(t *testing.T) {
	repo, mock := newMockRepo(t)
	result := sampleResult(t)

	mock.ExpectExec(`INSERT INTO analysis_runs`).
		WithArgs(
			result.ID.String(), result.Fingerprint.String(),
			"Student's t-test", result.Outcome.PValue,
			sqlmock.AnyArg(), true,
			result.Reports.JP.Text, result.Reports.EN.Text,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), result))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecentRuns(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{
		"id", "fingerprint", "method", "p_value", "p_display", "significant",
		"report_jp", "report_en", "created_at",
	}).AddRow(
		"0198d3a0-0000-7000-8000-000000000000", "abc123", "Welch's t-test",
		0.0123, "0.0123", true, "jp", "en", time.Now(),
	)

	mock.ExpectQuery(`SELECT id, fingerprint, method`).
		WithArgs(5).
		WillReturnRows(rows)

	records, err := repo.ListRecent(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Welch's t-test", records[0].Method)
	assert.Equal(t, "0.0123", records[0].PDisplay)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateCreatesTable(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS analysis_runs`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, repo.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
