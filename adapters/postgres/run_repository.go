// Package postgres persists finished analysis runs. This is an outer-layer
// audit trail: the decision pipeline itself never reads it, and works the
// same with no database configured at all.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"statengine/app"
	"statengine/domain/report"
)

// AnalysisRecord is one persisted run.
type AnalysisRecord struct {
	ID          string    `db:"id"`
	Fingerprint string    `db:"fingerprint"`
	Method      string    `db:"method"`
	PValue      float64   `db:"p_value"`
	PDisplay    string    `db:"p_display"`
	Significant bool      `db:"significant"`
	ReportJP    string    `db:"report_jp"`
	ReportEN    string    `db:"report_en"`
	CreatedAt   time.Time `db:"created_at"`
}

// RunRepository stores and lists analysis runs.
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a PostgreSQL-backed run repository.
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Schema is the table this repository needs. Applied at startup when a
// database is configured.
const Schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id          UUID PRIMARY KEY,
	fingerprint TEXT NOT NULL,
	method      TEXT NOT NULL,
	p_value     DOUBLE PRECISION NOT NULL,
	p_display   TEXT NOT NULL,
	significant BOOLEAN NOT NULL,
	report_jp   TEXT NOT NULL,
	report_en   TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Migrate creates the runs table if it does not exist.
func (r *RunRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to migrate analysis_runs: %w", err)
	}
	return nil
}

// Save persists one finished analysis.
func (r *RunRepository) Save(ctx context.Context, result *app.AnalysisResult) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO analysis_runs (
			id, fingerprint, method, p_value, p_display, significant,
			report_jp, report_en, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())`,
		result.ID.String(), result.Fingerprint.String(),
		result.Outcome.Method.String(), result.Outcome.PValue,
		report.FormatPValue(result.Outcome.PValue), result.Outcome.Significant,
		result.Reports.JP.Text, result.Reports.EN.Text)
	if err != nil {
		return fmt.Errorf("failed to save analysis run: %w", err)
	}
	return nil
}

// ListRecent returns the most recent runs, newest first.
func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	records := []AnalysisRecord{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, fingerprint, method, p_value, p_display, significant,
		       report_jp, report_en, created_at
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	return records, nil
}
