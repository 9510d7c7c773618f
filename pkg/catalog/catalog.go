// pkg/catalog/catalog.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/datainf-eval/noisegen/pkg/config"
	"github.com/datainf-eval/noisegen/pkg/model"
)

// Catalog records corruption runs and their per-record operations in
// PostgreSQL so generated variants stay traceable to the exact parameters
// that produced them.
type Catalog struct {
	db     *sqlx.DB
	logger *zap.Logger
	cfg    *config.CatalogConfig
}

// RunRecord is one catalog row describing a completed injection run.
type RunRecord struct {
	RunID         string    `db:"run_id"`
	Dataset       string    `db:"dataset"`
	Strategy      string    `db:"strategy"`
	Ratio         float64   `db:"ratio"`
	Seed          int64     `db:"seed"`
	LabelFlip     bool      `db:"label_flip"`
	TotalRows     int       `db:"total_rows"`
	CorruptedRows int       `db:"corrupted_rows"`
	FallbackCount int       `db:"fallback_count"`
	OutputPath    string    `db:"output_path"`
	CreatedAt     time.Time `db:"created_at"`
}

// Open connects to the catalog database and verifies the connection.
func Open(ctx context.Context, cfg *config.CatalogConfig, logger *zap.Logger) (*Catalog, error) {
	if cfg == nil {
		return nil, errors.New("catalog configuration cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	logger.Info("Connecting to run catalog",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.String("user", cfg.User))

	db, err := sqlx.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize catalog connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if cfg.StatementTimeout > 0 {
		_, err = db.ExecContext(ctx,
			fmt.Sprintf("SET statement_timeout = %d", cfg.StatementTimeout.Milliseconds()))
		if err != nil {
			logger.Warn("Failed to set statement timeout", zap.Error(err))
		}
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
	}

	return &Catalog{db: db, logger: logger, cfg: cfg}, nil
}

// EnsureSchema creates the catalog tables when they do not exist yet.
func (c *Catalog) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS corruption_runs (
			run_id         TEXT PRIMARY KEY,
			dataset        TEXT NOT NULL,
			strategy       TEXT NOT NULL,
			ratio          DOUBLE PRECISION NOT NULL,
			seed           BIGINT NOT NULL,
			label_flip     BOOLEAN NOT NULL,
			total_rows     INTEGER NOT NULL,
			corrupted_rows INTEGER NOT NULL,
			fallback_count INTEGER NOT NULL,
			output_path    TEXT NOT NULL,
			created_at     TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS corruption_operations (
			id         BIGSERIAL PRIMARY KEY,
			run_id     TEXT NOT NULL REFERENCES corruption_runs(run_id) ON DELETE CASCADE,
			row_index  INTEGER NOT NULL,
			column_name TEXT NOT NULL,
			family     TEXT NOT NULL,
			primitive  TEXT NOT NULL,
			reason     TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_corruption_operations_run
			ON corruption_operations (run_id)`,
	}

	for _, stmt := range statements {
		if _, err := c.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create catalog schema: %w", err)
		}
	}

	c.logger.Info("Catalog schema verified")
	return nil
}

// RecordRun inserts the run row and its operations atomically.
func (c *Catalog) RecordRun(ctx context.Context, run RunRecord, ops []model.CorruptionOperation) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin catalog transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO corruption_runs
			(run_id, dataset, strategy, ratio, seed, label_flip,
			 total_rows, corrupted_rows, fallback_count, output_path, created_at)
		VALUES
			(:run_id, :dataset, :strategy, :ratio, :seed, :label_flip,
			 :total_rows, :corrupted_rows, :fallback_count, :output_path, :created_at)`,
		run)
	if err != nil {
		return fmt.Errorf("failed to insert run record: %w", err)
	}

	for _, op := range ops {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO corruption_operations
				(run_id, row_index, column_name, family, primitive, reason, applied_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			run.RunID, op.RowIndex, op.Column, op.Family, op.Primitive, op.Reason, op.AppliedAt)
		if err != nil {
			return fmt.Errorf("failed to insert operation record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog transaction: %w", err)
	}

	c.logger.Info("Run recorded in catalog",
		zap.String("runID", run.RunID),
		zap.String("dataset", run.Dataset),
		zap.Int("operations", len(ops)))

	return nil
}

// RunsForDataset returns catalog rows for one dataset, newest first.
func (c *Catalog) RunsForDataset(ctx context.Context, dataset string) ([]RunRecord, error) {
	var runs []RunRecord
	err := c.db.SelectContext(ctx, &runs, `
		SELECT run_id, dataset, strategy, ratio, seed, label_flip,
		       total_rows, corrupted_rows, fallback_count, output_path, created_at
		FROM corruption_runs
		WHERE dataset = $1
		ORDER BY created_at DESC`,
		dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs for %s: %w", dataset, err)
	}
	return runs, nil
}

// Close closes the catalog connection.
func (c *Catalog) Close() error {
	c.logger.Info("Closing catalog connection",
		zap.String("database", c.cfg.Database))
	return c.db.Close()
}
