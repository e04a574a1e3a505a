package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"depscreen/internal/models"
)

// RunRepository stores pipeline run history in SQLite.
type RunRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewRunRepository opens the run database and ensures the schema exists.
func NewRunRepository(dbPath string, logger *zap.Logger) (*RunRepository, error) {
	db, err := sqlx.Connect("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &RunRepository{db: db, logger: logger}
	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Run repository initialized", zap.String("db_path", dbPath))
	return repo, nil
}

// migrate creates tables
func (r *RunRepository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		dataset_path TEXT NOT NULL,
		rows INTEGER NOT NULL,
		train_rows INTEGER NOT NULL,
		test_rows INTEGER NOT NULL,
		split_seed INTEGER NOT NULL,
		balance_seed INTEGER NOT NULL,
		forest_seed INTEGER NOT NULL,
		trees INTEGER NOT NULL,
		tp INTEGER NOT NULL,
		fp INTEGER NOT NULL,
		tn INTEGER NOT NULL,
		fn INTEGER NOT NULL,
		accuracy REAL NOT NULL,
		sensitivity REAL NOT NULL,
		specificity REAL NOT NULL,
		auc REAL NOT NULL,
		threshold REAL NOT NULL,
		report_text TEXT,
		roc_svg TEXT,
		importance_json TEXT,
		model_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveRun persists a completed pipeline run.
func (r *RunRepository) SaveRun(run *models.Run) error {
	query := `
		INSERT INTO runs (
			id, created_at, dataset_path, rows, train_rows, test_rows,
			split_seed, balance_seed, forest_seed, trees,
			tp, fp, tn, fn,
			accuracy, sensitivity, specificity, auc, threshold,
			report_text, roc_svg, importance_json, model_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		run.ID,
		run.CreatedAt,
		run.DatasetPath,
		run.Rows,
		run.TrainRows,
		run.TestRows,
		run.SplitSeed,
		run.BalanceSeed,
		run.ForestSeed,
		run.Trees,
		run.TP,
		run.FP,
		run.TN,
		run.FN,
		run.Accuracy,
		run.Sensitivity,
		run.Specificity,
		run.AUC,
		run.Threshold,
		run.ReportText,
		run.ROCSVG,
		run.ImportanceJSON,
		run.ModelJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	r.logger.Info("Run saved", zap.String("id", run.ID), zap.Float64("auc", run.AUC))
	return nil
}

// ListRuns returns run summaries, newest first.
func (r *RunRepository) ListRuns() ([]*models.RunSummary, error) {
	query := `
		SELECT id, created_at, dataset_path, rows, accuracy, auc
		FROM runs
		ORDER BY created_at DESC
	`

	var runs []*models.RunSummary
	if err := r.db.Select(&runs, query); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// GetRun returns a full run by ID.
func (r *RunRepository) GetRun(id string) (*models.Run, error) {
	query := `
		SELECT id, created_at, dataset_path, rows, train_rows, test_rows,
		       split_seed, balance_seed, forest_seed, trees,
		       tp, fp, tn, fn,
		       accuracy, sensitivity, specificity, auc, threshold,
		       report_text, roc_svg, importance_json, model_json
		FROM runs
		WHERE id = ?
	`

	run := &models.Run{}
	if err := r.db.Get(run, query, id); err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return run, nil
}

// Close closes the underlying database handle.
func (r *RunRepository) Close() error {
	return r.db.Close()
}
