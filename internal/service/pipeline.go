package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"depscreen/internal/balance"
	"depscreen/internal/config"
	"depscreen/internal/dataset"
	"depscreen/internal/eval"
	"depscreen/internal/forest"
	"depscreen/internal/models"
	"depscreen/internal/report"
	"depscreen/internal/repository"
	"depscreen/internal/split"
)

// RunStore persists completed runs.
type RunStore interface {
	SaveRun(run *models.Run) error
}

// Pipeline wires the analysis stages together: load, recode, split, balance,
// fit, evaluate, render, persist. Data flows strictly forward; every stage
// takes its seed from config rather than ambient randomness.
type Pipeline struct {
	cfg    *config.Config
	store  RunStore
	logger *zap.Logger
}

// NewPipeline creates a new pipeline service
func NewPipeline(cfg *config.Config, store RunStore, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		store:  store,
		logger: logger,
	}
}

// Run executes the pipeline once over the configured dataset and returns the
// persisted run. Any stage error aborts the run, wrapped with the stage name.
func (p *Pipeline) Run() (*models.Run, error) {
	records, err := dataset.Load(p.cfg.Data.Path)
	if err != nil {
		return nil, fmt.Errorf("load stage: %w", err)
	}
	p.logger.Info("Dataset loaded",
		zap.String("path", p.cfg.Data.Path),
		zap.Int("samples", len(records)))

	table, err := dataset.Recode(records)
	if err != nil {
		return nil, fmt.Errorf("recode stage: %w", err)
	}
	p.logger.Info("Dataset recoded",
		zap.Int("samples", table.NumRows()),
		zap.Int("features", table.NumCols()-1))

	train, test, err := split.Split(table, p.cfg.Split.Fraction, p.cfg.Split.Seed)
	if err != nil {
		return nil, fmt.Errorf("split stage: %w", err)
	}
	p.logger.Info("Dataset split",
		zap.Int("train_samples", train.NumRows()),
		zap.Int("test_samples", test.NumRows()),
		zap.Int64("seed", p.cfg.Split.Seed))

	balanced, err := balance.Balance(train, dataset.LabelColumn, p.cfg.Balance.Seed)
	if err != nil {
		return nil, fmt.Errorf("balance stage: %w", err)
	}
	p.logger.Info("Training set balanced",
		zap.Int("samples", balanced.NumRows()),
		zap.Int64("seed", p.cfg.Balance.Seed))

	model, err := forest.Fit(balanced, dataset.LabelColumn, forest.Config{
		Trees:    p.cfg.Forest.Trees,
		Seed:     p.cfg.Forest.Seed,
		MaxDepth: p.cfg.Forest.MaxDepth,
		MinLeaf:  p.cfg.Forest.MinLeaf,
	})
	if err != nil {
		return nil, fmt.Errorf("fit stage: %w", err)
	}
	p.logger.Info("Forest fitted",
		zap.Int("trees", p.cfg.Forest.Trees),
		zap.Int("features", len(model.Features())))

	result, err := eval.Evaluate(model, test, dataset.LabelColumn, p.cfg.Evaluate.Threshold)
	if err != nil {
		return nil, fmt.Errorf("evaluate stage: %w", err)
	}
	result.Importance = model.Importance()

	p.logger.Info("Model evaluated",
		zap.Float64("accuracy", result.Accuracy),
		zap.Float64("auc", result.AUC))

	run, err := p.buildRun(table, train, test, result, model)
	if err != nil {
		return nil, err
	}

	if p.store != nil {
		if err := p.store.SaveRun(run); err != nil {
			return nil, fmt.Errorf("failed to save run: %w", err)
		}
	}

	return run, nil
}

func (p *Pipeline) buildRun(table, train, test *dataset.Table, result *models.EvaluationReport, model *forest.Forest) (*models.Run, error) {
	importanceJSON, err := json.Marshal(result.Importance)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal importance: %w", err)
	}
	modelJSON, err := json.Marshal(model.Params())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal model parameters: %w", err)
	}

	return &models.Run{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),

		DatasetPath: p.cfg.Data.Path,
		Rows:        table.NumRows(),
		TrainRows:   train.NumRows(),
		TestRows:    test.NumRows(),

		SplitSeed:   p.cfg.Split.Seed,
		BalanceSeed: p.cfg.Balance.Seed,
		ForestSeed:  p.cfg.Forest.Seed,
		Trees:       p.cfg.Forest.Trees,

		TP: result.TP,
		FP: result.FP,
		TN: result.TN,
		FN: result.FN,

		Accuracy:    result.Accuracy,
		Sensitivity: result.Sensitivity,
		Specificity: result.Specificity,
		AUC:         result.AUC,
		Threshold:   result.Threshold,

		ReportText:     report.RenderText(result),
		ROCSVG:         report.RenderROCSVG(result.ROC, result.AUC),
		ImportanceJSON: string(importanceJSON),
		ModelJSON:      string(modelJSON),
	}, nil
}

var _ RunStore = (*repository.RunRepository)(nil)
