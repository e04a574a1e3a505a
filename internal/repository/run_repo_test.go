package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"depscreen/internal/models"
)

func testRepo(t *testing.T) *RunRepository {
	t.Helper()
	repo, err := NewRunRepository(filepath.Join(t.TempDir(), "runs.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func sampleRun() *models.Run {
	return &models.Run{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),

		DatasetPath: "./data/depression_student_dataset.csv",
		Rows:        502,
		TrainRows:   351,
		TestRows:    151,

		SplitSeed:   1234,
		BalanceSeed: 42,
		ForestSeed:  7,
		Trees:       500,

		TP: 70, FP: 6, TN: 64, FN: 11,

		Accuracy:    0.8874,
		Sensitivity: 0.9143,
		Specificity: 0.8642,
		AUC:         0.9321,
		Threshold:   0.5,

		ReportText:     "report",
		ROCSVG:         "<svg/>",
		ImportanceJSON: `[{"feature":"age","importance":0.2}]`,
		ModelJSON:      `{"features":["age"],"trees":[]}`,
	}
}

func TestRunRepository(t *testing.T) {
	t.Run("save and get round-trip", func(t *testing.T) {
		repo := testRepo(t)
		run := sampleRun()
		require.NoError(t, repo.SaveRun(run))

		got, err := repo.GetRun(run.ID)
		require.NoError(t, err)

		assert.Equal(t, run.ID, got.ID)
		assert.Equal(t, run.Rows, got.Rows)
		assert.Equal(t, run.TrainRows, got.TrainRows)
		assert.Equal(t, run.TestRows, got.TestRows)
		assert.Equal(t, run.TP, got.TP)
		assert.Equal(t, run.TN, got.TN)
		assert.InDelta(t, run.AUC, got.AUC, 1e-9)
		assert.Equal(t, run.ReportText, got.ReportText)
		assert.Equal(t, run.ROCSVG, got.ROCSVG)
		assert.Equal(t, run.ModelJSON, got.ModelJSON)
	})

	t.Run("list returns summaries newest first", func(t *testing.T) {
		repo := testRepo(t)

		older := sampleRun()
		older.CreatedAt = time.Now().UTC().Add(-time.Hour)
		newer := sampleRun()
		newer.CreatedAt = time.Now().UTC()

		require.NoError(t, repo.SaveRun(older))
		require.NoError(t, repo.SaveRun(newer))

		runs, err := repo.ListRuns()
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, newer.ID, runs[0].ID)
		assert.Equal(t, older.ID, runs[1].ID)
	})

	t.Run("get unknown run fails", func(t *testing.T) {
		repo := testRepo(t)
		_, err := repo.GetRun("nope")
		assert.Error(t, err)
	})
}
