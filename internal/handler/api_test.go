package handler

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"depscreen/internal/models"
	"depscreen/internal/repository"
)

func testRouter(t *testing.T) (*gin.Engine, *repository.RunRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo, err := repository.NewRunRepository(filepath.Join(t.TempDir(), "runs.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	router := gin.New()
	NewHandler(repo, zap.NewNop()).RegisterRoutes(router)
	return router, repo
}

func savedRun(t *testing.T, repo *repository.RunRepository) *models.Run {
	t.Helper()
	run := &models.Run{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now().UTC(),
		DatasetPath: "survey.csv",
		Rows:        502,
		TrainRows:   351,
		TestRows:    151,
		Accuracy:    0.89,
		AUC:         0.93,
		Threshold:   0.5,
		ReportText:  "Depression screening report",
		ROCSVG:      "<svg xmlns=\"http://www.w3.org/2000/svg\"></svg>",
	}
	require.NoError(t, repo.SaveRun(run))
	return run
}

func TestHandler(t *testing.T) {
	t.Run("health", func(t *testing.T) {
		router, _ := testRouter(t)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("list runs", func(t *testing.T) {
		router, repo := testRouter(t)
		run := savedRun(t, repo)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/runs", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), run.ID)
	})

	t.Run("get run report as text", func(t *testing.T) {
		router, repo := testRouter(t)
		run := savedRun(t, repo)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+run.ID+"/report", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Depression screening report", w.Body.String())
	})

	t.Run("get run roc as svg", func(t *testing.T) {
		router, repo := testRouter(t)
		run := savedRun(t, repo)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/runs/"+run.ID+"/roc.svg", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "<svg")
	})

	t.Run("unknown run is 404", func(t *testing.T) {
		router, _ := testRouter(t)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/runs/unknown", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("csv export", func(t *testing.T) {
		router, repo := testRouter(t)
		run := savedRun(t, repo)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/export/csv", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, w.Body.String(), run.ID)
	})
}
