package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"depscreen/internal/repository"
)

// Handler serves the run-history viewer API. It is read-only: the batch
// pipeline itself never listens on the network.
type Handler struct {
	repo   *repository.RunRepository
	logger *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(repo *repository.RunRepository, logger *zap.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/runs", h.ListRuns)
		api.GET("/runs/:id", h.GetRun)
		api.GET("/runs/:id/report", h.GetRunReport)
		api.GET("/runs/:id/roc.svg", h.GetRunROC)

		// Export
		api.GET("/export/csv", h.ExportCSV)
	}

	// Health check
	r.GET("/health", h.HealthCheck)
}

// ListRuns returns run summaries, newest first
func (h *Handler) ListRuns(c *gin.Context) {
	runs, err := h.repo.ListRuns()
	if err != nil {
		h.logger.Error("Failed to list runs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(runs),
		"runs":  runs,
	})
}

// GetRun returns a full run by ID
func (h *Handler) GetRun(c *gin.Context) {
	run, err := h.repo.GetRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	c.JSON(http.StatusOK, run)
}

// GetRunReport returns the rendered text report of a run
func (h *Handler) GetRunReport(c *gin.Context) {
	run, err := h.repo.GetRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(run.ReportText))
}

// GetRunROC returns the ROC curve of a run as SVG
func (h *Handler) GetRunROC(c *gin.Context) {
	run, err := h.repo.GetRun(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	c.Data(http.StatusOK, "image/svg+xml", []byte(run.ROCSVG))
}

// ExportCSV exports the run history to CSV
func (h *Handler) ExportCSV(c *gin.Context) {
	runs, err := h.repo.ListRuns()
	if err != nil {
		h.logger.Error("Failed to export CSV", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=runs.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"id", "created_at", "dataset_path", "rows", "accuracy", "auc"})
	for _, run := range runs {
		writer.Write([]string{
			run.ID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.DatasetPath,
			fmt.Sprintf("%d", run.Rows),
			fmt.Sprintf("%.4f", run.Accuracy),
			fmt.Sprintf("%.4f", run.AUC),
		})
	}
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
