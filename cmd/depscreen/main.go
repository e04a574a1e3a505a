package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"depscreen/internal/config"
	"depscreen/internal/handler"
	"depscreen/internal/repository"
	"depscreen/internal/service"
)

func main() {
	configPath := flag.String("config", "configs/config.yml", "path to the YAML config")
	dataPath := flag.String("data", "", "override the dataset CSV path")
	serve := flag.Bool("serve", false, "serve the run-history viewer instead of running the pipeline")
	flag.Parse()

	// Initialize logger
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}

	// Initialize run repository
	os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755)

	repo, err := repository.NewRunRepository(cfg.Database.Path, logger)
	if err != nil {
		logger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	if *serve {
		serveRuns(cfg, repo, logger)
		return
	}

	runPipeline(cfg, repo, logger)
}

// runPipeline executes the batch analysis once: it prints the report, writes
// the ROC curve to disk and persists the run.
func runPipeline(cfg *config.Config, repo *repository.RunRepository, logger *zap.Logger) {
	pipeline := service.NewPipeline(cfg, repo, logger)

	run, err := pipeline.Run()
	if err != nil {
		logger.Fatal("Pipeline failed", zap.Error(err))
	}

	fmt.Print(run.ReportText)

	if err := os.WriteFile(cfg.Output.ROCSVGPath, []byte(run.ROCSVG), 0644); err != nil {
		logger.Warn("Failed to write ROC curve", zap.Error(err))
	} else {
		logger.Info("ROC curve written", zap.String("path", cfg.Output.ROCSVGPath))
	}

	logger.Info("Pipeline finished", zap.String("run_id", run.ID))
}

// serveRuns starts the read-only viewer API with graceful shutdown.
func serveRuns(cfg *config.Config, repo *repository.RunRepository, logger *zap.Logger) {
	apiHandler := handler.NewHandler(repo, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()
	apiHandler.RegisterRoutes(router)

	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Run viewer is running", zap.String("address", serverAddr))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
