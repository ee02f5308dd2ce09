package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saturnino-fabrica-de-software/ponto/internal/api"
	"github.com/saturnino-fabrica-de-software/ponto/internal/config"
	"github.com/saturnino-fabrica-de-software/ponto/internal/database"
	"github.com/saturnino-fabrica-de-software/ponto/internal/face"
	"github.com/saturnino-fabrica-de-software/ponto/internal/gallery"
	"github.com/saturnino-fabrica-de-software/ponto/internal/ledger"
	"github.com/saturnino-fabrica-de-software/ponto/internal/report"
	"github.com/saturnino-fabrica-de-software/ponto/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting Ponto API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
	)

	// Database pool
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Repositories
	employeeRepo := repository.NewEmployeeRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)

	// Face extractor
	ext, err := face.NewExtractor(cfg)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	// Embedding gallery
	store, err := gallery.NewVectorStore(cfg.FacesDir)
	if err != nil {
		return fmt.Errorf("failed to create vector store: %w", err)
	}

	g := gallery.New(employeeRepo, store, logger)
	if err := g.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load gallery: %w", err)
	}

	// Report exporter and attendance ledger
	exporter := report.NewExporter(attendanceRepo, cfg.ReportsDir, logger)
	led := ledger.New(attendanceRepo, exporter, logger)

	// Setup router
	router := api.NewRouter(logger, &api.Dependencies{
		EmployeeRepo:   employeeRepo,
		AttendanceRepo: attendanceRepo,
		Extractor:      ext,
		Gallery:        g,
		VectorStore:    store,
		Exporter:       exporter,
		Ledger:         led,
		FacesDir:       cfg.FacesDir,
		MatchThreshold: cfg.MatchThreshold,
		DB:             pool,
	})
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server...")
	if err := router.Shutdown(); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
	}

	<-shutdownCtx.Done()
	logger.Info("server stopped")

	return nil
}
