package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/lessonbuilder/backend/docs"
	"github.com/lessonbuilder/backend/internal/autosave"
	"github.com/lessonbuilder/backend/internal/config"
	"github.com/lessonbuilder/backend/internal/dataurl"
	"github.com/lessonbuilder/backend/internal/document"
	"github.com/lessonbuilder/backend/internal/export"
	"github.com/lessonbuilder/backend/internal/handlers"
	"github.com/lessonbuilder/backend/internal/intake"
	"github.com/lessonbuilder/backend/internal/logger"
	"github.com/lessonbuilder/backend/internal/middleware"
	"github.com/lessonbuilder/backend/internal/pdf"
	"github.com/lessonbuilder/backend/internal/repositories"
	"github.com/lessonbuilder/backend/internal/richtext"
	"github.com/lessonbuilder/backend/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// maxUploadSize caps a single embedded image or audio file
const maxUploadSize = 20 * 1024 * 1024

// @title Lesson Builder API
// @version 1.0
// @description API for authoring lessons and exporting them as HTML, Markdown, PDF and JSON

// @host localhost:8080
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Lesson Builder",
		zap.String("week", cfg.Lesson.Week),
		zap.String("date", cfg.Lesson.Date),
	)

	// Open the autosave store
	db, err := repositories.OpenDB(cfg.AutosaveDSN())
	if err != nil {
		logger.Logger.Fatal("Failed to open autosave database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := repositories.RunMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	autosaveRepo := repositories.NewAutosaveRepository(db, logger.Logger)

	// Initialize lesson components
	exporter, err := export.New()
	if err != nil {
		logger.Logger.Fatal("Failed to load export templates", zap.Error(err))
	}
	editor := richtext.NewContentEditable(nil)
	contentIntake := intake.New(dataurl.NewConverter(maxUploadSize), editor, cfg.Lesson.ImagePathPrefix)
	printer := pdf.New(cfg.PDF.Enabled, cfg.PDF.Timeout, logger.Logger)

	// Initialize services
	lessonService := services.NewLessonService(
		document.NewDocument(cfg.Lesson.Week, cfg.Lesson.Date),
		contentIntake,
		editor,
		exporter,
		printer,
		autosaveRepo,
		logger.Logger,
	)

	// Start the autosave job
	scheduler, err := autosave.NewScheduler(lessonService, cfg.Autosave.Interval, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Failed to create autosave scheduler", zap.Error(err))
	}
	scheduler.Start()

	// Initialize handlers
	lessonHandler := handlers.NewLessonHandler(lessonService, logger.Logger)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.Server.RateLimitPerMinute, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(cfg.Server.MaxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	lessonHandler.RegisterRoutes(r)

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.PDF.Timeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Stop autosave and flush unsaved edits
	scheduler.Stop()
	if _, err := lessonService.Autosave(ctx); err != nil {
		logger.Logger.Error("Final autosave failed", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
