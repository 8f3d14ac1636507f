package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hiring-pipeline/config"
	_ "go-hiring-pipeline/docs" // Important for Swagger
	v1 "go-hiring-pipeline/internal/delivery/http/v1"
	"go-hiring-pipeline/internal/repository/postgres"
	"go-hiring-pipeline/internal/usecase"
	"go-hiring-pipeline/pkg/database"
	"go-hiring-pipeline/pkg/email"
	"go-hiring-pipeline/pkg/logger"
	"go-hiring-pipeline/pkg/redis"
	"go-hiring-pipeline/pkg/storage"
	"go-hiring-pipeline/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           Hiring Pipeline API
// @version         1.0
// @description     State and gating engine for hiring and practice placement pipelines.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting hiring pipeline backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting; in-memory fallback when absent)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
		}
	}
	defer redis.Close()

	// 5. Setup Document Storage
	fileStorage, err := storage.NewS3Storage(context.Background(), storage.Config{
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
		PresignTTL:      cfg.S3PresignTTL,
	})
	if err != nil {
		logger.Log.Error("Failed to initialize document storage", "error", err)
		os.Exit(1)
	}

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - notifications will be stored but not mailed")
	}

	// 7. Setup Repositories
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	resumeRepo := postgres.NewResumeRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)
	documentRepo := postgres.NewDocumentRepository(dbPool)
	pipelineRepo := postgres.NewPipelineRepository(dbPool)
	notificationRepo := postgres.NewNotificationRepository(dbPool)
	conflictChecker := postgres.NewScheduleConflictChecker(dbPool)

	// 8. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	notifier := usecase.NewNotifier(notificationRepo, candidateRepo, emailService)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, notifier)
	resumeUC := usecase.NewResumeUsecase(resumeRepo, candidateRepo, notifier, validate)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, candidateRepo, conflictChecker, notifier)
	documentUC := usecase.NewDocumentUsecase(documentRepo, interviewRepo, candidateRepo, fileStorage, notifier)
	pipelineUC := usecase.NewPipelineUsecase(pipelineRepo, notifier)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		CandidateUC:    candidateUC,
		ResumeUC:       resumeUC,
		InterviewUC:    interviewUC,
		DocumentUC:     documentUC,
		PipelineUC:     pipelineUC,
		NotificationUC: notificationUC,
		Config:         cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
