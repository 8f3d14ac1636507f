package v1

import (
	"net/http"
	"time"

	"go-hiring-pipeline/config"
	"go-hiring-pipeline/internal/delivery/http/middleware"
	"go-hiring-pipeline/internal/delivery/http/response"
	"go-hiring-pipeline/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	CandidateUC    domain.CandidateUsecase
	ResumeUC       domain.ResumeUsecase
	InterviewUC    domain.InterviewUsecase
	DocumentUC     domain.DocumentUsecase
	PipelineUC     domain.PipelineUsecase
	NotificationUC domain.NotificationUsecase
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	uploadLimiter := middleware.RateLimitMiddleware(
		middleware.UploadRateLimitConfig(deps.Config.RateLimitUploadThreshold, window))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Config))
	{
		NewCandidateHandler(protected, deps.CandidateUC)
		NewResumeHandler(protected, deps.ResumeUC)
		NewInterviewHandler(protected, deps.InterviewUC)
		NewDocumentHandler(protected, uploadLimiter, deps.DocumentUC)
		NewPipelineHandler(protected, deps.PipelineUC)
		NewNotificationHandler(protected, deps.NotificationUC)
	}

	return r
}
