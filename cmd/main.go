package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/quizdesk/config"
	"github.com/lshigami/quizdesk/database"
	_ "github.com/lshigami/quizdesk/docs"
	adminctrl "github.com/lshigami/quizdesk/internal/controller/admin"
	userctrl "github.com/lshigami/quizdesk/internal/controller/user"
	"github.com/lshigami/quizdesk/internal/dto"
	"github.com/lshigami/quizdesk/internal/logger"
	"github.com/lshigami/quizdesk/internal/repository"
	"github.com/lshigami/quizdesk/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Manager Training Quiz API
// @version 1.0
// @description Quiz sessions, AI-assisted grading, admin review and retests for manager training.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewTestResultRepository,
			repository.NewSubjectiveAnswerRepository,
			repository.NewRetestAssignmentRepository,
			repository.NewWrongAnswerReviewRepository,
		),

		fx.Provide(
			service.NewGeminiLLMService,
			service.NewQuestionService,
			service.NewTestSubmissionService,
			service.NewRetestService,
			service.NewAttemptService,
			service.NewAdminReviewService,
			service.NewWrongAnswerReviewService,
		),

		fx.Provide(
			adminctrl.NewQuestionController,
			adminctrl.NewReviewController,
			adminctrl.NewRetestController,
			userctrl.NewSessionController,
			userctrl.NewResultController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func NewGinEngine(cfg *config.Config) (*gin.Engine, error) {
	logger.SetLevel(cfg.LogLevel)
	gin.SetMode(cfg.Server.GinMode)
	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r, nil
}

func AutoMigrateDB(db *gorm.DB) error {
	return database.AutoMigrate(db)
}

// RegisterRoutes wires every handler onto router.
func RegisterRoutes(
	router *gin.Engine,
	questionCtrl *adminctrl.QuestionController,
	reviewCtrl *adminctrl.ReviewController,
	retestCtrl *adminctrl.RetestController,
	sessionCtrl *userctrl.SessionController,
	resultCtrl *userctrl.ResultController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		questions := adminAPIGroup.Group("/questions")
		questions.POST("", questionCtrl.CreateQuestion)
		questions.GET("", questionCtrl.ListQuestions)
		questions.GET("/:question_id", questionCtrl.GetQuestion)
		questions.PUT("/:question_id", questionCtrl.UpdateQuestion)
		questions.DELETE("/:question_id", questionCtrl.DeleteQuestion)

		adminAPIGroup.GET("/subjective-answers/pending", reviewCtrl.PendingQueue)
		adminAPIGroup.POST("/subjective-answers/:answer_id/ai-grade", reviewCtrl.GradePending)
		adminAPIGroup.POST("/subjective-answers/:answer_id/approve", reviewCtrl.Approve)
		adminAPIGroup.POST("/subjective-answers/:answer_id/override", reviewCtrl.Override)
		adminAPIGroup.GET("/results/:result_id/subjective-answers", reviewCtrl.ResultAnswers)

		adminAPIGroup.POST("/retests", retestCtrl.CreateRetest)
		adminAPIGroup.GET("/retests", retestCtrl.ListRetests)
	}

	userAPIGroup := router.Group("/api/v1")
	{
		sessions := userAPIGroup.Group("/sessions")
		sessions.POST("", sessionCtrl.StartSession)
		sessions.GET("/:session_id", sessionCtrl.GetSession)
		sessions.DELETE("/:session_id", sessionCtrl.DiscardSession)
		sessions.PUT("/:session_id/cursor", sessionCtrl.MoveCursor)
		sessions.POST("/:session_id/questions/:index/options/:option", sessionCtrl.ToggleOption)
		sessions.PUT("/:session_id/answers/:question_id", sessionCtrl.SetAnswer)
		sessions.POST("/:session_id/answers/:question_id/grading", sessionCtrl.RequestGrading)
		sessions.POST("/:session_id/submit", sessionCtrl.SubmitSession)

		userAPIGroup.GET("/users/:user_id/results", resultCtrl.ListResults)
		userAPIGroup.GET("/users/:user_id/retests", resultCtrl.ListRetests)
		userAPIGroup.GET("/results/:result_id", resultCtrl.GetResult)
		userAPIGroup.GET("/results/:result_id/review", resultCtrl.ReviewPage)
		userAPIGroup.POST("/results/:result_id/review", resultCtrl.SubmitReview)
		userAPIGroup.GET("/results/:result_id/review/history", resultCtrl.ReviewHistory)
	}
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	questionCtrl *adminctrl.QuestionController,
	reviewCtrl *adminctrl.ReviewController,
	retestCtrl *adminctrl.RetestController,
	sessionCtrl *userctrl.SessionController,
	resultCtrl *userctrl.ResultController,
) {
	RegisterRoutes(router, questionCtrl, reviewCtrl, retestCtrl, sessionCtrl, resultCtrl)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Quiz API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
