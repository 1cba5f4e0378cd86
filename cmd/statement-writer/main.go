package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Seebrasse345/mp-statement-writer/internal/handler"
	appmiddleware "github.com/Seebrasse345/mp-statement-writer/internal/middleware"
	"github.com/Seebrasse345/mp-statement-writer/internal/repository"
	"github.com/Seebrasse345/mp-statement-writer/internal/service"
	"github.com/Seebrasse345/mp-statement-writer/pkg/config"
	"github.com/Seebrasse345/mp-statement-writer/pkg/database"
	"github.com/Seebrasse345/mp-statement-writer/pkg/logger"
	corsmiddleware "github.com/Seebrasse345/mp-statement-writer/pkg/middleware/cors"
	reqidmiddleware "github.com/Seebrasse345/mp-statement-writer/pkg/middleware/requestid"

	"github.com/Seebrasse345/mp-statement-writer/internal/llm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		logr.Sugar().Fatalw("failed to ensure schema", "error", err)
	}

	completion, err := llm.NewOpenAIService(cfg.OpenAI)
	if err != nil {
		logr.Sugar().Fatalw("failed to init completion service", "error", err)
	}

	submissionRepo := repository.NewSubmissionRepository(db)
	statementRepo := repository.NewStatementRepository(db)

	if cfg.Seed.Enabled {
		seeder := service.NewSeedService(statementRepo, submissionRepo, logr)
		if err := seeder.Run(context.Background()); err != nil {
			logr.Sugar().Warnw("sample data seeding failed", "error", err)
		}
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	samplerSvc := service.NewSamplerService(statementRepo, submissionRepo, logr)
	workflowSvc := service.NewWorkflowService(samplerSvc, submissionRepo, statementRepo, completion, cfg.Generation, validate, logr, metricsSvc)
	historySvc := service.NewHistoryService(submissionRepo, statementRepo, logr)
	importSvc := service.NewImportService(statementRepo, logr)

	workflowHandler := handler.NewWorkflowHandler(workflowSvc)
	historyHandler := handler.NewHistoryHandler(historySvc)
	importHandler := handler.NewImportHandler(importSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(appmiddleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/workflow/submit", workflowHandler.Submit)
		api.POST("/workflow/regenerate", workflowHandler.Regenerate)
		api.POST("/workflow/accept", workflowHandler.Accept)
		api.GET("/workflow/session", workflowHandler.Session)
		api.GET("/tones", workflowHandler.Tones)

		api.GET("/submissions", historyHandler.ListSubmissions)
		api.GET("/submissions/:id", historyHandler.GetSubmission)
		api.GET("/statements", historyHandler.ListStatements)
		api.GET("/statements/:id", historyHandler.GetStatement)
		api.POST("/statements/import", importHandler.ImportStatements)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
