package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/studyflow/scheduler-api/api/swagger"
	"github.com/studyflow/scheduler-api/internal/handler"
	internalmiddleware "github.com/studyflow/scheduler-api/internal/middleware"
	"github.com/studyflow/scheduler-api/internal/scheduler"
	"github.com/studyflow/scheduler-api/internal/service"
	"github.com/studyflow/scheduler-api/pkg/config"
	"github.com/studyflow/scheduler-api/pkg/logger"
	corsmiddleware "github.com/studyflow/scheduler-api/pkg/middleware/cors"
	reqidmiddleware "github.com/studyflow/scheduler-api/pkg/middleware/requestid"
)

// @title Study Scheduler API
// @version 1.0.0
// @description Constraint-based study-hour allocation for academic activities
// @BasePath /
// @schemes http

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	explorer := scheduler.NewExplorer(scheduler.Config{
		SearchTimeout: cfg.Scheduler.SearchTimeout,
		MaxSolutions:  cfg.Scheduler.MaxSolutions,
		Concurrent:    cfg.Scheduler.Concurrent,
	}, logr)
	schedulingSvc := service.NewSchedulingService(explorer, validator.New(), logr, metricsSvc, service.SchedulingConfig{
		ProposalTTL: cfg.Scheduler.ProposalTTL,
	})

	scheduleHandler := handler.NewScheduleHandler(schedulingSvc, cfg.Export.Enabled)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Prometheus)

	r.POST("/scheduler/logic/activity", scheduleHandler.Schedule)
	r.GET("/scheduler/proposals/:id", scheduleHandler.Proposal)
	r.GET("/scheduler/proposals/:id/export", scheduleHandler.Export)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
