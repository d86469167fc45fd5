package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/airside-lab/runwaysim-api/api/swagger"
	"github.com/airside-lab/runwaysim-api/internal/handler"
	"github.com/airside-lab/runwaysim-api/internal/middleware"
	"github.com/airside-lab/runwaysim-api/internal/repository"
	"github.com/airside-lab/runwaysim-api/internal/service"
	"github.com/airside-lab/runwaysim-api/pkg/cache"
	"github.com/airside-lab/runwaysim-api/pkg/config"
	"github.com/airside-lab/runwaysim-api/pkg/database"
	"github.com/airside-lab/runwaysim-api/pkg/jobs"
	"github.com/airside-lab/runwaysim-api/pkg/logger"
	corsmiddleware "github.com/airside-lab/runwaysim-api/pkg/middleware/cors"
	reqidmiddleware "github.com/airside-lab/runwaysim-api/pkg/middleware/requestid"
)

// @title Runway Simulation API
// @version 0.1.0
// @description What-if runway queue scheduling over imported flight schedules
// @BasePath /api/v1
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		} else {
			repo := repository.NewCacheRepository(redisClient, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cacheRepo != nil)

	flightRepo := repository.NewFlightRepository(db)
	disruptionRepo := repository.NewDisruptionRepository(db)
	simulationRepo := repository.NewSimulationRepository(db)

	flightSvc := service.NewFlightService(flightRepo, cfg.Imports.SheetName, logr)
	disruptionSvc := service.NewDisruptionService(disruptionRepo, nil, logr)
	peakSvc := service.NewPeakService(flightRepo, cfg.Simulation.DelayThresholdMinutes, cfg.Simulation.BacklogThreshold, logr)

	var simulationSvc *service.SimulationService
	queue := jobs.NewQueue("simulations", func(ctx context.Context, job jobs.Job) error {
		worker := service.NewSimulationWorker(simulationSvc, metricsSvc, cfg.Simulation.WorkerRetries, logr)
		return worker.Handle(ctx, job)
	}, jobs.QueueConfig{
		Workers:    cfg.Simulation.WorkerConcurrency,
		MaxRetries: cfg.Simulation.WorkerRetries,
		RetryDelay: 2 * time.Second,
		Logger:     logr,
	})
	simulationSvc = service.NewSimulationService(simulationRepo, flightRepo, disruptionRepo, peakSvc,
		queue, cacheSvc, nil, logr, cfg.Simulation)
	exportSvc := service.NewExportService(simulationRepo, simulationSvc, cfg.Exports.MaxRows, logr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.Start(ctx)
	defer queue.Stop()

	flightHandler := handler.NewFlightHandler(flightSvc, cfg.Imports.MaxFileSizeBytes)
	disruptionHandler := handler.NewDisruptionHandler(disruptionSvc)
	simulationHandler := handler.NewSimulationHandler(simulationSvc, exportSvc)
	peakHandler := handler.NewPeakHandler(peakSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/flights/import", flightHandler.Import)
		api.GET("/flights", flightHandler.List)

		api.POST("/disruptions", disruptionHandler.Create)
		api.GET("/disruptions", disruptionHandler.List)
		api.DELETE("/disruptions/:id", disruptionHandler.Delete)

		api.POST("/simulations", simulationHandler.Create)
		api.GET("/simulations/:id", simulationHandler.Get)
		api.GET("/simulations/:id/operations", simulationHandler.Operations)
		api.GET("/simulations/:id/backlog", simulationHandler.Backlog)
		api.GET("/simulations/:id/export", simulationHandler.Export)

		api.POST("/peaks/rebuild", peakHandler.Rebuild)
		api.GET("/peaks", peakHandler.List)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
