package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/tennisclub/court-admin/api/swagger"
	"github.com/tennisclub/court-admin/internal/client"
	"github.com/tennisclub/court-admin/internal/handler"
	"github.com/tennisclub/court-admin/internal/middleware"
	"github.com/tennisclub/court-admin/internal/repository"
	"github.com/tennisclub/court-admin/internal/service"
	"github.com/tennisclub/court-admin/internal/store"
	"github.com/tennisclub/court-admin/pkg/cache"
	"github.com/tennisclub/court-admin/pkg/config"
	"github.com/tennisclub/court-admin/pkg/jobs"
	"github.com/tennisclub/court-admin/pkg/logger"
	corsmiddleware "github.com/tennisclub/court-admin/pkg/middleware/cors"
	reqidmiddleware "github.com/tennisclub/court-admin/pkg/middleware/requestid"
	"github.com/tennisclub/court-admin/pkg/storage"
)

// @title Court Admin API
// @version 0.1.0
// @description Court blocking console for club administrators and teamsters
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, reference cache disabled", zap.Error(err))
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr.Named("cache"))
	defer cacheRepo.Close() //nolint:errcheck

	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr.Named("cache"), cfg.Cache.Enabled && redisClient != nil)

	backend := client.New(cfg.Backend, logr.Named("backend"), client.WithObserver(metrics))
	console, err := service.NewConsole(service.ConsoleDeps{
		Backend:  backend,
		Cache:    cacheSvc,
		Metrics:  metrics,
		Blocks:   cfg.Blocks,
		CacheTTL: cfg.Cache.TTL,
		Logger:   logr,
	})
	if err != nil {
		logr.Fatal("failed to wire console", zap.Error(err))
	}

	refreshQueue := jobs.NewQueue("references", console.References.HandleJob, jobs.QueueConfig{
		Workers: cfg.Reload.Workers,
		Logger:  logr.Named("jobs"),
	})
	console.References.SetQueue(refreshQueue)
	refreshQueue.Start(ctx)
	defer refreshQueue.Stop()

	var exportHandler *handler.ExportHandler
	if cfg.Exports.Enabled {
		files, err := storage.NewExportStore(cfg.Exports.StorageDir)
		if err != nil {
			logr.Fatal("failed to prepare export storage", zap.Error(err))
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exports := service.NewExportService(backend.Blocks(), console.Loader, files, signer,
			service.ExportConfig{APIPrefix: cfg.APIPrefix, ResultTTL: cfg.Exports.SignedURLTTL}, logr.Named("exports"), nil, nil)
		exportHandler = handler.NewExportHandler(exports)
		go every(ctx, cfg.Exports.CleanupInterval, func() {
			removed, err := exports.Cleanup(0)
			if err != nil {
				logr.Warn("export cleanup failed", zap.Error(err))
				return
			}
			if len(removed) > 0 {
				logr.Info("expired exports removed", zap.Int("count", len(removed)))
			}
		})
	}

	sessions := store.NewSessions(cfg.Session.IdleTTL)
	go every(ctx, cfg.Session.SweepInterval, func() {
		if n := sessions.Sweep(); n > 0 {
			logr.Debug("idle sessions dropped", zap.Int("count", n))
		}
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(corsmiddleware.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		SessionHeaders: []string{middleware.SessionHeader},
	}))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(metrics))

	metricsHandler := handler.NewMetricsHandler(metrics, map[string]handler.Pinger{"redis": cacheRepo})
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/summary", metricsHandler.Snapshot)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	public := r.Group(cfg.APIPrefix)
	allowServiceAdmin := cfg.Backend.AllowServiceAdmin && cfg.Backend.Token != ""
	if allowServiceAdmin {
		logr.Warn("requests without a token act as administrator (ALLOW_SERVICE_ADMIN)")
	}
	api := r.Group(cfg.APIPrefix, middleware.UpstreamToken(allowServiceAdmin), middleware.Session(sessions))
	handler.RegisterRoutes(public, api, handler.Handlers{
		Blocks:     handler.NewBlockHandler(console.BlockForm, console.Loader, console.BulkDelete),
		Bulk:       handler.NewBulkHandler(console.BulkDelete, console.BulkEdit),
		Series:     handler.NewSeriesHandler(console.Series),
		Templates:  handler.NewTemplateHandler(console.Templates),
		References: handler.NewReferenceHandler(console.References),
		Courts:     handler.NewCourtHandler(backend.Courts()),
		Exports:    exportHandler,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "backend", backend.BaseURL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
}

func every(ctx context.Context, interval time.Duration, fn func()) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}
