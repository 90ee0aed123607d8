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

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	_ "github.com/aventureros/clubsync-api/api/swagger"
	"github.com/aventureros/clubsync-api/internal/handler"
	"github.com/aventureros/clubsync-api/internal/remote"
	"github.com/aventureros/clubsync-api/internal/repository"
	"github.com/aventureros/clubsync-api/internal/service"
	"github.com/aventureros/clubsync-api/pkg/config"
	"github.com/aventureros/clubsync-api/pkg/database"
	"github.com/aventureros/clubsync-api/pkg/logger"
	reqidmiddleware "github.com/aventureros/clubsync-api/pkg/middleware/requestid"
)

// @title ClubSync API
// @version 0.1.0
// @description Offline-first session dashboard for volunteer children's clubs
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

	db, err := database.NewSQLite(cfg.Store)
	if err != nil {
		logr.Sugar().Fatalw("failed to open local store", "path", cfg.Store.Path, "error", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logr.Sugar().Fatalw("failed to migrate local store", "error", err)
	}

	remoteClient := remote.NewClient(cfg.Remote, logr)

	notifier := repository.NewNotifier()
	classes := repository.NewClassRepository(db, notifier)
	children := repository.NewChildRepository(db, notifier)
	plans := repository.NewPlanRepository(db, notifier)
	progress := repository.NewProgressRepository(db, notifier)
	state := repository.NewStateRepository(db)
	tenants := repository.NewTenantRepository(db, notifier)

	metrics := service.NewMetricsService()
	validate := validator.New()

	identitySvc := service.NewIdentityService(remoteClient, state, cfg.Sync.HydrationTimeout, logr)
	prefetchSvc := service.NewPrefetchService(remoteClient, classes, children, plans, metrics, logr)
	syncSvc := service.NewSyncService(remoteClient, progress, metrics, logr)
	scheduler := service.NewPushScheduler(syncSvc, cfg.Sync, logr)
	sessionSvc := service.NewSessionService(progress, validate, scheduler, logr)
	plannerSvc := service.NewPlannerService(remoteClient, validate, logr)
	exportSvc := service.NewExportService(children, progress, logr)
	connectivity := service.NewConnectivityService(remoteClient, cfg.Sync.ProbeInterval, scheduler.TriggerPush, metrics, logr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler.Start(ctx)
	defer scheduler.Stop()
	connectivity.Start(ctx)
	defer connectivity.Stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Sync:     handler.NewSyncHandler(prefetchSvc, syncSvc, identitySvc, connectivity),
		Class:    handler.NewClassHandler(classes, children, plans, identitySvc),
		Sessions: handler.NewSessionHandler(sessionSvc),
		Planner:  handler.NewPlannerHandler(plannerSvc),
		Exports:  handler.NewExportHandler(exportSvc, identitySvc),
		Auth:     handler.NewAuthHandler(tenants, state, progress, logr),
		Events:   handler.NewEventsHandler(notifier),
		Metrics:  metrics,
	}, cfg.Env != config.EnvProduction)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "store", cfg.Store.Path)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
