package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	_ "github.com/noah-isme/idu-staffing-board/api/swagger"
	"github.com/noah-isme/idu-staffing-board/internal/handler"
	"github.com/noah-isme/idu-staffing-board/internal/repository"
	"github.com/noah-isme/idu-staffing-board/internal/roster"
	"github.com/noah-isme/idu-staffing-board/internal/service"
	"github.com/noah-isme/idu-staffing-board/pkg/cache"
	"github.com/noah-isme/idu-staffing-board/pkg/config"
	"github.com/noah-isme/idu-staffing-board/pkg/database"
	appErrors "github.com/noah-isme/idu-staffing-board/pkg/errors"
	"github.com/noah-isme/idu-staffing-board/pkg/logger"
)

// @title IDU Staffing Board API
// @version 1.0.0
// @description Staffing assignment board for IDU blocks with DP conflict detection.
// @BasePath /api/v1
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	def, err := roster.Load(cfg.Roster.File, cfg.Roster.TimetableFeedPath)
	if err != nil {
		logr.Fatal("failed to load roster", zap.Error(err))
	}
	rosterIndex := service.BuildRosterIndex(def)
	timetable := service.ImportTimetable(def.TimetableFeed, rosterIndex.Names(), logr)
	logr.Info("roster loaded",
		zap.Int("year_groups", len(def.YearGroups)),
		zap.Int("feed_rows", timetable.Rows),
		zap.Int("dp_teachers", timetable.DPTeachers()),
	)

	metrics := service.NewMetricsService()
	validate := validator.New()
	checks := map[string]handler.Pinger{}

	gateway, sheet, db, err := buildGateway(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to init backing store", zap.Error(err))
	}
	if db != nil {
		defer db.Close()
		checks["postgres"] = handler.PingFunc(db.PingContext)
	}

	var cacheRepo service.CacheRepository
	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("snapshot cache disabled", zap.Error(err))
	} else if redisClient != nil {
		defer redisClient.Close()
		repo := repository.NewCacheRepository(redisClient)
		cacheRepo = repo
		checks["redis"] = repo
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Redis.SnapshotTTL, logr)

	syncSvc := service.NewSyncService(gateway, service.SyncConfig{
		Workers:    cfg.Sync.Workers,
		BufferSize: cfg.Sync.BufferSize,
		MaxRetries: cfg.Sync.MaxRetries,
		RetryDelay: cfg.Sync.RetryDelay,
		Timeout:    cfg.Sync.Timeout,
	}, metrics, logr)
	syncSvc.Start(ctx)

	availability := service.NewAvailabilityService(timetable, rosterIndex.ManualConflicts())
	boardSvc := service.NewBoardService(rosterIndex, availability, syncSvc, cacheSvc, metrics, validate, logr)
	if err := boardSvc.Bootstrap(ctx); err != nil {
		if appErrors.Is(err, appErrors.ErrGatewayNotConfigured) {
			logr.Warn("backing store not configured; set SHEET_SCRIPT_URL or PUT /sync/settings")
		} else {
			logr.Error("initial board load failed", zap.Error(err))
		}
	}

	settingsSvc := service.NewSyncSettingsService(scriptSettings(sheet), boardSvc, cacheSvc, validate, logr)
	locationSvc := service.NewLocationService(rosterIndex)
	exportSvc := service.NewExportService(boardSvc, logr, nil, nil, nil)

	scheduler, err := startRefreshCron(cfg.Sync.RefreshCron, boardSvc, logr)
	if err != nil {
		logr.Fatal("invalid REFRESH_CRON", zap.Error(err))
	}

	router := newRouter(cfg, logr, routes{
		board:        handler.NewBoardHandler(boardSvc),
		availability: handler.NewAvailabilityHandler(boardSvc),
		roster:       handler.NewRosterHandler(rosterIndex, boardSvc, locationSvc),
		sync:         handler.NewSyncHandler(boardSvc, syncSvc, settingsSvc),
		exports:      handler.NewExportHandler(exportSvc),
		metrics:      handler.NewMetricsHandler(metrics, checks),
		tokens:       service.NewTokenService(cfg.JWT.Secret),
		observer:     metrics,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "backend", cfg.Sync.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("server forced to shutdown", zap.Error(err))
	}
	syncSvc.Stop()
	if pending := syncSvc.Pending(); pending > 0 {
		logr.Warn("exiting with undelivered slot writes", zap.Int("pending", pending))
	}
}

func buildGateway(ctx context.Context, cfg *config.Config, logr *zap.Logger) (service.SyncGateway, *repository.SheetGateway, *sqlx.DB, error) {
	if cfg.Sync.Backend == config.SyncBackendPostgres {
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		return repository.NewSlotRepository(db, logr), nil, db, nil
	}
	sheet := repository.NewSheetGateway(cfg.Sheet.ScriptURL, cfg.Sheet.Timeout, logr)
	return sheet, sheet, nil, nil
}

// scriptSettings avoids handing a typed nil to the settings service.
func scriptSettings(sheet *repository.SheetGateway) service.ScriptURLStore {
	if sheet == nil {
		return nil
	}
	return sheet
}

func startRefreshCron(schedule string, board *service.BoardService, logr *zap.Logger) (*cron.Cron, error) {
	if schedule == "" || schedule == "off" {
		return nil, nil
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := board.Refresh(ctx); err != nil && !appErrors.Is(err, appErrors.ErrGatewayNotConfigured) {
			logr.Warn("scheduled refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	logr.Info("scheduled refresh enabled", zap.String("schedule", schedule))
	return c, nil
}
