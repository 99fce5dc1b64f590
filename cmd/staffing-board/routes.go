package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/idu-staffing-board/internal/handler"
	"github.com/noah-isme/idu-staffing-board/internal/middleware"
	"github.com/noah-isme/idu-staffing-board/internal/models"
	"github.com/noah-isme/idu-staffing-board/pkg/config"
	"github.com/noah-isme/idu-staffing-board/pkg/logger"
	corsmiddleware "github.com/noah-isme/idu-staffing-board/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/idu-staffing-board/pkg/middleware/requestid"
)

type routes struct {
	board        *handler.BoardHandler
	availability *handler.AvailabilityHandler
	roster       *handler.RosterHandler
	sync         *handler.SyncHandler
	exports      *handler.ExportHandler
	metrics      *handler.MetricsHandler
	tokens       middleware.TokenValidator
	observer     middleware.RequestObserver
}

func newRouter(cfg *config.Config, logr *zap.Logger, h routes) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(h.observer))

	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	r.GET("/metrics", h.metrics.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	read := api.Group("")
	write := api.Group("")
	write.Use(middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst).Middleware())
	if cfg.JWT.Enabled {
		read.Use(middleware.JWT(h.tokens))
		write.Use(middleware.JWT(h.tokens), middleware.RequireRoles(models.RoleEditor))
	}

	read.GET("/board", h.board.Get)
	read.GET("/board/slot", h.board.Slot)
	read.GET("/availability/teacher", h.availability.Teacher)
	read.GET("/availability/location", h.availability.Location)
	read.GET("/roster/year-groups", h.roster.YearGroups)
	read.GET("/roster/sidebar", h.roster.Sidebar)
	read.GET("/locations", h.roster.Locations)
	read.GET("/sync/status", h.sync.Status)
	read.GET("/sync/settings", h.sync.Settings)
	read.GET("/exports/board", h.exports.Board)

	write.POST("/board/assignments", h.board.Assign)
	write.DELETE("/board/assignments", h.board.Unassign)
	write.PUT("/board/locations", h.board.AssignLocation)
	write.POST("/sync/refresh", h.sync.Refresh)
	write.PUT("/sync/settings", h.sync.UpdateSettings)

	return r
}
