package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orchids/plays-registry/internal/config"
	"github.com/orchids/plays-registry/internal/service"
	"github.com/orchids/plays-registry/pkg/logger"
)

type RouterDeps struct {
	Config     *config.Config
	Log        *logger.Logger
	Plays      *service.PlayService
	Monitoring *service.MonitoringService
	// Inspector is nil when the task queue is disabled.
	Inspector *asynq.Inspector
	// AuditLogs is nil when auditing is disabled.
	AuditLogs AuditReader
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(deps.Log))
	router.Use(CORSMiddleware())

	playHandler := NewPlayHandler(deps.Plays, deps.Log, deps.Config.Plays)
	pageHandler := NewPageHandler(deps.Plays, deps.Log)
	adminHandler := NewAdminHandler(deps.Monitoring, deps.Inspector, deps.AuditLogs, deps.Log)

	router.GET("/health", healthHandler(deps.Monitoring))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", pageHandler.PlayListPage)
	router.GET("/plays/:id", pageHandler.PlayPage)

	plays := router.Group(playsBasePath)
	{
		plays.POST("", playHandler.CreatePlay)
		plays.GET("", playHandler.ListPlays)
		plays.GET("/:id", playHandler.GetPlay)
		plays.DELETE("/:id", playHandler.DeletePlay)
		plays.GET("/:id/stats", playHandler.GetPlayStats)
	}

	admin := router.Group("/api/admin")
	{
		admin.GET("/system", adminHandler.GetSystemMetrics)
		admin.GET("/queue/stats", adminHandler.GetQueueStats)
		admin.GET("/audit", adminHandler.GetAuditLogs)
	}

	return router
}

func healthHandler(monitoring *service.MonitoringService) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks, healthy := monitoring.CheckHealth(c.Request.Context())

		status := "healthy"
		httpStatus := http.StatusOK
		if !healthy {
			status = "unhealthy"
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":    status,
			"checks":    checks,
			"plays":     monitoring.GetStoreMetrics().Plays,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}
