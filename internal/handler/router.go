package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/aventureros/clubsync-api/internal/middleware"
	"github.com/aventureros/clubsync-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Sync     *SyncHandler
	Class    *ClassHandler
	Sessions *SessionHandler
	Planner  *PlannerHandler
	Exports  *ExportHandler
	Auth     *AuthHandler
	Events   *EventsHandler
	Metrics  *service.MetricsService
}

// RegisterRoutes mounts the API surface under prefix plus the operational
// endpoints at the root.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, docs bool) {
	r.Use(middleware.Metrics(h.Metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}
	if docs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group(prefix)

	v1.POST("/sync/prefetch", h.Sync.Prefetch)
	v1.POST("/sync/push", h.Sync.Push)
	v1.GET("/status", h.Sync.Status)

	v1.GET("/class", h.Class.Profile)
	v1.GET("/roster", h.Class.Roster)
	v1.GET("/plan", h.Class.Plan)

	v1.POST("/sessions/close", h.Sessions.Close)

	v1.POST("/plans", h.Planner.Create)
	v1.GET("/planner/month", h.Planner.Month)

	v1.GET("/exports/progress.csv", h.Exports.AttendanceCSV)
	v1.GET("/exports/progress.pdf", h.Exports.AttendancePDF)

	v1.POST("/auth/logout", h.Auth.Logout)
	v1.GET("/events", h.Events.Stream)
}
