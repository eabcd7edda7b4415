package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/regwatch/core/internal/middleware"
	"github.com/regwatch/core/internal/modules/auth"
	"github.com/regwatch/core/internal/modules/monitor"
	"github.com/regwatch/core/internal/modules/regulation"
	"github.com/regwatch/core/internal/modules/report"
	"github.com/regwatch/core/internal/modules/system/core/health"
	"github.com/regwatch/core/internal/modules/tasks/crontask"
	pkgredis "github.com/regwatch/core/internal/pkg/redis"
	"github.com/regwatch/core/internal/pkg/response"
	"github.com/regwatch/core/internal/pkg/taskqueue"
)

func (a *App) registerRoutes(rc *pkgredis.Client, taskSvc *taskqueue.Service,
	regSvc *regulation.Service, monitorSvc *monitor.Service, reportSvc *report.Service) {
	r := a.router
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "regwatch-core",
		"version": "1.0.0",
	}

	api := r.Group("/api/v2")
	api.Use(middleware.OptionalAuth())

	// Rate limiting and idempotence run on every API route (requires Redis).
	api.Use(middleware.RateLimit(rc.Raw()))
	api.Use(middleware.Idempotence(rc.Raw()))

	api.GET("", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/info", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })
	api.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"data": "pong"}) })
	api.GET("/uptime", func(c *gin.Context) {
		uptimeMs := time.Since(processStart).Milliseconds()
		c.JSON(http.StatusOK, gin.H{
			"timestamp": uptimeMs,
			"humanize":  humanizeDuration(time.Duration(uptimeMs) * time.Millisecond),
		})
	})

	// Infrastructure
	health.RegisterRoutes(api, a.db, rc.Raw(), a.sched, authMW)

	// Auth
	auth.NewHandler(auth.NewService(a.db)).RegisterRoutes(api, authMW)

	// Regulation pipeline: upload, analysis, compliance checks
	regulation.NewHandler(regSvc, a.cfg.UploadsDir()).RegisterRoutes(api, authMW)

	// Source change monitoring
	monitor.NewHandler(monitorSvc).RegisterRoutes(api, authMW)

	// Report rendering and archive
	report.NewHandler(reportSvc).RegisterRoutes(api, authMW)

	// Cron task management (admin)
	crontask.NewHandler(a.sched, taskSvc).RegisterRoutes(api, authMW)
}

func humanizeDuration(d time.Duration) string {
	if d < time.Minute {
		return d.Truncate(time.Second).String()
	}
	if d < time.Hour {
		return d.Truncate(time.Minute).String()
	}
	if d < 24*time.Hour {
		return d.Truncate(time.Hour).String()
	}
	return d.Truncate(24 * time.Hour).String()
}
