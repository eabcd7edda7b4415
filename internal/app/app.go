package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/regwatch/core/internal/config"
	"github.com/regwatch/core/internal/database"
	"github.com/regwatch/core/internal/middleware"
	"github.com/regwatch/core/internal/modules/monitor"
	"github.com/regwatch/core/internal/modules/regulation"
	"github.com/regwatch/core/internal/modules/report"
	pkgcron "github.com/regwatch/core/internal/pkg/cron"
	jwtpkg "github.com/regwatch/core/internal/pkg/jwt"
	"github.com/regwatch/core/internal/pkg/llm"
	pkgredis "github.com/regwatch/core/internal/pkg/redis"
	"github.com/regwatch/core/internal/pkg/taskqueue"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds all application dependencies.
type App struct {
	cfg    *config.AppConfig
	router *gin.Engine
	db     *gorm.DB
	logger *zap.Logger
	cancel context.CancelFunc
	sched  *pkgcron.Scheduler
}

// New initializes the application: config → DB → Redis → services → routes.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if secret := strings.TrimSpace(cfg.JWTSecret); secret != "" {
		jwtpkg.SetSecret(secret)
	} else {
		logger.Warn("jwt_secret is empty, using built-in default secret")
	}

	db, err := database.Connect(cfg, true)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	rc, err := pkgredis.Connect(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	gen, err := llm.New(cfg.AI)
	var generator llm.Generator = gen
	if err != nil {
		if !errors.Is(err, llm.ErrNoProvider) {
			return nil, fmt.Errorf("ai: %w", err)
		}
		logger.Warn("no AI provider configured, analysis will use fallback results")
		generator = disabledGenerator{}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(buildCORSConfig(cfg)))

	taskSvc := taskqueue.NewService(rc)
	regSvc := regulation.NewService(db, generator, taskSvc, logger)

	fetchTimeout := time.Duration(cfg.Monitor.FetchTimeoutSeconds) * time.Second
	monitorSvc := monitor.NewService(monitor.NewGormStore(db), generator, fetchTimeout, logger)

	archiver, err := report.NewArchiver(context.Background(), cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("s3: %w", err)
	}
	reportSvc := report.NewService(db, regSvc, archiver, cfg.ReportsDir(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	sched := pkgcron.New()
	registerCronJobs(sched, monitorSvc, taskSvc, cfg, logger)
	go sched.Start(ctx)

	app := &App{cfg: cfg, router: router, db: db, logger: logger, cancel: cancel, sched: sched}
	app.registerRoutes(rc, taskSvc, regSvc, monitorSvc, reportSvc)

	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown cleans up background goroutines.
func (a *App) Shutdown() { a.cancel() }

// disabledGenerator stands in when no AI provider is enabled; every call
// fails so callers take their fallback paths.
type disabledGenerator struct{}

func (disabledGenerator) Generate(context.Context, string, string) (string, error) {
	return "", llm.ErrNoProvider
}

var processStart = time.Now()
