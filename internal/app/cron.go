package app

import (
	"context"
	"fmt"
	"time"

	"github.com/regwatch/core/internal/config"
	"github.com/regwatch/core/internal/modules/monitor"
	pkgcron "github.com/regwatch/core/internal/pkg/cron"
	"github.com/regwatch/core/internal/pkg/taskqueue"
	"go.uber.org/zap"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, monitorSvc *monitor.Service,
	taskSvc *taskqueue.Service, cfg *config.AppConfig, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")

	sched.Register(pkgcron.Job{
		Name:        "poll_sources",
		Description: "Poll monitored regulatory sources for changes",
		Interval:    time.Duration(cfg.Monitor.IntervalSeconds) * time.Second,
		Fn: func(ctx context.Context) error {
			changes, checked, err := monitorSvc.PollAll(ctx)
			if err != nil {
				cronLogger.Warn("source poll failed", zap.Error(err))
				return err
			}
			cronLogger.Info(fmt.Sprintf("source poll finished, %d of %d sources changed", changes, checked))
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "cleanup_tasks",
		Description: "Delete completed queue tasks older than 7 days",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			cutoff := time.Now().AddDate(0, 0, -7).UnixMilli()
			if err := taskSvc.DeleteCompleted(ctx, cutoff); err != nil {
				cronLogger.Warn("task cleanup failed", zap.Error(err))
				return err
			}
			return nil
		},
	})
}
