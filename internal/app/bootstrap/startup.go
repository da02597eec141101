// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/ydpps/schoolcms/internal/app/settingscache"
	"github.com/ydpps/schoolcms/internal/app/store/admissions"
	"github.com/ydpps/schoolcms/internal/app/store/heroslides"
	"github.com/ydpps/schoolcms/internal/app/store/messages"
	"github.com/ydpps/schoolcms/internal/app/store/outbox"
	"github.com/ydpps/schoolcms/internal/app/store/sitesettings"
	appsync "github.com/ydpps/schoolcms/internal/app/sync"
	"github.com/ydpps/schoolcms/internal/app/sync/mongosource"
	"github.com/ydpps/schoolcms/internal/app/system/tasks"
	"github.com/ydpps/schoolcms/internal/app/system/timeouts"
	"github.com/ydpps/schoolcms/internal/domain/models"
)

// watchRetryDelay is the pause before re-establishing a change stream or
// settings watch that ended.
const watchRetryDelay = 5 * time.Second

// Background state shared between Startup, BuildHandler, and Shutdown.
// WAFFLE calls these hooks in order from a single goroutine, so plain
// package-level variables are fine here.
var (
	taskRunner    *tasks.Runner
	settingsCache *settingscache.Cache

	heroSync       *appsync.Synchronizer[models.HeroSlide]
	admissionsSync *appsync.Synchronizer[models.AdmissionApplication]
	messagesSync   *appsync.Synchronizer[models.ContactMessage]

	backgroundCancel context.CancelFunc
)

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// It starts the long-lived background pieces:
//   - the settings cache, which follows the settings document via a change
//     stream and serves merged snapshots to every request
//   - the push-mode synchronizers that feed the SSE streams for hero slides,
//     admission applications, and contact messages
//   - the task runner that dispatches the notification outbox
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	if n := timeouts.ConfigureFromEnv(); n > 0 {
		logger.Info("timeout tiers configured from environment", zap.Int("overrides", n))
	}

	bgCtx, cancel := context.WithCancel(context.Background())
	backgroundCancel = cancel

	// Settings cache: defaults are served until the first load completes.
	settingsCache = settingscache.New(sitesettings.New(db), models.DefaultSiteSettings(), logger)
	go runWithRetry(bgCtx, logger, "settings cache", settingsCache.Run)

	// Push-mode synchronizers over change streams. Each re-fetches its whole
	// result set on every change signal; the SSE endpoints subscribe to them.
	heroSync = appsync.New[models.HeroSlide](
		mongosource.New[models.HeroSlide](db.Collection(heroslides.CollectionName), "order", mongosource.Ascending, 0, logger),
		logger)
	admissionsSync = appsync.New[models.AdmissionApplication](
		mongosource.New[models.AdmissionApplication](db.Collection(admissions.CollectionName), "created_at", mongosource.Descending, 0, logger),
		logger)
	messagesSync = appsync.New[models.ContactMessage](
		mongosource.New[models.ContactMessage](db.Collection(messages.CollectionName), "created_at", mongosource.Descending, 0, logger),
		logger)

	go runWithRetry(bgCtx, logger, "hero slide sync", heroSync.Run)
	go runWithRetry(bgCtx, logger, "admissions sync", admissionsSync.Run)
	go runWithRetry(bgCtx, logger, "contact message sync", messagesSync.Run)

	startTaskRunner(db, deps, logger)

	return nil
}

// runWithRetry keeps a watch-based loop alive. Change streams end when the
// server closes them or a network partition outlasts the driver's resume
// window; re-establishing the watch from scratch is the recovery.
func runWithRetry(ctx context.Context, logger *zap.Logger, name string, run func(context.Context) error) {
	for {
		if err := run(ctx); err != nil {
			logger.Warn("background watcher failed",
				zap.String("watcher", name), zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(watchRetryDelay):
		}
		logger.Info("restarting background watcher", zap.String("watcher", name))
	}
}

// startTaskRunner initializes and starts the background task runner.
func startTaskRunner(db *mongo.Database, deps DBDeps, logger *zap.Logger) {
	taskRunner = tasks.New(logger)

	outboxStore := outbox.New(db)
	taskRunner.Register(tasks.OutboxDispatchJob(outboxStore, deps.Mailer, logger))
	taskRunner.Register(tasks.OutboxCleanupJob(outboxStore, logger))

	taskRunner.Start()
}
