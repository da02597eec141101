// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown is invoked during WAFFLE's shutdown phase, after the HTTP server
// has stopped accepting new requests and in-flight requests have drained (or
// the shutdown timeout has elapsed).
//
// The context has a timeout (default 10 seconds); if cleanup takes too long
// it will be cancelled. A returned error is logged but does not prevent the
// process from exiting.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	var firstErr error

	// Stop background watchers first so nothing re-fetches during teardown.
	if backgroundCancel != nil {
		backgroundCancel()
	}
	if settingsCache != nil {
		settingsCache.Close()
	}
	if heroSync != nil {
		heroSync.Close()
	}
	if admissionsSync != nil {
		admissionsSync.Close()
	}
	if messagesSync != nil {
		messagesSync.Close()
	}

	// Stop the task runner; a dispatch in progress gets to finish.
	if taskRunner != nil {
		logger.Info("stopping background task runner")
		if err := taskRunner.Stop(ctx); err != nil {
			logger.Warn("background task runner did not stop cleanly", zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	// Disconnect MongoDB client
	if deps.MongoClient != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}
