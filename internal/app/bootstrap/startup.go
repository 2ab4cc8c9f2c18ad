// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and index setup are complete, but
// before the HTTP handler is built and requests are served.
//
// This app has no templates to load, no seed data, and no background
// workers: activity import is push-driven through the API, and both
// configuration stores create their documents lazily on first write. The
// hook stays in place for the day that changes.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("stridedash ready",
		zap.String("database", appCfg.MongoDatabase),
	)
	return nil
}
