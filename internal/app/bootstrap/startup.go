// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
// Questhub has no shared caches to warm; per-operation timeouts keep
// their defaults unless a future config key overrides them here.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("questhub starting",
		zap.String("env", coreCfg.Env),
		zap.Int("team_max_size", appCfg.TeamMaxSize))
	return nil
}
