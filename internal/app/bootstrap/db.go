// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"github.com/deadlinesdragons/questhub/internal/app/system/indexes"
	"go.uber.org/zap"
)

// EnsureSchema creates the unique and lookup indexes the API relies on
// (unique username/email, member and reference lookups).
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := indexes.EnsureAll(ctx, deps.QuesthubMongoDatabase); err != nil {
		logger.Error("index creation failed", zap.Error(err))
		return err
	}
	return nil
}
