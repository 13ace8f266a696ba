// internal/app/features/auth/handler.go
package auth

import (
	"github.com/deadlinesdragons/questhub/internal/app/system/auth"
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the auth feature:
// register, login, logout, and the current-user endpoint.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *httpjson.ErrorLogger
	Tokens *auth.TokenManager
}

// NewHandler constructs the auth Handler. Called from the bootstrap
// BuildHandler function with the already-initialized dependencies.
func NewHandler(db *mongo.Database, logger *zap.Logger, tokens *auth.TokenManager) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: httpjson.NewErrorLogger(logger),
		Tokens: tokens,
	}
}
