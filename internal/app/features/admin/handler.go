// internal/app/features/admin/handler.go
package admin

import (
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the admin feature,
// which serves the mentor/coordinator dashboard views.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *httpjson.ErrorLogger
}

// NewHandler constructs the admin Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: httpjson.NewErrorLogger(logger),
	}
}
