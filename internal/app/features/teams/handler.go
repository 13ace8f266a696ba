// internal/app/features/teams/handler.go
package teams

import (
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the teams feature.
// Team writes that touch more than one document (create, join, leave,
// project linking) go through txn.WithTxn using the database's client.
type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	ErrLog  *httpjson.ErrorLogger
	MaxSize int // member cap for newly created teams
}

// NewHandler constructs the teams Handler. maxSize sets the member cap
// for new teams; zero means the model default.
func NewHandler(db *mongo.Database, logger *zap.Logger, maxSize int) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		ErrLog:  httpjson.NewErrorLogger(logger),
		MaxSize: maxSize,
	}
}
