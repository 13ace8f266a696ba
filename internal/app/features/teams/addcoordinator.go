// internal/app/features/teams/addcoordinator.go
package teams

import (
	"context"
	"errors"
	"net/http"

	teamstore "github.com/deadlinesdragons/questhub/internal/app/store/teams"
	userstore "github.com/deadlinesdragons/questhub/internal/app/store/users"
	"github.com/deadlinesdragons/questhub/internal/app/system/authz"
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"github.com/deadlinesdragons/questhub/internal/app/system/timeouts"
	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type addCoordinatorInput struct {
	TeamID        string `json:"teamId"`
	CoordinatorID string `json:"coordinatorId"`
}

// HandleAddCoordinator assigns a coordinator to a team, symmetric with
// HandleAddMentor: coordinators assign themselves, admins name one.
func (h *Handler) HandleAddCoordinator(w http.ResponseWriter, r *http.Request) {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "Not authorized")
		return
	}

	var in addCoordinatorInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	teamID, err := primitive.ObjectIDFromHex(in.TeamID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid team ID")
		return
	}

	coordinatorID := uid
	if role == models.RoleAdmin {
		if in.CoordinatorID == "" {
			httpjson.BadRequest(w, "coordinatorId is required")
			return
		}
		coordinatorID, err = primitive.ObjectIDFromHex(in.CoordinatorID)
		if err != nil {
			httpjson.BadRequest(w, "Invalid coordinator ID")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users := userstore.New(h.DB)
	coordinator, err := users.GetByID(ctx, coordinatorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "Coordinator not found")
			return
		}
		h.ErrLog.ServerError(w, "add coordinator: user lookup failed", err)
		return
	}
	if coordinator.Role != models.RoleCoordinator {
		httpjson.BadRequest(w, teamstore.ErrNotCoordinator.Error())
		return
	}

	teams := teamstore.New(h.DB)
	if err := teams.SetCoordinator(ctx, teamID, coordinatorID); err != nil {
		if teamstore.IsClientError(err) {
			httpjson.BadRequest(w, err.Error())
			return
		}
		h.ErrLog.ServerError(w, "add coordinator failed", err)
		return
	}

	h.Log.Info("coordinator assigned to team",
		zap.String("team_id", teamID.Hex()),
		zap.String("coordinator_id", coordinatorID.Hex()))

	httpjson.Write(w, http.StatusOK, map[string]any{
		"msg": "Coordinator added to team successfully",
	})
}
