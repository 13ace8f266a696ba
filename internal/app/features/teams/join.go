// internal/app/features/teams/join.go
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
	"github.com/deadlinesdragons/questhub/internal/app/system/txn"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type joinTeamInput struct {
	TeamID string `json:"teamID"`
}

// HandleJoinTeam adds the caller to an existing team, enforcing the
// one-team rule and the team's member cap.
func (h *Handler) HandleJoinTeam(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "Not authorized")
		return
	}

	var in joinTeamInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	teamID, err := primitive.ObjectIDFromHex(in.TeamID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid team ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	teams := teamstore.New(h.DB)
	users := userstore.New(h.DB)

	if _, err := teams.GetByMember(ctx, uid); err == nil {
		httpjson.BadRequest(w, "You are already in a team")
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		h.ErrLog.ServerError(w, "team join: membership check failed", err)
		return
	}

	team, err := teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "Team not found")
			return
		}
		h.ErrLog.ServerError(w, "team join: team lookup failed", err)
		return
	}
	if team.IsFull() {
		httpjson.BadRequest(w, "Team is full")
		return
	}

	err = txn.WithTxn(ctx, h.DB.Client(), func(ctx context.Context) error {
		if err := teams.AddMember(ctx, teamID, uid); err != nil {
			return err
		}
		return users.SetTeam(ctx, uid, &teamID)
	})
	if err != nil {
		h.ErrLog.ServerError(w, "team join failed", err)
		return
	}

	team, err = teams.GetByID(ctx, teamID)
	if err != nil {
		h.ErrLog.ServerError(w, "team join: reload failed", err)
		return
	}

	h.Log.Info("user joined team",
		zap.String("team_id", teamID.Hex()),
		zap.String("user_id", uid.Hex()))

	httpjson.Write(w, http.StatusOK, map[string]any{
		"msg":  "Joined team successfully",
		"team": team,
	})
}
