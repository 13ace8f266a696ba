// internal/app/features/teams/leave.go
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
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleLeaveTeam removes the caller from their team. The lead cannot
// leave; they must hand off leadership first.
func (h *Handler) HandleLeaveTeam(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "Not authorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	teams := teamstore.New(h.DB)
	users := userstore.New(h.DB)

	team, err := teams.GetByMember(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "You are not in a team")
			return
		}
		h.ErrLog.ServerError(w, "team leave: lookup failed", err)
		return
	}
	if team.TeamLeadID == uid {
		httpjson.BadRequest(w, "Team lead cannot leave the team. Transfer leadership first.")
		return
	}

	err = txn.WithTxn(ctx, h.DB.Client(), func(ctx context.Context) error {
		if err := teams.RemoveMember(ctx, team.ID, uid); err != nil {
			return err
		}
		return users.SetTeam(ctx, uid, nil)
	})
	if err != nil {
		h.ErrLog.ServerError(w, "team leave failed", err)
		return
	}

	h.Log.Info("user left team",
		zap.String("team_id", team.ID.Hex()),
		zap.String("user_id", uid.Hex()))

	httpjson.Write(w, http.StatusOK, map[string]any{
		"msg": "Left team successfully",
	})
}
