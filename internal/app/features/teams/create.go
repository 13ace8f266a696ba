// internal/app/features/teams/create.go
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
	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type createTeamInput struct {
	Name string `json:"name"`
}

// HandleCreateTeam creates a team with the caller as lead and sole
// member. The team insert and the caller's team back-reference are
// written in one transaction.
func (h *Handler) HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "Not authorized")
		return
	}

	var in createTeamInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
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
		h.ErrLog.ServerError(w, "team create: membership check failed", err)
		return
	}

	var team models.Team
	err := txn.WithTxn(ctx, h.DB.Client(), func(ctx context.Context) error {
		var err error
		team, err = teams.Create(ctx, in.Name, uid, h.MaxSize)
		if err != nil {
			return err
		}
		return users.SetTeam(ctx, uid, &team.ID)
	})
	if err != nil {
		if teamstore.IsClientError(err) {
			httpjson.BadRequest(w, err.Error())
			return
		}
		h.ErrLog.ServerError(w, "team create failed", err)
		return
	}

	h.Log.Info("team created",
		zap.String("team_id", team.ID.Hex()),
		zap.String("lead_id", uid.Hex()))

	httpjson.Write(w, http.StatusCreated, team)
}
