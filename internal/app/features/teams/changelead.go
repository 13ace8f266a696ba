// internal/app/features/teams/changelead.go
package teams

import (
	"context"
	"errors"
	"net/http"

	teamstore "github.com/deadlinesdragons/questhub/internal/app/store/teams"
	"github.com/deadlinesdragons/questhub/internal/app/system/authz"
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"github.com/deadlinesdragons/questhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type changeLeadInput struct {
	NewLeadID string `json:"newLeadId"`
}

// HandleChangeLead transfers team leadership. Only the current lead may
// do this, and only to an existing member.
func (h *Handler) HandleChangeLead(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "Not authorized")
		return
	}

	var in changeLeadInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	newLead, err := primitive.ObjectIDFromHex(in.NewLeadID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid user ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	teams := teamstore.New(h.DB)
	team, err := teams.GetByMember(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "You are not in a team")
			return
		}
		h.ErrLog.ServerError(w, "change lead: team lookup failed", err)
		return
	}
	if team.TeamLeadID != uid {
		httpjson.Forbidden(w, "Only the team lead can transfer leadership")
		return
	}
	if !team.HasMember(newLead) {
		httpjson.BadRequest(w, "New lead must be a member of the team")
		return
	}

	if err := teams.SetLead(ctx, team.ID, newLead); err != nil {
		h.ErrLog.ServerError(w, "change lead failed", err)
		return
	}

	h.Log.Info("team lead changed",
		zap.String("team_id", team.ID.Hex()),
		zap.String("new_lead_id", newLead.Hex()))

	httpjson.Write(w, http.StatusOK, map[string]any{
		"msg": "Team lead changed successfully",
	})
}
