// internal/app/features/teams/addmentor.go
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

type addMentorInput struct {
	TeamID   string `json:"teamId"`
	MentorID string `json:"mentorId"`
}

// HandleAddMentor assigns a mentor to a team. A mentor assigns
// themselves; an admin must name the mentor. The referenced user must
// hold the mentor role, checked here for a precise message and again by
// the store before the write.
func (h *Handler) HandleAddMentor(w http.ResponseWriter, r *http.Request) {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "Not authorized")
		return
	}

	var in addMentorInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	teamID, err := primitive.ObjectIDFromHex(in.TeamID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid team ID")
		return
	}

	mentorID := uid
	if role == models.RoleAdmin {
		if in.MentorID == "" {
			httpjson.BadRequest(w, "mentorId is required")
			return
		}
		mentorID, err = primitive.ObjectIDFromHex(in.MentorID)
		if err != nil {
			httpjson.BadRequest(w, "Invalid mentor ID")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users := userstore.New(h.DB)
	mentor, err := users.GetByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "Mentor not found")
			return
		}
		h.ErrLog.ServerError(w, "add mentor: user lookup failed", err)
		return
	}
	if mentor.Role != models.RoleMentor {
		httpjson.BadRequest(w, teamstore.ErrNotMentor.Error())
		return
	}

	teams := teamstore.New(h.DB)
	if err := teams.SetMentor(ctx, teamID, mentorID); err != nil {
		if teamstore.IsClientError(err) {
			httpjson.BadRequest(w, err.Error())
			return
		}
		h.ErrLog.ServerError(w, "add mentor failed", err)
		return
	}

	h.Log.Info("mentor assigned to team",
		zap.String("team_id", teamID.Hex()),
		zap.String("mentor_id", mentorID.Hex()))

	httpjson.Write(w, http.StatusOK, map[string]any{
		"msg": "Mentor added to team successfully",
	})
}
