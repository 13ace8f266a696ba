// internal/app/features/teams/me.go
package teams

import (
	"context"
	"errors"
	"net/http"

	teamstore "github.com/deadlinesdragons/questhub/internal/app/store/teams"
	"github.com/deadlinesdragons/questhub/internal/app/system/authz"
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"github.com/deadlinesdragons/questhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeMyTeam returns the caller's team with members, lead, mentor, and
// coordinator expanded into user summaries.
func (h *Handler) ServeMyTeam(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "Not authorized")
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
		h.ErrLog.ServerError(w, "team me: lookup failed", err)
		return
	}

	view, err := populateTeam(ctx, h.DB, team)
	if err != nil {
		h.ErrLog.ServerError(w, "team me: populate failed", err)
		return
	}
	httpjson.Write(w, http.StatusOK, view)
}
