// internal/app/features/auth/me.go
package auth

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/deadlinesdragons/questhub/internal/app/store/users"
	"github.com/deadlinesdragons/questhub/internal/app/system/authz"
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"github.com/deadlinesdragons/questhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeCurrentUser returns the authenticated user's profile, freshly
// loaded so it reflects role or team changes since the token was
// issued.
func (h *Handler) ServeCurrentUser(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w, "Not authorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	users := userstore.New(h.DB)
	user, err := users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "User not found")
			return
		}
		h.ErrLog.ServerError(w, "me: user lookup failed", err)
		return
	}

	httpjson.Write(w, http.StatusOK, user)
}
