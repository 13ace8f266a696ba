// internal/app/features/auth/login.go
package auth

import (
	"context"
	"errors"
	"net/http"

	userstore "github.com/deadlinesdragons/questhub/internal/app/store/users"
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"github.com/deadlinesdragons/questhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and returns a signed token. Unknown
// email and wrong password produce the same 401 so the endpoint does
// not reveal which accounts exist.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	if in.Email == "" || in.Password == "" {
		httpjson.BadRequest(w, "Please provide email and password")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users := userstore.New(h.DB)
	user, err := users.GetByEmailWithPassword(ctx, in.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Unauthorized(w, "Invalid credentials")
			return
		}
		h.ErrLog.ServerError(w, "login: user lookup failed", err)
		return
	}
	if !userstore.CheckPassword(user.PasswordHash, in.Password) {
		httpjson.Unauthorized(w, "Invalid credentials")
		return
	}

	token, err := h.Tokens.Issue(user.ID.Hex())
	if err != nil {
		h.ErrLog.ServerError(w, "login: token issue failed", err)
		return
	}

	h.Log.Info("user logged in", zap.String("user_id", user.ID.Hex()))

	user.PasswordHash = ""
	httpjson.Write(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"user":    user,
	})
}
