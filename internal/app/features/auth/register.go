// internal/app/features/auth/register.go
package auth

import (
	"context"
	"net/http"

	userstore "github.com/deadlinesdragons/questhub/internal/app/store/users"
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"github.com/deadlinesdragons/questhub/internal/app/system/timeouts"
	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"go.uber.org/zap"
)

type registerInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// HandleRegister creates a new student account and returns a signed
// token so the client is logged in immediately.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	if in.Username == "" || in.Email == "" || in.Password == "" {
		httpjson.BadRequest(w, "Please provide username, email and password")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users := userstore.New(h.DB)
	created, err := users.Create(ctx, models.User{
		Username: in.Username,
		Email:    in.Email,
		FullName: in.FullName,
		Role:     models.RoleStudent,
	}, in.Password)
	if err != nil {
		if userstore.IsClientError(err) {
			httpjson.BadRequest(w, err.Error())
			return
		}
		h.ErrLog.ServerError(w, "register: create user failed", err)
		return
	}

	token, err := h.Tokens.Issue(created.ID.Hex())
	if err != nil {
		h.ErrLog.ServerError(w, "register: token issue failed", err)
		return
	}

	h.Log.Info("user registered",
		zap.String("user_id", created.ID.Hex()),
		zap.String("username", created.Username))

	httpjson.Write(w, http.StatusCreated, map[string]any{
		"msg":   "User registered successfully",
		"token": token,
		"user":  created,
	})
}
