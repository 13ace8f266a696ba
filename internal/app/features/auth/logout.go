// internal/app/features/auth/logout.go
package auth

import (
	"net/http"

	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
)

// HandleLogout acknowledges the logout. Tokens are stateless, so the
// client discards its copy; nothing is invalidated server-side.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, map[string]any{
		"msg": "Logged out successfully",
	})
}
