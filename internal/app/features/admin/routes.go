// internal/app/features/admin/routes.go
package admin

import (
	"github.com/deadlinesdragons/questhub/internal/app/system/auth"
	"github.com/deadlinesdragons/questhub/internal/app/system/authz"
	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, tm *auth.TokenManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(tm.RequireSignedIn)
		pr.Use(authz.RequireRole(models.RoleMentor, models.RoleCoordinator))

		pr.Get("/my-teams", h.ServeMyTeams)
	})

	return r
}
