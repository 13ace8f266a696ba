// internal/app/features/teams/routes.go
package teams

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

		pr.Get("/me", h.ServeMyTeam)
		pr.Post("/create", h.HandleCreateTeam)
		pr.Post("/join", h.HandleJoinTeam)
		pr.Delete("/leave", h.HandleLeaveTeam)
		pr.Patch("/change-lead", h.HandleChangeLead)
		pr.Patch("/add-project", h.HandleAddProject)

		pr.With(authz.RequireRole(models.RoleAdmin, models.RoleMentor)).
			Patch("/add-mentor", h.HandleAddMentor)
		pr.With(authz.RequireRole(models.RoleAdmin, models.RoleCoordinator)).
			Patch("/add-coordinator", h.HandleAddCoordinator)
		pr.With(authz.RequireRole(models.RoleMentor, models.RoleCoordinator, models.RoleAdmin)).
			Patch("/remove-project", h.HandleRemoveProject)
	})

	return r
}
