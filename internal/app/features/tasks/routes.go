// internal/app/features/tasks/routes.go
package tasks

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

		pr.Get("/{taskId}", h.ServeTask)

		// Task mutation is the mentor's job.
		pr.Group(func(mr chi.Router) {
			mr.Use(authz.RequireRole(models.RoleMentor))

			mr.Post("/", h.HandleCreateTask)
			mr.Put("/{taskId}", h.HandleUpdateTask)
			mr.Delete("/{taskId}", h.HandleDeleteTask)
			mr.Patch("/{taskId}/assign", h.HandleAssign)
			mr.Patch("/{taskId}/unassign", h.HandleUnassign)
		})
	})

	return r
}
