// internal/app/features/tasks/get.go
package tasks

import (
	"context"
	"errors"
	"net/http"

	taskstore "github.com/deadlinesdragons/questhub/internal/app/store/tasks"
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"github.com/deadlinesdragons/questhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeTask returns a single task with assignees expanded.
func (h *Handler) ServeTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "taskId"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid task ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tasks := taskstore.New(h.DB)
	task, err := tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "Task not found")
			return
		}
		h.ErrLog.ServerError(w, "task get failed", err)
		return
	}

	view, err := populateTask(ctx, h.DB, task)
	if err != nil {
		h.ErrLog.ServerError(w, "task get: populate failed", err)
		return
	}
	httpjson.Write(w, http.StatusOK, view)
}
