// internal/app/features/tasks/delete.go
package tasks

import (
	"context"
	"errors"
	"net/http"

	projectstore "github.com/deadlinesdragons/questhub/internal/app/store/projects"
	taskstore "github.com/deadlinesdragons/questhub/internal/app/store/tasks"
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"github.com/deadlinesdragons/questhub/internal/app/system/timeouts"
	"github.com/deadlinesdragons/questhub/internal/app/system/txn"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleDeleteTask deletes a task and pulls its id from the owning
// project's task list.
func (h *Handler) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "taskId"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid task ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasks := taskstore.New(h.DB)
	task, err := tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "Task not found")
			return
		}
		h.ErrLog.ServerError(w, "task delete: lookup failed", err)
		return
	}

	projects := projectstore.New(h.DB)
	err = txn.WithTxn(ctx, h.DB.Client(), func(ctx context.Context) error {
		if err := tasks.Delete(ctx, taskID); err != nil {
			return err
		}
		return projects.PullTask(ctx, task.ProjectID, taskID)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "Task not found")
			return
		}
		h.ErrLog.ServerError(w, "task delete failed", err)
		return
	}

	h.Log.Info("task deleted",
		zap.String("task_id", taskID.Hex()),
		zap.String("project_id", task.ProjectID.Hex()))

	httpjson.Write(w, http.StatusOK, map[string]any{
		"msg": "Task deleted successfully",
	})
}
