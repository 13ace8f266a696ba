// internal/app/features/tasks/assign.go
package tasks

import (
	"context"
	"errors"
	"net/http"

	taskstore "github.com/deadlinesdragons/questhub/internal/app/store/tasks"
	userstore "github.com/deadlinesdragons/questhub/internal/app/store/users"
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"github.com/deadlinesdragons/questhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type assignInput struct {
	UserID string `json:"userId"`
}

// HandleAssign adds a user to a task's assignee set. Assigning an
// already-present user is a no-op; a fifth distinct assignee is a 400.
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	taskID, userID, ok := h.assignParams(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users := userstore.New(h.DB)
	if _, err := users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "User not found")
			return
		}
		h.ErrLog.ServerError(w, "task assign: user lookup failed", err)
		return
	}

	tasks := taskstore.New(h.DB)
	task, err := tasks.Assign(ctx, taskID, userID)
	if err != nil {
		switch {
		case errors.Is(err, taskstore.ErrTooManyAssignees):
			httpjson.BadRequest(w, err.Error())
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.NotFound(w, "Task not found")
		default:
			h.ErrLog.ServerError(w, "task assign failed", err)
		}
		return
	}

	h.Log.Info("user assigned to task",
		zap.String("task_id", taskID.Hex()),
		zap.String("user_id", userID.Hex()))

	httpjson.Write(w, http.StatusOK, task)
}

// HandleUnassign removes a user from a task's assignee set. Removing an
// absent user is a no-op.
func (h *Handler) HandleUnassign(w http.ResponseWriter, r *http.Request) {
	taskID, userID, ok := h.assignParams(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasks := taskstore.New(h.DB)
	task, err := tasks.Unassign(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.NotFound(w, "Task not found")
			return
		}
		h.ErrLog.ServerError(w, "task unassign failed", err)
		return
	}

	h.Log.Info("user unassigned from task",
		zap.String("task_id", taskID.Hex()),
		zap.String("user_id", userID.Hex()))

	httpjson.Write(w, http.StatusOK, task)
}

// assignParams parses the task id from the URL and the user id from the
// body, writing the 400 itself on failure.
func (h *Handler) assignParams(w http.ResponseWriter, r *http.Request) (taskID, userID primitive.ObjectID, ok bool) {
	taskID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "taskId"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid task ID")
		return taskID, userID, false
	}
	var in assignInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return taskID, userID, false
	}
	userID, err = primitive.ObjectIDFromHex(in.UserID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid user ID")
		return taskID, userID, false
	}
	return taskID, userID, true
}
