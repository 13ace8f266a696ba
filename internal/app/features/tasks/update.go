// internal/app/features/tasks/update.go
package tasks

import (
	"context"
	"errors"
	"net/http"
	"time"

	taskstore "github.com/deadlinesdragons/questhub/internal/app/store/tasks"
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"github.com/deadlinesdragons/questhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type updateTaskInput struct {
	Name             *string    `json:"name"`
	Description      *string    `json:"description"`
	Difficulty       *string    `json:"difficulty"`
	Deadline         *time.Time `json:"deadline"`
	ClearDeadline    bool       `json:"clearDeadline"`
	SubmissionLink   *string    `json:"submissionLink"`
	CompletionStatus *string    `json:"completionStatus"`
}

// HandleUpdateTask patches a task's mutable fields. The owning project
// cannot be changed after creation.
func (h *Handler) HandleUpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "taskId"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid task ID")
		return
	}

	var in updateTaskInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasks := taskstore.New(h.DB)
	task, err := tasks.Apply(ctx, taskID, taskstore.Update{
		Name:             in.Name,
		Description:      in.Description,
		Difficulty:       in.Difficulty,
		Deadline:         in.Deadline,
		ClearDeadline:    in.ClearDeadline,
		SubmissionLink:   in.SubmissionLink,
		CompletionStatus: in.CompletionStatus,
	})
	if err != nil {
		switch {
		case taskstore.IsClientError(err):
			httpjson.BadRequest(w, err.Error())
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.NotFound(w, "Task not found")
		default:
			h.ErrLog.ServerError(w, "task update failed", err)
		}
		return
	}

	h.Log.Info("task updated", zap.String("task_id", taskID.Hex()))

	httpjson.Write(w, http.StatusOK, task)
}
