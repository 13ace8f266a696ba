// internal/app/features/tasks/create.go
package tasks

import (
	"context"
	"net/http"
	"time"

	projectstore "github.com/deadlinesdragons/questhub/internal/app/store/projects"
	taskstore "github.com/deadlinesdragons/questhub/internal/app/store/tasks"
	"github.com/deadlinesdragons/questhub/internal/app/system/httpjson"
	"github.com/deadlinesdragons/questhub/internal/app/system/timeouts"
	"github.com/deadlinesdragons/questhub/internal/app/system/txn"
	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createTaskInput struct {
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	ProjectID        string     `json:"projectId"`
	Assignees        []string   `json:"assignees"`
	Difficulty       string     `json:"difficulty"`
	Deadline         *time.Time `json:"deadline"`
	CompletionStatus string     `json:"completionStatus"`
}

// HandleCreateTask creates a task under an existing project and pushes
// its id onto the project's task list. Project existence is checked
// with an existence-only query.
func (h *Handler) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in createTaskInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	if in.Name == "" || in.ProjectID == "" {
		httpjson.BadRequest(w, "Please provide name and projectId")
		return
	}
	projectID, err := primitive.ObjectIDFromHex(in.ProjectID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid project ID")
		return
	}
	assignees := make([]primitive.ObjectID, 0, len(in.Assignees))
	for _, a := range in.Assignees {
		id, err := primitive.ObjectIDFromHex(a)
		if err != nil {
			httpjson.BadRequest(w, "Invalid assignee ID")
			return
		}
		assignees = append(assignees, id)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	projects := projectstore.New(h.DB)
	exists, err := projects.Exists(ctx, projectID)
	if err != nil {
		h.ErrLog.ServerError(w, "task create: project check failed", err)
		return
	}
	if !exists {
		httpjson.NotFound(w, "Project not found")
		return
	}

	tasks := taskstore.New(h.DB)
	var task models.Task
	err = txn.WithTxn(ctx, h.DB.Client(), func(ctx context.Context) error {
		var err error
		task, err = tasks.Create(ctx, models.Task{
			Name:             in.Name,
			Description:      in.Description,
			ProjectID:        projectID,
			Assignees:        assignees,
			Difficulty:       in.Difficulty,
			Deadline:         in.Deadline,
			CompletionStatus: in.CompletionStatus,
		})
		if err != nil {
			return err
		}
		return projects.PushTask(ctx, projectID, task.ID)
	})
	if err != nil {
		if taskstore.IsClientError(err) {
			httpjson.BadRequest(w, err.Error())
			return
		}
		h.ErrLog.ServerError(w, "task create failed", err)
		return
	}

	h.Log.Info("task created",
		zap.String("task_id", task.ID.Hex()),
		zap.String("project_id", projectID.Hex()))

	httpjson.Write(w, http.StatusCreated, task)
}
