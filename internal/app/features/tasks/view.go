// internal/app/features/tasks/view.go
package tasks

import (
	"context"
	"time"

	userstore "github.com/deadlinesdragons/questhub/internal/app/store/users"
	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// taskView is the populated task shape: assignees are expanded into
// user summaries and the effective status is derived from the deadline.
type taskView struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	ProjectID   primitive.ObjectID `json:"project_id"`

	Assignees  []models.Summary `json:"assignees"`
	Difficulty string           `json:"difficulty"`
	Deadline   *time.Time       `json:"deadline,omitempty"`

	SubmissionLink   string `json:"submission_link,omitempty"`
	CompletionStatus string `json:"completion_status"`
	EffectiveStatus  string `json:"effective_status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// populateTask expands assignee references with one batched lookup.
func populateTask(ctx context.Context, db *mongo.Database, task models.Task) (taskView, error) {
	users := userstore.New(db)
	summaries, err := users.Summaries(ctx, task.Assignees)
	if err != nil {
		return taskView{}, err
	}

	view := taskView{
		ID:               task.ID,
		Name:             task.Name,
		Description:      task.Description,
		ProjectID:        task.ProjectID,
		Assignees:        make([]models.Summary, 0, len(task.Assignees)),
		Difficulty:       task.Difficulty,
		Deadline:         task.Deadline,
		SubmissionLink:   task.SubmissionLink,
		CompletionStatus: task.CompletionStatus,
		EffectiveStatus:  task.EffectiveStatus(time.Now().UTC()),
		CreatedAt:        task.CreatedAt,
		UpdatedAt:        task.UpdatedAt,
	}
	for _, a := range task.Assignees {
		if s, ok := summaries[a]; ok {
			view.Assignees = append(view.Assignees, s)
		}
	}
	return view, nil
}
