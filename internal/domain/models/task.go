// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Task completion states.
const (
	StatusCompleted         = "completed"
	StatusInProgress        = "in-progress"
	StatusNotStarted        = "not-started"
	StatusCancelled         = "cancelled"
	StatusOverdue           = "overdue"
	StatusWaitingForGrading = "waiting-for-grading"
)

// MaxAssignees caps how many users can be assigned to a single task.
const MaxAssignees = 4

// Task is a unit of work inside a project. Assignees has set semantics:
// assigning an already-present user or unassigning an absent one is a
// no-op, and the set never exceeds MaxAssignees.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	ProjectID   primitive.ObjectID `bson:"project_id" json:"project_id"`

	Assignees  []primitive.ObjectID `bson:"assignees" json:"assignees"`
	Difficulty string               `bson:"difficulty" json:"difficulty"` // easy | medium | hard
	Deadline   *time.Time           `bson:"deadline,omitempty" json:"deadline,omitempty"`

	SubmissionLink   string `bson:"submission_link,omitempty" json:"submission_link,omitempty"`
	CompletionStatus string `bson:"completion_status" json:"completion_status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidDifficulty reports whether d is a known difficulty.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ValidCompletionStatus reports whether s is a known completion state.
func ValidCompletionStatus(s string) bool {
	switch s {
	case StatusCompleted, StatusInProgress, StatusNotStarted,
		StatusCancelled, StatusOverdue, StatusWaitingForGrading:
		return true
	}
	return false
}

// EffectiveStatus derives the status shown to clients: a task that is
// still not-started or in-progress after its deadline reads as overdue.
// Completed and cancelled tasks keep their stored status.
func (t *Task) EffectiveStatus(now time.Time) string {
	if t.CompletionStatus == StatusCompleted || t.CompletionStatus == StatusCancelled {
		return t.CompletionStatus
	}
	if t.Deadline != nil && t.Deadline.Before(now) &&
		(t.CompletionStatus == StatusInProgress || t.CompletionStatus == StatusNotStarted) {
		return StatusOverdue
	}
	return t.CompletionStatus
}
