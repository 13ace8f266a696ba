// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is the body of work a team is pursuing. A team holds at most
// one project at a time; Team.ProjectID and Project.TeamID reference each
// other and are linked/unlinked together by the team write paths.
//
// Tasks lists the project's task ids in creation order. Task.ProjectID is
// authoritative for ownership; this list exists so project reads can
// populate tasks without a collection scan.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	MentorID      *primitive.ObjectID `bson:"mentor_id,omitempty" json:"mentor_id,omitempty"`
	CoordinatorID *primitive.ObjectID `bson:"coordinator_id,omitempty" json:"coordinator_id,omitempty"`
	TeamID        *primitive.ObjectID `bson:"team_id,omitempty" json:"team_id,omitempty"`

	StartDate time.Time  `bson:"start_date" json:"start_date"`
	EndDate   *time.Time `bson:"end_date,omitempty" json:"end_date,omitempty"`

	Tasks []primitive.ObjectID `bson:"tasks" json:"tasks"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
