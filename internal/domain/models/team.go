// internal/domain/models/team.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultTeamMaxSize caps team membership when no explicit max is set.
const DefaultTeamMaxSize = 4

// Team is a student party. The member list on the team document is
// authoritative; each member's User.TeamID back-reference is kept in
// sync by the create/join/leave write paths.
//
// Invariant: MentorID may only reference a user with role "mentor" and
// CoordinatorID a user with role "coordinator". The team store validates
// both before any write that sets them.
type Team struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name       string               `bson:"name" json:"name"`
	Members    []primitive.ObjectID `bson:"members" json:"members"`
	TeamLeadID primitive.ObjectID   `bson:"team_lead_id" json:"team_lead_id"`
	MaxSize    int                  `bson:"max_size" json:"max_size"` // 1..4

	MentorID      *primitive.ObjectID `bson:"mentor_id,omitempty" json:"mentor_id,omitempty"`
	CoordinatorID *primitive.ObjectID `bson:"coordinator_id,omitempty" json:"coordinator_id,omitempty"`
	ProjectID     *primitive.ObjectID `bson:"project_id,omitempty" json:"project_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasMember reports whether id is in the member list.
func (t *Team) HasMember(id primitive.ObjectID) bool {
	for _, m := range t.Members {
		if m == id {
			return true
		}
	}
	return false
}

// IsFull reports whether the team has reached its member cap.
func (t *Team) IsFull() bool {
	max := t.MaxSize
	if max <= 0 {
		max = DefaultTeamMaxSize
	}
	return len(t.Members) >= max
}
