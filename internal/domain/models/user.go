// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. Role gates route access and constrains which
// reference fields on a team may point at the user.
const (
	RoleStudent     = "student"
	RoleAdmin       = "admin"
	RoleMentor      = "mentor"
	RoleCoordinator = "coordinator"
)

// Player classes for the gamification layer. Mentors are always Captains
// and coordinators always Guild Masters; the rest are player-chosen.
const (
	ClassAdventurer  = "Adventurer"
	ClassWarrior     = "Warrior"
	ClassMage        = "Mage"
	ClassThief       = "Thief"
	ClassHealer      = "Healer"
	ClassCaptain     = "Captain"
	ClassGuildMaster = "Guild Master"
)

// User represents students, mentors, coordinators, and admins.
//
// NOTE:
//   - PasswordHash is never serialized to JSON; stores exclude it from
//     reads unless credentials are being checked.
//   - TeamID is a back-reference maintained alongside the team's member
//     list when a user creates, joins, or leaves a team.
type User struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Username     string              `bson:"username" json:"username"`
	UsernameCI   string              `bson:"username_ci" json:"-"` // lowercase, for unique index
	Email        string              `bson:"email" json:"email"`
	PasswordHash string              `bson:"password_hash,omitempty" json:"-"`
	Role         string              `bson:"role" json:"role"` // student | admin | mentor | coordinator
	FullName     string              `bson:"full_name,omitempty" json:"full_name,omitempty"`
	TeamID       *primitive.ObjectID `bson:"team_id,omitempty" json:"team_id,omitempty"`

	PlayerClass string `bson:"player_class" json:"player_class"`
	Health      int    `bson:"health" json:"health"` // 0..100

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ValidRole reports whether role is one of the four known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleAdmin, RoleMentor, RoleCoordinator:
		return true
	}
	return false
}

// ValidPlayerClass reports whether class is a known player class.
func ValidPlayerClass(class string) bool {
	switch class {
	case ClassAdventurer, ClassWarrior, ClassMage, ClassThief,
		ClassHealer, ClassCaptain, ClassGuildMaster:
		return true
	}
	return false
}

// ApplyClassForRole forces the player class mandated by privileged roles.
// Mentors are Captains and coordinators are Guild Masters regardless of
// what the user picked; other roles keep their class (defaulting to
// Adventurer when unset).
func (u *User) ApplyClassForRole() {
	switch u.Role {
	case RoleMentor:
		u.PlayerClass = ClassCaptain
	case RoleCoordinator:
		u.PlayerClass = ClassGuildMaster
	default:
		if u.PlayerClass == "" {
			u.PlayerClass = ClassAdventurer
		}
	}
}

// Summary is the trimmed user shape embedded in populated team and task
// responses.
type Summary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email,omitempty" json:"email,omitempty"`
	Role     string             `bson:"role,omitempty" json:"role,omitempty"`
	Health   int                `bson:"health,omitempty" json:"health,omitempty"`
}
