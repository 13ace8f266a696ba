// internal/app/store/teams/teamstore.go
package teamstore

import (
	"context"
	"errors"
	"time"

	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("teams"),
		users: db.Collection("users"),
	}
}

var (
	// ErrNotMentor is returned when mentor_id would reference a user
	// that does not hold the mentor role.
	ErrNotMentor = errors.New(`mentorId can only be set to a user with the "mentor" role`)
	// ErrNotCoordinator is the coordinator_id counterpart.
	ErrNotCoordinator = errors.New(`coordinatorId can only be set to a user with the "coordinator" role`)

	errNoName  = errors.New("Team name is required")
	errBadName = errors.New("Team name cannot be more than 50 characters")
)

// IsClientError reports whether err's message is safe to return to the
// API caller as a 400.
func IsClientError(err error) bool {
	for _, e := range []error{ErrNotMentor, ErrNotCoordinator, errNoName, errBadName} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// validateRoleRef enforces the reference-role invariant: the referenced
// user must exist and hold exactly the expected role. Every write that
// sets mentor_id or coordinator_id calls this first.
func (s *Store) validateRoleRef(ctx context.Context, id primitive.ObjectID, role string, refErr error) error {
	n, err := s.users.CountDocuments(ctx, bson.M{"_id": id, "role": role})
	if err != nil {
		return err
	}
	if n == 0 {
		return refErr
	}
	return nil
}

// GetByID loads a team by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Team, error) {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

// GetByMember finds the team whose member list contains userID.
// Returns mongo.ErrNoDocuments if the user is not in any team.
func (s *Store) GetByMember(ctx context.Context, userID primitive.ObjectID) (models.Team, error) {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"members": userID}).Decode(&t); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

// GetByLead finds the team led by userID.
func (s *Store) GetByLead(ctx context.Context, userID primitive.ObjectID) (models.Team, error) {
	var t models.Team
	if err := s.c.FindOne(ctx, bson.M{"team_lead_id": userID}).Decode(&t); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

// Create inserts a new team with the creator as lead and sole member.
// maxSize is clamped to 1..DefaultTeamMaxSize; zero means the default.
// The caller is responsible for checking the creator is not already in a
// team and for updating the creator's back-reference.
func (s *Store) Create(ctx context.Context, name string, lead primitive.ObjectID, maxSize int) (models.Team, error) {
	if name == "" {
		return models.Team{}, errNoName
	}
	if len(name) > 50 {
		return models.Team{}, errBadName
	}
	if maxSize < 1 || maxSize > models.DefaultTeamMaxSize {
		maxSize = models.DefaultTeamMaxSize
	}
	now := time.Now().UTC()
	t := models.Team{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Members:    []primitive.ObjectID{lead},
		TeamLeadID: lead,
		MaxSize:    maxSize,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Team{}, err
	}
	return t, nil
}

// AddMember appends userID to the member list with set semantics.
func (s *Store) AddMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, teamID, bson.M{
		"$addToSet": bson.M{"members": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// RemoveMember pulls userID from the member list.
func (s *Store) RemoveMember(ctx context.Context, teamID, userID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, teamID, bson.M{
		"$pull": bson.M{"members": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// SetLead replaces the team lead. The caller verifies membership.
func (s *Store) SetLead(ctx context.Context, teamID, newLead primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, teamID, bson.M{
		"$set": bson.M{"team_lead_id": newLead, "updated_at": time.Now().UTC()},
	})
	return err
}

// SetMentor sets mentor_id after validating the referenced user holds
// the mentor role. Returns ErrNotMentor on a role mismatch.
func (s *Store) SetMentor(ctx context.Context, teamID, mentorID primitive.ObjectID) error {
	if err := s.validateRoleRef(ctx, mentorID, models.RoleMentor, ErrNotMentor); err != nil {
		return err
	}
	_, err := s.c.UpdateByID(ctx, teamID, bson.M{
		"$set": bson.M{"mentor_id": mentorID, "updated_at": time.Now().UTC()},
	})
	return err
}

// SetCoordinator sets coordinator_id after validating the referenced
// user holds the coordinator role.
func (s *Store) SetCoordinator(ctx context.Context, teamID, coordinatorID primitive.ObjectID) error {
	if err := s.validateRoleRef(ctx, coordinatorID, models.RoleCoordinator, ErrNotCoordinator); err != nil {
		return err
	}
	_, err := s.c.UpdateByID(ctx, teamID, bson.M{
		"$set": bson.M{"coordinator_id": coordinatorID, "updated_at": time.Now().UTC()},
	})
	return err
}

// SetProject links a project to the team.
func (s *Store) SetProject(ctx context.Context, teamID, projectID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, teamID, bson.M{
		"$set": bson.M{"project_id": projectID, "updated_at": time.Now().UTC()},
	})
	return err
}

// UnsetProject clears the team's project link.
func (s *Store) UnsetProject(ctx context.Context, teamID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, teamID, bson.M{
		"$unset": bson.M{"project_id": ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// FindByMentor returns all teams mentored by userID.
func (s *Store) FindByMentor(ctx context.Context, userID primitive.ObjectID) ([]models.Team, error) {
	return s.findAll(ctx, bson.M{"mentor_id": userID})
}

// FindByCoordinator returns all teams coordinated by userID.
func (s *Store) FindByCoordinator(ctx context.Context, userID primitive.ObjectID) ([]models.Team, error) {
	return s.findAll(ctx, bson.M{"coordinator_id": userID})
}

func (s *Store) findAll(ctx context.Context, filter bson.M) ([]models.Team, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var teams []models.Team
	if err := cur.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}
