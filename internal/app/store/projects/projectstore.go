// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"errors"
	"time"

	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"github.com/deadlinesdragons/questhub/internal/app/system/htmlsanitize"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

var (
	errNoName  = errors.New("Project name is required")
	errBadName = errors.New("Project name cannot be more than 100 characters")
	errBadDesc = errors.New("Description cannot be more than 500 characters")
)

// IsClientError reports whether err's message is safe to return to the
// API caller as a 400.
func IsClientError(err error) bool {
	for _, e := range []error{errNoName, errBadName, errBadDesc} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// Create inserts a new project. Name is required and capped at 100
// characters; description is sanitized and capped at 500.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	if p.Name == "" {
		return models.Project{}, errNoName
	}
	if len(p.Name) > 100 {
		return models.Project{}, errBadName
	}
	p.Description = htmlsanitize.Sanitize(p.Description)
	if len(p.Description) > 500 {
		return models.Project{}, errBadDesc
	}
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	if p.Tasks == nil {
		p.Tasks = []primitive.ObjectID{}
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// Exists reports whether a project with the id is present.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"_id": id})
	return n > 0, err
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetTeam records the owning team on the project.
func (s *Store) SetTeam(ctx context.Context, projectID, teamID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, projectID, bson.M{
		"$set": bson.M{"team_id": teamID, "updated_at": time.Now().UTC()},
	})
	return err
}

// UnsetTeam clears the owning team.
func (s *Store) UnsetTeam(ctx context.Context, projectID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, projectID, bson.M{
		"$unset": bson.M{"team_id": ""},
		"$set":   bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// PushTask appends a task reference to the project's task list.
func (s *Store) PushTask(ctx context.Context, projectID, taskID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, projectID, bson.M{
		"$addToSet": bson.M{"tasks": taskID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// PullTask removes a task reference from the project's task list.
func (s *Store) PullTask(ctx context.Context, projectID, taskID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, projectID, bson.M{
		"$pull": bson.M{"tasks": taskID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}
