package testutil

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given username, email, and
// role. The password is "password123" for all fixture users.
func (f *Fixtures) CreateUser(ctx context.Context, username, email, role string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Username:     username,
		UsernameCI:   strings.ToLower(username),
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		Role:         role,
		Health:       100,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user.ApplyClassForRole()

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateStudent creates a student user.
func (f *Fixtures) CreateStudent(ctx context.Context, username string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, username, username+"@test.com", models.RoleStudent)
}

// CreateMentor creates a mentor user.
func (f *Fixtures) CreateMentor(ctx context.Context, username string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, username, username+"@test.com", models.RoleMentor)
}

// CreateCoordinator creates a coordinator user.
func (f *Fixtures) CreateCoordinator(ctx context.Context, username string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, username, username+"@test.com", models.RoleCoordinator)
}

// CreateAdmin creates an admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, username string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, username, username+"@test.com", models.RoleAdmin)
}

// CreateTeam creates a team led by lead with lead as sole member, and
// sets the lead's team back-reference.
func (f *Fixtures) CreateTeam(ctx context.Context, name string, lead models.User) models.Team {
	f.t.Helper()

	now := time.Now().UTC()
	team := models.Team{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Members:    []primitive.ObjectID{lead.ID},
		TeamLeadID: lead.ID,
		MaxSize:    models.DefaultTeamMaxSize,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("teams").InsertOne(ctx, team); err != nil {
		f.t.Fatalf("failed to create test team: %v", err)
	}
	if _, err := f.db.Collection("users").UpdateByID(ctx, lead.ID,
		map[string]any{"$set": map[string]any{"team_id": team.ID}}); err != nil {
		f.t.Fatalf("failed to set team back-reference: %v", err)
	}
	return team
}

// AddTeamMember puts user into team and sets the back-reference.
func (f *Fixtures) AddTeamMember(ctx context.Context, team models.Team, user models.User) {
	f.t.Helper()

	if _, err := f.db.Collection("teams").UpdateByID(ctx, team.ID,
		map[string]any{"$addToSet": map[string]any{"members": user.ID}}); err != nil {
		f.t.Fatalf("failed to add team member: %v", err)
	}
	if _, err := f.db.Collection("users").UpdateByID(ctx, user.ID,
		map[string]any{"$set": map[string]any{"team_id": team.ID}}); err != nil {
		f.t.Fatalf("failed to set team back-reference: %v", err)
	}
}

// CreateProject creates a project with the given name.
func (f *Fixtures) CreateProject(ctx context.Context, name string) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	project := models.Project{
		ID:        primitive.NewObjectID(),
		Name:      name,
		StartDate: now,
		Tasks:     []primitive.ObjectID{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("projects").InsertOne(ctx, project); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// CreateTask creates a task in the given project and records it on the
// project's task list.
func (f *Fixtures) CreateTask(ctx context.Context, name string, project models.Project) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:               primitive.NewObjectID(),
		Name:             name,
		ProjectID:        project.ID,
		Assignees:        []primitive.ObjectID{},
		Difficulty:       models.DifficultyMedium,
		CompletionStatus: models.StatusNotStarted,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}
	if _, err := f.db.Collection("projects").UpdateByID(ctx, project.ID,
		map[string]any{"$addToSet": map[string]any{"tasks": task.ID}}); err != nil {
		f.t.Fatalf("failed to link test task to project: %v", err)
	}
	return task
}
