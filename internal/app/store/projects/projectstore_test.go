package projectstore_test

import (
	"errors"
	"testing"

	projectstore "github.com/deadlinesdragons/questhub/internal/app/store/projects"
	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"github.com/deadlinesdragons/questhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Project{
		Name:        "Capstone",
		Description: "Build <b>something</b> great",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("expected ID to be generated")
	}
	if created.Tasks == nil {
		t.Error("expected empty task list, got nil")
	}

	if _, err := store.Create(ctx, models.Project{}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestStore_TaskList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	project, err := store.Create(ctx, models.Project{Name: "Capstone"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	taskID := primitive.NewObjectID()
	if err := store.PushTask(ctx, project.ID, taskID); err != nil {
		t.Fatalf("PushTask failed: %v", err)
	}
	got, err := store.GetByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Tasks) != 1 || got.Tasks[0] != taskID {
		t.Error("task reference not recorded")
	}

	if err := store.PullTask(ctx, project.ID, taskID); err != nil {
		t.Fatalf("PullTask failed: %v", err)
	}
	got, err = store.GetByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Tasks) != 0 {
		t.Error("task reference not removed")
	}
}

func TestStore_TeamLink(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	project, err := store.Create(ctx, models.Project{Name: "Capstone"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	teamID := primitive.NewObjectID()

	if err := store.SetTeam(ctx, project.ID, teamID); err != nil {
		t.Fatalf("SetTeam failed: %v", err)
	}
	got, err := store.GetByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TeamID == nil || *got.TeamID != teamID {
		t.Error("team link not set")
	}

	if err := store.UnsetTeam(ctx, project.ID); err != nil {
		t.Fatalf("UnsetTeam failed: %v", err)
	}
	got, err = store.GetByID(ctx, project.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TeamID != nil {
		t.Error("team link not cleared")
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	project, err := store.Create(ctx, models.Project{Name: "Temp"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Delete(ctx, project.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	exists, err := store.Exists(ctx, project.ID)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("project still exists after delete")
	}
	if err := store.Delete(ctx, project.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments for repeat delete, got %v", err)
	}
}
