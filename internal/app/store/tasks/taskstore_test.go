package taskstore_test

import (
	"errors"
	"testing"

	taskstore "github.com/deadlinesdragons/questhub/internal/app/store/tasks"
	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"github.com/deadlinesdragons/questhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	project := fx.CreateProject(ctx, "Capstone")

	task, err := store.Create(ctx, models.Task{
		Name:      "Slay the dragon",
		ProjectID: project.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.Difficulty != models.DifficultyMedium {
		t.Errorf("expected default difficulty medium, got %q", task.Difficulty)
	}
	if task.CompletionStatus != models.StatusNotStarted {
		t.Errorf("expected default status not-started, got %q", task.CompletionStatus)
	}
	if task.Assignees == nil || len(task.Assignees) != 0 {
		t.Error("expected empty assignee list")
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	projectID := primitive.NewObjectID()

	tests := []struct {
		name string
		task models.Task
	}{
		{"empty name", models.Task{ProjectID: projectID}},
		{"bad difficulty", models.Task{Name: "t", ProjectID: projectID, Difficulty: "legendary"}},
		{"bad status", models.Task{Name: "t", ProjectID: projectID, CompletionStatus: "done"}},
		{"too many assignees", models.Task{Name: "t", ProjectID: projectID, Assignees: []primitive.ObjectID{
			primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(),
			primitive.NewObjectID(), primitive.NewObjectID(),
		}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.Create(ctx, tc.task); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestStore_Create_SanitizesDescription(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	task, err := store.Create(ctx, models.Task{
		Name:        "Write report",
		ProjectID:   primitive.NewObjectID(),
		Description: `Read <script>alert("x")</script>the docs`,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.Description != "Read the docs" {
		t.Errorf("description not sanitized: got %q", task.Description)
	}
}

func TestStore_Apply(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	task, err := store.Create(ctx, models.Task{
		Name:      "Draft proposal",
		ProjectID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	name := "Final proposal"
	status := models.StatusInProgress
	link := "https://example.com/doc"
	got, err := store.Apply(ctx, task.ID, taskstore.Update{
		Name:             &name,
		CompletionStatus: &status,
		SubmissionLink:   &link,
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got.Name != name || got.CompletionStatus != status || got.SubmissionLink != link {
		t.Errorf("update not applied: %+v", got)
	}
	if got.ProjectID != task.ProjectID {
		t.Error("project link changed on update")
	}

	bad := "impossible"
	if _, err := store.Apply(ctx, task.ID, taskstore.Update{Difficulty: &bad}); err == nil {
		t.Error("expected error for invalid difficulty")
	}
}

func TestStore_Assign(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	task, err := store.Create(ctx, models.Task{
		Name:      "Guard the gate",
		ProjectID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	user := primitive.NewObjectID()
	got, err := store.Assign(ctx, task.ID, user)
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if len(got.Assignees) != 1 {
		t.Fatalf("expected 1 assignee, got %d", len(got.Assignees))
	}

	// Assigning the same user again is a no-op.
	got, err = store.Assign(ctx, task.ID, user)
	if err != nil {
		t.Fatalf("repeat Assign failed: %v", err)
	}
	if len(got.Assignees) != 1 {
		t.Errorf("expected 1 assignee after repeat, got %d", len(got.Assignees))
	}
}

func TestStore_Assign_Cap(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	task, err := store.Create(ctx, models.Task{
		Name:      "Crowded task",
		ProjectID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	for i := 0; i < models.MaxAssignees; i++ {
		if _, err := store.Assign(ctx, task.ID, primitive.NewObjectID()); err != nil {
			t.Fatalf("Assign %d failed: %v", i, err)
		}
	}
	if _, err := store.Assign(ctx, task.ID, primitive.NewObjectID()); !errors.Is(err, taskstore.ErrTooManyAssignees) {
		t.Errorf("expected ErrTooManyAssignees, got %v", err)
	}
}

func TestStore_Unassign(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	task, err := store.Create(ctx, models.Task{
		Name:      "Scout ahead",
		ProjectID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	user := primitive.NewObjectID()
	if _, err := store.Assign(ctx, task.ID, user); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	got, err := store.Unassign(ctx, task.ID, user)
	if err != nil {
		t.Fatalf("Unassign failed: %v", err)
	}
	if len(got.Assignees) != 0 {
		t.Errorf("expected 0 assignees, got %d", len(got.Assignees))
	}

	// Unassigning an absent user is a no-op.
	if _, err := store.Unassign(ctx, task.ID, primitive.NewObjectID()); err != nil {
		t.Errorf("Unassign of absent user failed: %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	task, err := store.Create(ctx, models.Task{
		Name:      "Ephemeral",
		ProjectID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, task.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments for repeat delete, got %v", err)
	}
}
