package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/deadlinesdragons/questhub/internal/app/store/users"
	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"github.com/deadlinesdragons/questhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Username: "frodo",
		Email:    "Frodo@Shire.example",
		Role:     models.RoleStudent,
	}, "secret123")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("expected ID to be generated")
	}
	if created.Email != "frodo@shire.example" {
		t.Errorf("email not normalized: got %q", created.Email)
	}
	if created.PlayerClass != models.ClassAdventurer {
		t.Errorf("expected default player class, got %q", created.PlayerClass)
	}
	if created.Health != 100 {
		t.Errorf("expected health 100, got %d", created.Health)
	}
	if created.PasswordHash != "" {
		t.Error("password hash leaked on returned user")
	}
}

func TestStore_Create_ForcesClassForPrivilegedRoles(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		role  string
		class string
	}{
		{models.RoleMentor, models.ClassCaptain},
		{models.RoleCoordinator, models.ClassGuildMaster},
	}
	for _, tc := range tests {
		t.Run(tc.role, func(t *testing.T) {
			created, err := store.Create(ctx, models.User{
				Username:    "user" + tc.role,
				Email:       tc.role + "@test.com",
				Role:        tc.role,
				PlayerClass: models.ClassMage, // must be overridden
			}, "secret123")
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			if created.PlayerClass != tc.class {
				t.Errorf("player class: got %q, want %q", created.PlayerClass, tc.class)
			}
		})
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name     string
		user     models.User
		password string
	}{
		{"short username", models.User{Username: "ab", Email: "a@b.co", Role: models.RoleStudent}, "secret123"},
		{"short password", models.User{Username: "abc", Email: "a@b.co", Role: models.RoleStudent}, "12345"},
		{"bad email", models.User{Username: "abc", Email: "not-an-email", Role: models.RoleStudent}, "secret123"},
		{"bad role", models.User{Username: "abc", Email: "a@b.co", Role: "wizard"}, "secret123"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.Create(ctx, tc.user, tc.password); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestStore_Create_Duplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{
		Username: "samwise", Email: "sam@shire.example", Role: models.RoleStudent,
	}, "secret123"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := store.Create(ctx, models.User{
		Username: "samwise2", Email: "SAM@shire.example", Role: models.RoleStudent,
	}, "secret123")
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}

	_, err = store.Create(ctx, models.User{
		Username: "Samwise", Email: "other@shire.example", Role: models.RoleStudent,
	}, "secret123")
	if !errors.Is(err, userstore.ErrDuplicateUsername) {
		t.Errorf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestStore_GetByEmailWithPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Username: "merry", Email: "merry@shire.example", Role: models.RoleStudent,
	}, "secret123")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByEmailWithPassword(ctx, "MERRY@shire.example")
	if err != nil {
		t.Fatalf("GetByEmailWithPassword failed: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("wrong user: got %s, want %s", got.ID.Hex(), created.ID.Hex())
	}
	if !userstore.CheckPassword(got.PasswordHash, "secret123") {
		t.Error("stored hash does not verify the original password")
	}
	if userstore.CheckPassword(got.PasswordHash, "wrongpass") {
		t.Error("stored hash verified a wrong password")
	}
}

func TestStore_SetTeam(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateStudent(ctx, "pippin")
	team := fx.CreateTeam(ctx, "Fellowship", fx.CreateStudent(ctx, "lead"))

	if err := store.SetTeam(ctx, user.ID, &team.ID); err != nil {
		t.Fatalf("SetTeam failed: %v", err)
	}
	got, err := store.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TeamID == nil || *got.TeamID != team.ID {
		t.Error("team back-reference not set")
	}

	if err := store.SetTeam(ctx, user.ID, nil); err != nil {
		t.Fatalf("SetTeam(nil) failed: %v", err)
	}
	got, err = store.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.TeamID != nil {
		t.Error("team back-reference not cleared")
	}
}

func TestStore_Summaries(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fx.CreateStudent(ctx, "aragorn")
	b := fx.CreateMentor(ctx, "gandalf")

	got, err := store.Summaries(ctx, []primitive.ObjectID{a.ID, b.ID})
	if err != nil {
		t.Fatalf("Summaries failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	if got[a.ID].Username != "aragorn" || got[b.ID].Role != models.RoleMentor {
		t.Error("summary content mismatch")
	}
}
