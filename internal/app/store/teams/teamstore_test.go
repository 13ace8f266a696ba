package teamstore_test

import (
	"errors"
	"testing"

	teamstore "github.com/deadlinesdragons/questhub/internal/app/store/teams"
	"github.com/deadlinesdragons/questhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	lead := fx.CreateStudent(ctx, "lead")

	team, err := store.Create(ctx, "Dragonslayers", lead.ID, 0)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if team.TeamLeadID != lead.ID {
		t.Error("creator is not the team lead")
	}
	if len(team.Members) != 1 || team.Members[0] != lead.ID {
		t.Error("creator is not the sole member")
	}
	if team.MaxSize != 4 {
		t.Errorf("expected default max size 4, got %d", team.MaxSize)
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	lead := fx.CreateStudent(ctx, "lead")

	if _, err := store.Create(ctx, "", lead.ID, 0); err == nil {
		t.Error("expected error for empty name")
	}
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'x'
	}
	if _, err := store.Create(ctx, string(long), lead.ID, 0); err == nil {
		t.Error("expected error for overlong name")
	}
}

func TestStore_Membership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	lead := fx.CreateStudent(ctx, "lead")
	member := fx.CreateStudent(ctx, "member")
	team, err := store.Create(ctx, "Dragonslayers", lead.ID, 0)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.AddMember(ctx, team.ID, member.ID); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	// Adding again must be a no-op.
	if err := store.AddMember(ctx, team.ID, member.ID); err != nil {
		t.Fatalf("AddMember repeat failed: %v", err)
	}

	got, err := store.GetByMember(ctx, member.ID)
	if err != nil {
		t.Fatalf("GetByMember failed: %v", err)
	}
	if len(got.Members) != 2 {
		t.Errorf("expected 2 members, got %d", len(got.Members))
	}

	if err := store.RemoveMember(ctx, team.ID, member.ID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if _, err := store.GetByMember(ctx, member.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected ErrNoDocuments after removal, got %v", err)
	}
}

func TestStore_SetMentor_RoleConsistency(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	lead := fx.CreateStudent(ctx, "lead")
	mentor := fx.CreateMentor(ctx, "mentor")
	student := fx.CreateStudent(ctx, "student")
	team, err := store.Create(ctx, "Dragonslayers", lead.ID, 0)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetMentor(ctx, team.ID, mentor.ID); err != nil {
		t.Fatalf("SetMentor failed: %v", err)
	}
	got, err := store.GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.MentorID == nil || *got.MentorID != mentor.ID {
		t.Error("mentor reference not set")
	}

	if err := store.SetMentor(ctx, team.ID, student.ID); !errors.Is(err, teamstore.ErrNotMentor) {
		t.Errorf("expected ErrNotMentor for student reference, got %v", err)
	}
}

func TestStore_SetCoordinator_RoleConsistency(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	lead := fx.CreateStudent(ctx, "lead")
	coordinator := fx.CreateCoordinator(ctx, "coordinator")
	mentor := fx.CreateMentor(ctx, "mentor")
	team, err := store.Create(ctx, "Dragonslayers", lead.ID, 0)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetCoordinator(ctx, team.ID, coordinator.ID); err != nil {
		t.Fatalf("SetCoordinator failed: %v", err)
	}

	// A mentor cannot sit in the coordinator slot.
	if err := store.SetCoordinator(ctx, team.ID, mentor.ID); !errors.Is(err, teamstore.ErrNotCoordinator) {
		t.Errorf("expected ErrNotCoordinator for mentor reference, got %v", err)
	}
}

func TestStore_ProjectLink(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	lead := fx.CreateStudent(ctx, "lead")
	team, err := store.Create(ctx, "Dragonslayers", lead.ID, 0)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	project := fx.CreateProject(ctx, "Capstone")

	if err := store.SetProject(ctx, team.ID, project.ID); err != nil {
		t.Fatalf("SetProject failed: %v", err)
	}
	got, err := store.GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ProjectID == nil || *got.ProjectID != project.ID {
		t.Error("project link not set")
	}

	if err := store.UnsetProject(ctx, team.ID); err != nil {
		t.Fatalf("UnsetProject failed: %v", err)
	}
	got, err = store.GetByID(ctx, team.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.ProjectID != nil {
		t.Error("project link not cleared")
	}
}

func TestStore_FindByMentor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := teamstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mentor := fx.CreateMentor(ctx, "mentor")
	for _, name := range []string{"Alpha", "Beta"} {
		lead := fx.CreateStudent(ctx, "lead"+name)
		team, err := store.Create(ctx, name, lead.ID, 0)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if err := store.SetMentor(ctx, team.ID, mentor.ID); err != nil {
			t.Fatalf("SetMentor failed: %v", err)
		}
	}

	teams, err := store.FindByMentor(ctx, mentor.ID)
	if err != nil {
		t.Fatalf("FindByMentor failed: %v", err)
	}
	if len(teams) != 2 {
		t.Errorf("expected 2 teams, got %d", len(teams))
	}
}
