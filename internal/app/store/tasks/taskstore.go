// internal/app/store/tasks/taskstore.go
package taskstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deadlinesdragons/questhub/internal/app/system/htmlsanitize"
	"github.com/deadlinesdragons/questhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func findOneAndUpdateAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tasks")}
}

var (
	// ErrTooManyAssignees is returned when an assignment would push the
	// assignee set past models.MaxAssignees.
	ErrTooManyAssignees = fmt.Errorf("A task can have at most %d assignees", models.MaxAssignees)

	errNoName        = errors.New("Task name is required")
	errBadName       = errors.New("Task name cannot be more than 100 characters")
	errBadDesc       = errors.New("Description cannot be more than 500 characters")
	errBadDifficulty = errors.New("Difficulty must be one of: easy, medium, hard")
	errBadStatus     = errors.New("Invalid completion status")
)

// IsClientError reports whether err's message is safe to return to the
// API caller as a 400.
func IsClientError(err error) bool {
	for _, e := range []error{
		ErrTooManyAssignees, errNoName, errBadName, errBadDesc, errBadDifficulty, errBadStatus,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func validate(t *models.Task) error {
	if t.Name == "" {
		return errNoName
	}
	if len(t.Name) > 100 {
		return errBadName
	}
	t.Description = htmlsanitize.Sanitize(t.Description)
	if len(t.Description) > 500 {
		return errBadDesc
	}
	if t.Difficulty == "" {
		t.Difficulty = models.DifficultyMedium
	}
	if !models.ValidDifficulty(t.Difficulty) {
		return errBadDifficulty
	}
	if t.CompletionStatus == "" {
		t.CompletionStatus = models.StatusNotStarted
	}
	if !models.ValidCompletionStatus(t.CompletionStatus) {
		return errBadStatus
	}
	if len(t.Assignees) > models.MaxAssignees {
		return ErrTooManyAssignees
	}
	return nil
}

// Create inserts a new task after validation. Defaults: difficulty
// medium, completion status not-started, empty assignee list.
func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	if err := validate(&t); err != nil {
		return models.Task{}, err
	}
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	if t.Assignees == nil {
		t.Assignees = []primitive.ObjectID{}
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// FindByProject returns all tasks belonging to a project.
func (s *Store) FindByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	cur, err := s.c.Find(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var tasks []models.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update patches mutable fields of a task. The project link is
// immutable after creation; any project_id in the patch is ignored.
type Update struct {
	Name             *string
	Description      *string
	Difficulty       *string
	Deadline         *time.Time
	ClearDeadline    bool
	SubmissionLink   *string
	CompletionStatus *string
}

// Apply writes the patch and returns the updated document.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) (models.Task, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}
	if upd.Name != nil {
		if *upd.Name == "" {
			return models.Task{}, errNoName
		}
		if len(*upd.Name) > 100 {
			return models.Task{}, errBadName
		}
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		desc := htmlsanitize.Sanitize(*upd.Description)
		if len(desc) > 500 {
			return models.Task{}, errBadDesc
		}
		set["description"] = desc
	}
	if upd.Difficulty != nil {
		if !models.ValidDifficulty(*upd.Difficulty) {
			return models.Task{}, errBadDifficulty
		}
		set["difficulty"] = *upd.Difficulty
	}
	if upd.CompletionStatus != nil {
		if !models.ValidCompletionStatus(*upd.CompletionStatus) {
			return models.Task{}, errBadStatus
		}
		set["completion_status"] = *upd.CompletionStatus
	}
	if upd.SubmissionLink != nil {
		set["submission_link"] = *upd.SubmissionLink
	}
	if upd.ClearDeadline {
		unset["deadline"] = ""
	} else if upd.Deadline != nil {
		set["deadline"] = upd.Deadline.UTC()
	}

	change := bson.M{"$set": set}
	if len(unset) > 0 {
		change["$unset"] = unset
	}
	var t models.Task
	opts := findOneAndUpdateAfter()
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, change, opts).Decode(&t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// DeleteByProject removes every task owned by a project. Used when the
// project itself is being removed.
func (s *Store) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
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

// Assign adds userID to the task's assignee set, enforcing the cap.
// The filter counts current assignees so a concurrent assign cannot
// push the set past the limit; a filter miss on an existing task means
// the cap was hit.
func (s *Store) Assign(ctx context.Context, taskID, userID primitive.ObjectID) (models.Task, error) {
	filter := bson.M{
		"_id": taskID,
		"$or": bson.A{
			bson.M{"assignees": userID},
			bson.M{fmt.Sprintf("assignees.%d", models.MaxAssignees-1): bson.M{"$exists": false}},
		},
	}
	change := bson.M{
		"$addToSet": bson.M{"assignees": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}
	var t models.Task
	err := s.c.FindOneAndUpdate(ctx, filter, change, findOneAndUpdateAfter()).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Distinguish a missing task from a full assignee set.
		n, cerr := s.c.CountDocuments(ctx, bson.M{"_id": taskID})
		if cerr != nil {
			return models.Task{}, cerr
		}
		if n > 0 {
			return models.Task{}, ErrTooManyAssignees
		}
		return models.Task{}, mongo.ErrNoDocuments
	}
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// Unassign removes userID from the task's assignee set. Removing an
// absent user is a no-op.
func (s *Store) Unassign(ctx context.Context, taskID, userID primitive.ObjectID) (models.Task, error) {
	change := bson.M{
		"$pull": bson.M{"assignees": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	var t models.Task
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": taskID}, change, findOneAndUpdateAfter()).Decode(&t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}
