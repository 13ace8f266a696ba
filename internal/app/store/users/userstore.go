package userstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deadlinesdragons/questhub/internal/app/system/normalize"
	"github.com/deadlinesdragons/questhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("Email already exists")
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("Username already taken")

	errBadRole        = errors.New(`role must be "student"|"admin"|"mentor"|"coordinator"`)
	errUsernameLength = errors.New("Username must be at least 3 characters long")
	errPasswordLength = errors.New("Password must be at least 6 characters long")
	errBadEmail       = errors.New("Invalid email format")
	errBadHealth      = errors.New("health must be between 0 and 100")
)

// IsClientError reports whether err is a validation or duplicate error
// whose message is safe to return to the API caller as a 400.
func IsClientError(err error) bool {
	for _, e := range []error{
		ErrDuplicateEmail, ErrDuplicateUsername,
		errBadRole, errUsernameLength, errPasswordLength, errBadEmail, errBadHealth,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// projNoPassword excludes the password hash from reads.
var projNoPassword = options.FindOne().SetProjection(bson.M{"password_hash": 0})

// GetByID loads a user by ObjectID, excluding the password hash.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}, projNoPassword).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByRole loads a user by ObjectID, returning mongo.ErrNoDocuments if
// the user does not exist or does not hold the given role.
func (s *Store) GetByRole(ctx context.Context, id primitive.ObjectID, role string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "role": role}, projNoPassword).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmailWithPassword looks up a user by case-insensitive email,
// including the password hash. Only the login path uses this.
func (s *Store) GetByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing and validating fields.
// The plaintext password is bcrypt-hashed here; the hash never leaves
// the store. Duplicate email/username are detected by an explicit lookup
// first (for a precise message) with the unique indexes as backstop.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Username = normalize.Username(u.Username)
	u.UsernameCI = text.Fold(u.Username)
	u.Email = normalize.Email(u.Email)
	u.FullName = normalize.Name(u.FullName)
	if u.Role == "" {
		u.Role = models.RoleStudent
	}
	if u.Health == 0 {
		u.Health = 100
	}

	if len(u.Username) < 3 {
		return models.User{}, errUsernameLength
	}
	if !normalize.ValidEmail(u.Email) {
		return models.User{}, errBadEmail
	}
	if len(password) < 6 {
		return models.User{}, errPasswordLength
	}
	if !models.ValidRole(u.Role) {
		return models.User{}, errBadRole
	}
	if u.Health < 0 || u.Health > 100 {
		return models.User{}, errBadHealth
	}
	u.ApplyClassForRole()

	// Precise duplicate message before relying on the index.
	var existing models.User
	err := s.c.FindOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": u.Email},
		bson.M{"username_ci": u.UsernameCI},
	}}, projNoPassword).Decode(&existing)
	if err == nil {
		if existing.Email == u.Email {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, ErrDuplicateUsername
	}
	if err != mongo.ErrNoDocuments {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	u.PasswordHash = ""
	return u, nil
}

// CheckPassword compares a plaintext password against the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SetTeam updates the user's team back-reference. Pass nil to clear it.
func (s *Store) SetTeam(ctx context.Context, userID primitive.ObjectID, teamID *primitive.ObjectID) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if teamID != nil {
		set["team_id"] = *teamID
	}
	update := bson.M{"$set": set}
	if teamID == nil {
		update["$unset"] = bson.M{"team_id": ""}
	}
	_, err := s.c.UpdateByID(ctx, userID, update)
	return err
}

// Summaries loads the trimmed user shapes for the given ids, for
// populating team and task responses. Missing ids are skipped.
func (s *Store) Summaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Summary, error) {
	out := make(map[primitive.ObjectID]models.Summary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{
			"username": 1, "email": 1, "role": 1, "health": 1,
		}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var sum models.Summary
		if err := cur.Decode(&sum); err != nil {
			return nil, err
		}
		out[sum.ID] = sum
	}
	return out, cur.Err()
}
