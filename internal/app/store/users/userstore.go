package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/hopecharity/hopehub/internal/app/system/normalize"
	"github.com/hopecharity/hopehub/internal/app/system/query"
	"github.com/hopecharity/hopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c          *mongo.Collection
	bcryptCost int
}

func New(db *mongo.Database, bcryptCost int) *Store {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Store{c: db.Collection("users"), bcryptCost: bcryptCost}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "super-admin"|"admin"|"donor"|"volunteer"`)
)

// Create inserts a new account after normalizing fields and hashing the
// password. An empty role defaults to donor.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name.FirstName = normalize.Name(u.Name.FirstName)
	u.Name.LastName = normalize.Name(u.Name.LastName)
	u.Email = normalize.Email(u.Email)
	if u.Role == "" {
		u.Role = models.RoleDonor
	}
	if !models.ValidRole(u.Role) {
		return models.User{}, errBadRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = string(hash)

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CheckPassword reports whether password matches u's stored hash.
func CheckPassword(u *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpdateName mirrors a profile's name change onto the user document.
func (s *Store) UpdateName(ctx context.Context, id primitive.ObjectID, name models.PersonName) error {
	set := bson.M{
		"name.firstName": normalize.Name(name.FirstName),
		"name.lastName":  normalize.Name(name.LastName),
		"updated_at":     time.Now(),
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// SetProfileRef links the user to its role profile document.
func (s *Store) SetProfileRef(ctx context.Context, id primitive.ObjectID, role models.ProfileRole, profileID primitive.ObjectID) error {
	set := bson.M{
		role.UserField(): profileID,
		"updated_at":     time.Now(),
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// SetPassword re-hashes and stores a new password.
func (s *Store) SetPassword(ctx context.Context, id primitive.ObjectID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return err
	}
	set := bson.M{
		"password_hash": string(hash),
		"updated_at":    time.Now(),
	}
	_, err = s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// Delete removes a user by ID.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByProfileRef removes the user whose role field points at
// profileID. Used when an admin deletes a profile and the account must
// go with it.
func (s *Store) DeleteByProfileRef(ctx context.Context, role models.ProfileRole, profileID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{role.UserField(): profileID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// List returns a page of users for the given query clauses.
func (s *Store) List(ctx context.Context, cl query.Clauses) ([]models.User, error) {
	cur, err := s.c.Find(ctx, cl.Where, cl.FindOptions())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Count returns the total documents matching where.
func (s *Store) Count(ctx context.Context, where bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, where)
}
