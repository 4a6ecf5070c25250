// Package profilestore persists the role profile documents (admins,
// donors, volunteers). One store serves all three collections; the
// role passed to New picks which.
package profilestore

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
)

type Store struct {
	c    *mongo.Collection
	role models.ProfileRole
}

func New(db *mongo.Database, role models.ProfileRole) *Store {
	return &Store{c: db.Collection(role.Collection()), role: role}
}

// Role returns which profile collection this store serves.
func (s *Store) Role() models.ProfileRole { return s.role }

// ErrDuplicate is returned when a profile with the same email or user
// reference already exists in the collection.
var ErrDuplicate = errors.New("a profile for this user already exists")

// Create inserts a new profile after normalizing fields.
func (s *Store) Create(ctx context.Context, p models.Profile) (models.Profile, error) {
	p.ID = primitive.NewObjectID()
	p.Name.FirstName = normalize.Name(p.Name.FirstName)
	p.Name.LastName = normalize.Name(p.Name.LastName)
	p.Email = normalize.Email(p.Email)

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Profile{}, ErrDuplicate
		}
		return models.Profile{}, err
	}
	return p, nil
}

// GetByID loads a profile by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Profile, error) {
	var p models.Profile
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByUser loads the profile referencing the given user account.
func (s *Store) GetByUser(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	var p models.Profile
	if err := s.c.FindOne(ctx, bson.M{"user": userID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update holds the profile fields callers may change. Nil pointers
// leave the stored value untouched.
type Update struct {
	Name         *models.PersonName
	ContactNo    *string
	Address      *string
	ProfileImage *string
}

// UpdateFields applies upd to one profile. Name writes are flattened to
// the nested keys so an omitted component survives.
// Returns the matched count (0 means no such profile).
func (s *Store) UpdateFields(ctx context.Context, id primitive.ObjectID, upd Update) (int64, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.Name != nil {
		if upd.Name.FirstName != "" {
			set["name.firstName"] = normalize.Name(upd.Name.FirstName)
		}
		if upd.Name.LastName != "" {
			set["name.lastName"] = normalize.Name(upd.Name.LastName)
		}
	}
	if upd.ContactNo != nil {
		set["contactNo"] = *upd.ContactNo
	}
	if upd.Address != nil {
		set["address"] = *upd.Address
	}
	if upd.ProfileImage != nil {
		set["profileImage"] = *upd.ProfileImage
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// Delete removes a profile by ID.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// PushCause appends a cause reference to an admin profile.
func (s *Store) PushCause(ctx context.Context, id, causeID primitive.ObjectID) error {
	return s.push(ctx, id, "causes", causeID)
}

// PullCause removes a cause reference from an admin profile.
func (s *Store) PullCause(ctx context.Context, id, causeID primitive.ObjectID) error {
	return s.pull(ctx, id, "causes", causeID)
}

// PushDonation appends a donation reference to a donor profile.
func (s *Store) PushDonation(ctx context.Context, id, donationID primitive.ObjectID) error {
	return s.push(ctx, id, "donation", donationID)
}

// PullDonation removes a donation reference from a donor profile.
func (s *Store) PullDonation(ctx context.Context, id, donationID primitive.ObjectID) error {
	return s.pull(ctx, id, "donation", donationID)
}

func (s *Store) push(ctx context.Context, id primitive.ObjectID, field string, ref primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{field: ref},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

func (s *Store) pull(ctx context.Context, id primitive.ObjectID, field string, ref primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$pull": bson.M{field: ref},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	return err
}

// List returns a page of profiles for the given query clauses.
func (s *Store) List(ctx context.Context, cl query.Clauses) ([]models.Profile, error) {
	cur, err := s.c.Find(ctx, cl.Where, cl.FindOptions())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	profiles := []models.Profile{}
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Count returns the total documents matching where.
func (s *Store) Count(ctx context.Context, where bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, where)
}
