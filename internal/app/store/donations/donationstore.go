// Package donationstore persists donation records. Rollups onto the
// cause and donor documents are owned by the donation feature, which
// runs them in one transaction with the writes here.
package donationstore

import (
	"context"
	"time"

	"github.com/hopecharity/hopehub/internal/app/system/query"
	"github.com/hopecharity/hopehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("donations")}
}

// Create inserts a new donation record.
func (s *Store) Create(ctx context.Context, d models.Donation) (models.Donation, error) {
	d.ID = primitive.NewObjectID()

	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Donation{}, err
	}
	return d, nil
}

// GetByID loads a donation by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	var d models.Donation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// lookupRefs joins the donor profile and the cause document. The joins
// land under "donorDoc"/"causeDoc" so the raw reference ids survive
// alongside them.
func lookupRefs() []bson.M {
	return []bson.M{
		{"$lookup": bson.M{
			"from":         "donors",
			"localField":   "donor",
			"foreignField": "_id",
			"as":           "donorDoc",
		}},
		{"$unwind": bson.M{"path": "$donorDoc", "preserveNullAndEmptyArrays": true}},
		{"$lookup": bson.M{
			"from":         "causes",
			"localField":   "cause",
			"foreignField": "_id",
			"as":           "causeDoc",
		}},
		{"$unwind": bson.M{"path": "$causeDoc", "preserveNullAndEmptyArrays": true}},
	}
}

// GetPopulated loads a donation with its donor profile and cause joined in.
func (s *Store) GetPopulated(ctx context.Context, id primitive.ObjectID) (*models.PopulatedDonation, error) {
	pipeline := append([]bson.M{{"$match": bson.M{"_id": id}}}, lookupRefs()...)
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, err
		}
		return nil, mongo.ErrNoDocuments
	}
	var pd models.PopulatedDonation
	if err := cur.Decode(&pd); err != nil {
		return nil, err
	}
	return &pd, nil
}

// FindByCause returns every donation made to one cause. Used by the
// cascade delete to unwind donor references.
func (s *Store) FindByCause(ctx context.Context, causeID primitive.ObjectID) ([]models.Donation, error) {
	cur, err := s.c.Find(ctx, bson.M{"cause": causeID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	donations := []models.Donation{}
	if err := cur.All(ctx, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}

// Delete removes a donation by ID.
// Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByCause removes every donation made to one cause.
// Returns the number of documents deleted.
func (s *Store) DeleteByCause(ctx context.Context, causeID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"cause": causeID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ListPopulated returns a page of donations with donor and cause joined in.
func (s *Store) ListPopulated(ctx context.Context, cl query.Clauses) ([]models.PopulatedDonation, error) {
	pipeline := []bson.M{{"$match": cl.Where}}
	if len(cl.Sort) > 0 {
		pipeline = append(pipeline, bson.M{"$sort": cl.Sort})
	}
	pipeline = append(pipeline, bson.M{"$skip": cl.Skip}, bson.M{"$limit": cl.Limit})
	pipeline = append(pipeline, lookupRefs()...)
	if len(cl.Projection) > 0 {
		pipeline = append(pipeline, bson.M{"$project": cl.Projection})
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	donations := []models.PopulatedDonation{}
	if err := cur.All(ctx, &donations); err != nil {
		return nil, err
	}
	return donations, nil
}

// Count returns the total documents matching where.
func (s *Store) Count(ctx context.Context, where bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, where)
}

// SumByCause totals the donation amounts recorded against one cause.
func (s *Store) SumByCause(ctx context.Context, causeID primitive.ObjectID) (float64, error) {
	cur, err := s.c.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"cause": causeID}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var out struct {
		Total float64 `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&out); err != nil {
			return 0, err
		}
	}
	return out.Total, cur.Err()
}
